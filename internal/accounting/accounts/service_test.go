package accounts

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
)

type memoryRepo struct {
	accounts map[int64]Account
	deleted  map[int64]bool
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{accounts: make(map[int64]Account), deleted: make(map[int64]bool)}
}

func (r *memoryRepo) List(ctx context.Context, filters ListFilters) ([]AccountSummary, int, error) {
	var out []AccountSummary
	for id, a := range r.accounts {
		if r.deleted[id] {
			continue
		}
		if filters.AccountType != "" && a.AccountType != filters.AccountType {
			continue
		}
		out = append(out, AccountSummary{Account: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Account, error) {
	a, ok := r.accounts[id]
	if !ok || r.deleted[id] {
		return Account{}, shared.ErrAccountNotFound
	}
	return a, nil
}

func (r *memoryRepo) Create(ctx context.Context, account Account) (int64, error) {
	r.nextID++
	account.ID = r.nextID
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	r.accounts[account.ID] = account
	return account.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, account Account) error {
	if _, ok := r.accounts[account.ID]; !ok || r.deleted[account.ID] {
		return shared.ErrAccountNotFound
	}
	existing := r.accounts[account.ID]
	account.Level = existing.Level
	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = time.Now()
	r.accounts[account.ID] = account
	return nil
}

func (r *memoryRepo) SoftDelete(ctx context.Context, id int64) error {
	if _, ok := r.accounts[id]; !ok || r.deleted[id] {
		return shared.ErrAccountNotFound
	}
	r.deleted[id] = true
	return nil
}

func (r *memoryRepo) CodeInUse(ctx context.Context, code string, excludeID int64) (bool, error) {
	for id, a := range r.accounts {
		if r.deleted[id] || id == excludeID {
			continue
		}
		if a.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateComputesLevelFromParent(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	rootID, err := svc.Create(ctx, CreateAccountRequest{
		Code: "1000", Name: "Assets", CategoryID: 1,
		AccountType: AccountTypeAsset, NormalBalance: NormalBalanceDebit,
	})
	require.NoError(t, err)

	root, err := svc.Get(ctx, rootID)
	require.NoError(t, err)
	require.Equal(t, 1, root.Level)

	childID, err := svc.Create(ctx, CreateAccountRequest{
		Code: "1010", Name: "Cash on hand", CategoryID: 1, ParentAccountID: &rootID,
		AccountType: AccountTypeAsset, NormalBalance: NormalBalanceDebit,
	})
	require.NoError(t, err)

	child, err := svc.Get(ctx, childID)
	require.NoError(t, err)
	require.Equal(t, 2, child.Level)
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateAccountRequest{
		Code: "1010", Name: "Cash", CategoryID: 1,
		AccountType: AccountTypeAsset, NormalBalance: NormalBalanceDebit,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateAccountRequest{
		Code: "1010", Name: "Cash again", CategoryID: 1,
		AccountType: AccountTypeAsset, NormalBalance: NormalBalanceDebit,
	})
	require.ErrorIs(t, err, shared.ErrDuplicateCode)
}

func TestCodeReusableAfterSoftDelete(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateAccountRequest{
		Code: "1010", Name: "Cash", CategoryID: 1,
		AccountType: AccountTypeAsset, NormalBalance: NormalBalanceDebit,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.Create(ctx, CreateAccountRequest{
		Code: "1010", Name: "Cash v2", CategoryID: 1,
		AccountType: AccountTypeAsset, NormalBalance: NormalBalanceDebit,
	})
	require.NoError(t, err)
}

func TestUpdateRejectsCollidingCode(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateAccountRequest{
		Code: "1010", Name: "Cash", CategoryID: 1,
		AccountType: AccountTypeAsset, NormalBalance: NormalBalanceDebit,
	})
	require.NoError(t, err)

	id, err := svc.Create(ctx, CreateAccountRequest{
		Code: "1020", Name: "Bank", CategoryID: 1,
		AccountType: AccountTypeAsset, NormalBalance: NormalBalanceDebit,
	})
	require.NoError(t, err)

	collide := "1010"
	err = svc.Update(ctx, id, UpdateAccountRequest{Code: &collide})
	require.ErrorIs(t, err, shared.ErrDuplicateCode)

	// Re-submitting its own code is not a collision.
	same := "1020"
	require.NoError(t, svc.Update(ctx, id, UpdateAccountRequest{Code: &same}))
}

func TestUpdateMissingAccount(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	name := "renamed"
	err := svc.Update(context.Background(), 42, UpdateAccountRequest{Name: &name})
	require.ErrorIs(t, err, shared.ErrAccountNotFound)
}

func TestUpdateKeepsLevelOnReparent(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	rootID, err := svc.Create(ctx, CreateAccountRequest{
		Code: "1000", Name: "Assets", CategoryID: 1,
		AccountType: AccountTypeAsset, NormalBalance: NormalBalanceDebit,
	})
	require.NoError(t, err)

	childID, err := svc.Create(ctx, CreateAccountRequest{
		Code: "1010", Name: "Cash", CategoryID: 1, ParentAccountID: &rootID,
		AccountType: AccountTypeAsset, NormalBalance: NormalBalanceDebit,
	})
	require.NoError(t, err)

	otherRootID, err := svc.Create(ctx, CreateAccountRequest{
		Code: "2000", Name: "Liabilities", CategoryID: 2,
		AccountType: AccountTypeLiability, NormalBalance: NormalBalanceCredit,
	})
	require.NoError(t, err)

	grandchildID, err := svc.Create(ctx, CreateAccountRequest{
		Code: "1011", Name: "Petty cash", CategoryID: 1, ParentAccountID: &childID,
		AccountType: AccountTypeAsset, NormalBalance: NormalBalanceDebit,
	})
	require.NoError(t, err)

	// Reparenting moves the node but the level stays as computed at creation.
	require.NoError(t, svc.Update(ctx, grandchildID, UpdateAccountRequest{ParentAccountID: &otherRootID}))
	moved, err := svc.Get(ctx, grandchildID)
	require.NoError(t, err)
	require.Equal(t, 3, moved.Level)
	require.Equal(t, otherRootID, *moved.ParentAccountID)
}
