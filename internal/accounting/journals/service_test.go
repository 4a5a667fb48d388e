package journals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
	internalShared "github.com/atelier-erp/atelier-erp/internal/shared"
)

type memoryRepo struct {
	entries  map[int64]JournalEntry
	counters map[string]int64
	nextID   int64
	failLine bool
	entryErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{entries: make(map[int64]JournalEntry), counters: make(map[string]int64)}
}

func (r *memoryRepo) List(ctx context.Context, filters ListFilters) ([]JournalEntry, int, error) {
	var out []JournalEntry
	for _, e := range r.entries {
		if filters.Status != "" && e.Status != filters.Status {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (JournalEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return JournalEntry{}, shared.ErrJournalNotFound
	}
	return e, nil
}

// WithTx snapshots state and restores it when fn fails, mirroring a rollback.
func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	entriesCopy := make(map[int64]JournalEntry, len(r.entries))
	for k, v := range r.entries {
		entriesCopy[k] = v
	}
	countersCopy := make(map[string]int64, len(r.counters))
	for k, v := range r.counters {
		countersCopy[k] = v
	}
	savedID := r.nextID

	if err := fn(ctx, (*memoryTx)(r)); err != nil {
		r.entries = entriesCopy
		r.counters = countersCopy
		r.nextID = savedID
		return err
	}
	return nil
}

type memoryTx memoryRepo

func (t *memoryTx) NextSequence(ctx context.Context, key string) (int64, error) {
	t.counters[key]++
	return t.counters[key], nil
}

func (t *memoryTx) InsertEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error) {
	if t.entryErr != nil {
		return JournalEntry{}, t.entryErr
	}
	t.nextID++
	entry.ID = t.nextID
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	t.entries[entry.ID] = entry
	return entry, nil
}

func (t *memoryTx) InsertLines(ctx context.Context, entryID int64, lines []EntryLineInput) error {
	if t.failLine {
		return context.DeadlineExceeded
	}
	e := t.entries[entryID]
	for idx, line := range lines {
		e.Lines = append(e.Lines, JournalEntryLine{
			JournalEntryID: entryID,
			LineNumber:     idx + 1,
			AccountID:      line.AccountID,
			CostCenterID:   line.CostCenterID,
			Description:    line.Description,
			DebitAmount:    line.DebitAmount,
			CreditAmount:   line.CreditAmount,
		})
	}
	t.entries[entryID] = e
	return nil
}

func (t *memoryTx) MarkPosted(ctx context.Context, entryID, postedBy int64, at time.Time) error {
	e, ok := t.entries[entryID]
	if !ok || e.Status != JournalStatusDraft {
		return shared.ErrJournalNotFound
	}
	e.Status = JournalStatusPosted
	e.PostedBy = &postedBy
	e.PostedAt = &at
	t.entries[entryID] = e
	return nil
}

type memoryIdem struct {
	keys map[string]bool
}

func newMemoryIdem() *memoryIdem { return &memoryIdem{keys: make(map[string]bool)} }

func (g *memoryIdem) CheckAndInsert(ctx context.Context, key, module string) error {
	if g.keys[key] {
		return internalShared.ErrIdempotencyConflict
	}
	g.keys[key] = true
	return nil
}

func (g *memoryIdem) Delete(ctx context.Context, key string) error {
	delete(g.keys, key)
	return nil
}

func balancedInput() CreateEntryInput {
	return CreateEntryInput{
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "office supplies",
		CreatedBy:   7,
		Lines: []EntryLineInput{
			{AccountID: 10, DebitAmount: 150},
			{AccountID: 20, CreditAmount: 150},
		},
	}
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, newMemoryIdem())
	ctx := context.Background()

	first, err := svc.Create(ctx, balancedInput())
	require.NoError(t, err)
	require.Equal(t, "JE-001", first.EntryNumber)
	require.Equal(t, JournalStatusDraft, first.Status)
	require.Equal(t, 150.0, first.TotalDebit)
	require.Equal(t, 150.0, first.TotalCredit)

	second, err := svc.Create(ctx, balancedInput())
	require.NoError(t, err)
	require.Equal(t, "JE-002", second.EntryNumber)
}

func TestCreateRejectsUnbalanced(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, newMemoryIdem())

	in := balancedInput()
	in.Lines[1].CreditAmount = 149.90
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrUnbalanced)
	require.Empty(t, repo.entries)
}

func TestCreateToleratesRoundingDrift(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, newMemoryIdem())

	in := balancedInput()
	in.Lines[1].CreditAmount = 150.009
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
}

func TestCreateRequiresTwoLines(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, newMemoryIdem())

	in := balancedInput()
	in.Lines = in.Lines[:1]
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrTooFewLines)
}

func TestCreateRejectsLineOnBothSides(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, newMemoryIdem())

	in := balancedInput()
	in.Lines[0].CreditAmount = 150
	in.Lines[1].DebitAmount = 150
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrInvalidLine)
}

func TestCreateRollsBackOnLineFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.failLine = true
	svc := NewService(repo, nil, newMemoryIdem())

	_, err := svc.Create(context.Background(), balancedInput())
	require.Error(t, err)
	require.Empty(t, repo.entries)
	// The counter rolls back with the entry, so the next create reuses it.
	repo.failLine = false
	entry, err := svc.Create(context.Background(), balancedInput())
	require.NoError(t, err)
	require.Equal(t, "JE-001", entry.EntryNumber)
}

func TestCreateIdempotencyKeyReplayed(t *testing.T) {
	repo := newMemoryRepo()
	idem := newMemoryIdem()
	svc := NewService(repo, nil, idem)
	ctx := context.Background()

	in := balancedInput()
	in.IdempotencyKey = "4f7d2a9e"
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = svc.Create(ctx, in)
	require.ErrorIs(t, err, internalShared.ErrIdempotencyConflict)
}

func TestCreateReleasesIdempotencyKeyOnFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.failLine = true
	idem := newMemoryIdem()
	svc := NewService(repo, nil, idem)
	ctx := context.Background()

	in := balancedInput()
	in.IdempotencyKey = "4f7d2a9e"
	_, err := svc.Create(ctx, in)
	require.Error(t, err)

	// The failed attempt must not poison a retry with the same key.
	repo.failLine = false
	_, err = svc.Create(ctx, in)
	require.NoError(t, err)
}

func TestPostStampsActor(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, newMemoryIdem())
	ctx := context.Background()

	entry, err := svc.Create(ctx, balancedInput())
	require.NoError(t, err)
	require.NoError(t, svc.Post(ctx, entry.ID, 9))

	posted, err := svc.Get(ctx, entry.ID)
	require.NoError(t, err)
	require.Equal(t, JournalStatusPosted, posted.Status)
	require.NotNil(t, posted.PostedBy)
	require.Equal(t, int64(9), *posted.PostedBy)
	require.NotNil(t, posted.PostedAt)
}

func TestPostTwiceReportsNotFound(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, newMemoryIdem())
	ctx := context.Background()

	entry, err := svc.Create(ctx, balancedInput())
	require.NoError(t, err)
	require.NoError(t, svc.Post(ctx, entry.ID, 9))
	require.ErrorIs(t, svc.Post(ctx, entry.ID, 9), shared.ErrJournalNotFound)
}

func TestPostMissingEntry(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, newMemoryIdem())
	require.ErrorIs(t, svc.Post(context.Background(), 42, 9), shared.ErrJournalNotFound)
}
