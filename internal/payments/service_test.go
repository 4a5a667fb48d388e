package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelier-erp/atelier-erp/internal/accounting/journals"
	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
)

type invoiceRow struct {
	total  float64
	paid   float64
	status string
}

type memoryRepo struct {
	payments map[int64]Payment
	entries  map[int64]journals.JournalEntry
	invoices map[int64]*invoiceRow
	accounts map[string]int64
	nextID   int64
	nextJID  int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		payments: make(map[int64]Payment),
		entries:  make(map[int64]journals.JournalEntry),
		invoices: make(map[int64]*invoiceRow),
		accounts: map[string]int64{
			"payments/cash":                11,
			"payments/bank_transfer":       12,
			"payments/accounts_receivable": 13,
		},
	}
}

func (r *memoryRepo) List(ctx context.Context, filters ListFilters) ([]Payment, int, error) {
	var out []Payment
	for _, p := range r.payments {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	paymentsCopy := make(map[int64]Payment, len(r.payments))
	for k, v := range r.payments {
		paymentsCopy[k] = v
	}
	entriesCopy := make(map[int64]journals.JournalEntry, len(r.entries))
	for k, v := range r.entries {
		entriesCopy[k] = v
	}
	invoicesCopy := make(map[int64]*invoiceRow, len(r.invoices))
	for k, v := range r.invoices {
		row := *v
		invoicesCopy[k] = &row
	}
	savedID, savedJID := r.nextID, r.nextJID

	if err := fn(ctx, (*memoryTx)(r)); err != nil {
		r.payments = paymentsCopy
		r.entries = entriesCopy
		r.invoices = invoicesCopy
		r.nextID, r.nextJID = savedID, savedJID
		return err
	}
	return nil
}

type memoryTx memoryRepo

func (t *memoryTx) InsertPayment(ctx context.Context, p Payment) (Payment, error) {
	t.nextID++
	p.ID = t.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	t.payments[p.ID] = p
	return p, nil
}

func (t *memoryTx) SetJournalEntry(ctx context.Context, paymentID, journalEntryID int64) error {
	p := t.payments[paymentID]
	p.JournalEntryID = &journalEntryID
	t.payments[paymentID] = p
	return nil
}

func (t *memoryTx) ResolveAccount(ctx context.Context, module, key, fallbackKey string) (int64, error) {
	if id, ok := t.accounts[module+"/"+key]; ok {
		return id, nil
	}
	if fallbackKey != "" {
		if id, ok := t.accounts[module+"/"+fallbackKey]; ok {
			return id, nil
		}
	}
	return 0, shared.ErrMappingNotFound
}

func (t *memoryTx) InsertJournalEntry(ctx context.Context, entry journals.JournalEntry) (journals.JournalEntry, error) {
	t.nextJID++
	entry.ID = t.nextJID
	t.entries[entry.ID] = entry
	return entry, nil
}

func (t *memoryTx) InsertJournalLines(ctx context.Context, entryID int64, lines []journals.EntryLineInput) error {
	e := t.entries[entryID]
	for idx, line := range lines {
		e.Lines = append(e.Lines, journals.JournalEntryLine{
			JournalEntryID: entryID,
			LineNumber:     idx + 1,
			AccountID:      line.AccountID,
			DebitAmount:    line.DebitAmount,
			CreditAmount:   line.CreditAmount,
		})
	}
	t.entries[entryID] = e
	return nil
}

func (t *memoryTx) ApplyToInvoice(ctx context.Context, invoiceID int64, amount float64) error {
	inv, ok := t.invoices[invoiceID]
	if !ok {
		return ErrInvoiceNotFound
	}
	inv.paid += amount
	switch {
	case inv.paid >= inv.total:
		inv.status = "paid"
	case inv.paid > 0:
		inv.status = "partially_paid"
	}
	return nil
}

func cashPayment() CreatePaymentInput {
	return CreatePaymentInput{
		CustomerID:    5,
		Amount:        800,
		PaymentMethod: "cash",
		PaymentDate:   time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		CreatedBy:     7,
	}
}

func TestCreatePostsDebitCashCreditReceivable(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	p, err := svc.Create(context.Background(), cashPayment())
	require.NoError(t, err)
	require.NotNil(t, p.JournalEntryID)

	entry := repo.entries[*p.JournalEntryID]
	require.Equal(t, "PAY-2026-000001", entry.EntryNumber)
	require.Equal(t, journals.JournalStatusPosted, entry.Status)
	require.Len(t, entry.Lines, 2)
	require.Equal(t, int64(11), entry.Lines[0].AccountID)
	require.Equal(t, 800.0, entry.Lines[0].DebitAmount)
	require.Equal(t, int64(13), entry.Lines[1].AccountID)
	require.Equal(t, 800.0, entry.Lines[1].CreditAmount)
}

func TestCreateRoutesBankTransferToBankAccount(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	in := cashPayment()
	in.PaymentMethod = "bank_transfer"
	p, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, int64(12), repo.entries[*p.JournalEntryID].Lines[0].AccountID)
}

func TestCreateUnknownMethodFallsBackToCash(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	in := cashPayment()
	in.PaymentMethod = "crypto"
	p, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, int64(11), repo.entries[*p.JournalEntryID].Lines[0].AccountID)
}

func TestCreateSettlesInvoiceFully(t *testing.T) {
	repo := newMemoryRepo()
	repo.invoices[30] = &invoiceRow{total: 800, status: "open"}
	svc := NewService(repo, nil)

	in := cashPayment()
	invoiceID := int64(30)
	in.InvoiceID = &invoiceID
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "paid", repo.invoices[30].status)
	require.Equal(t, 800.0, repo.invoices[30].paid)
}

func TestCreateSettlesInvoicePartially(t *testing.T) {
	repo := newMemoryRepo()
	repo.invoices[30] = &invoiceRow{total: 2000, status: "open"}
	svc := NewService(repo, nil)

	in := cashPayment()
	invoiceID := int64(30)
	in.InvoiceID = &invoiceID
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "partially_paid", repo.invoices[30].status)
}

func TestCreateRollsBackWhenInvoiceMissing(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	in := cashPayment()
	invoiceID := int64(99)
	in.InvoiceID = &invoiceID
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, ErrInvoiceNotFound)
	require.Empty(t, repo.payments)
	require.Empty(t, repo.entries)
}
