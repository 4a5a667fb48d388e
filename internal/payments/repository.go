package payments

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-erp/atelier-erp/internal/accounting/journals"
	"github.com/atelier-erp/atelier-erp/internal/accounting/mappings"
	"github.com/atelier-erp/atelier-erp/internal/platform/db"
)

// Repository encapsulates DB operations for payments.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Payment, int, error)
	Get(ctx context.Context, id int64) (Payment, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository couples payment writes, the journal writer, mapping lookups
// and the invoice settlement update on one transaction.
type TxRepository interface {
	InsertPayment(ctx context.Context, p Payment) (Payment, error)
	SetJournalEntry(ctx context.Context, paymentID, journalEntryID int64) error
	ResolveAccount(ctx context.Context, module, key, fallbackKey string) (int64, error)
	InsertJournalEntry(ctx context.Context, entry journals.JournalEntry) (journals.JournalEntry, error)
	InsertJournalLines(ctx context.Context, entryID int64, lines []journals.EntryLineInput) error
	ApplyToInvoice(ctx context.Context, invoiceID int64, amount float64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx, journal: journals.NewTxWriter(tx)})
	})
}

const paymentColumns = `id, customer_id, invoice_id, amount, payment_method, payment_date,
	status, journal_entry_id, created_by, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Payment, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.CustomerID != nil {
		argCount++
		where += ` AND customer_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.CustomerID)
	}
	if filters.InvoiceID != nil {
		argCount++
		where += ` AND invoice_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.InvoiceID)
	}
	if filters.DateFrom != nil {
		argCount++
		where += ` AND payment_date >= $` + strconv.Itoa(argCount)
		args = append(args, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		argCount++
		where += ` AND payment_date <= $` + strconv.Itoa(argCount)
		args = append(args, *filters.DateTo)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + paymentColumns + ` FROM payments` + where + ` ORDER BY id DESC`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Payment, error) {
	var p Payment
	err := scanPayment(r.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payment{}, ErrPaymentNotFound
		}
		return Payment{}, err
	}
	return p, nil
}

func scanPayment(row pgx.Row, p *Payment) error {
	return row.Scan(&p.ID, &p.CustomerID, &p.InvoiceID, &p.Amount, &p.PaymentMethod, &p.PaymentDate,
		&p.Status, &p.JournalEntryID, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
}

type txRepository struct {
	tx      pgx.Tx
	journal *journals.TxWriter
}

func (t *txRepository) InsertPayment(ctx context.Context, p Payment) (Payment, error) {
	err := t.tx.QueryRow(ctx, `INSERT INTO payments
	(customer_id, invoice_id, amount, payment_method, payment_date, status, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at, updated_at`,
		p.CustomerID, p.InvoiceID, p.Amount, p.PaymentMethod, p.PaymentDate, p.Status, p.CreatedBy).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (t *txRepository) SetJournalEntry(ctx context.Context, paymentID, journalEntryID int64) error {
	_, err := t.tx.Exec(ctx, `UPDATE payments SET journal_entry_id=$2, updated_at=NOW() WHERE id=$1`, paymentID, journalEntryID)
	return err
}

func (t *txRepository) ResolveAccount(ctx context.Context, module, key, fallbackKey string) (int64, error) {
	return mappings.Resolve(ctx, t.tx, module, key, fallbackKey)
}

func (t *txRepository) InsertJournalEntry(ctx context.Context, entry journals.JournalEntry) (journals.JournalEntry, error) {
	return t.journal.InsertEntry(ctx, entry)
}

func (t *txRepository) InsertJournalLines(ctx context.Context, entryID int64, lines []journals.EntryLineInput) error {
	return t.journal.InsertLines(ctx, entryID, lines)
}

// ApplyToInvoice adds the payment to the invoice under a row lock and
// recomputes its status. A fully covered invoice flips to paid, a partially
// covered one to partially_paid; anything else keeps its current status.
func (t *txRepository) ApplyToInvoice(ctx context.Context, invoiceID int64, amount float64) error {
	var totalAmount, amountPaid float64
	err := t.tx.QueryRow(ctx, `SELECT total_amount, amount_paid FROM invoices WHERE id=$1 FOR UPDATE`, invoiceID).
		Scan(&totalAmount, &amountPaid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvoiceNotFound
		}
		return err
	}

	amountPaid += amount
	status := ""
	switch {
	case amountPaid >= totalAmount:
		status = "paid"
	case amountPaid > 0:
		status = "partially_paid"
	}
	if status != "" {
		_, err = t.tx.Exec(ctx, `UPDATE invoices SET amount_paid=$2, status=$3, updated_at=NOW() WHERE id=$1`,
			invoiceID, amountPaid, status)
	} else {
		_, err = t.tx.Exec(ctx, `UPDATE invoices SET amount_paid=$2, updated_at=NOW() WHERE id=$1`,
			invoiceID, amountPaid)
	}
	return err
}
