package expenses

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

// Repository encapsulates DB operations for expenses.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Expense, int, error)
	Get(ctx context.Context, id int64) (Expense, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository couples expense writes with the journal writer and mapping
// lookups on one transaction, so the adapter posts atomically.
type TxRepository interface {
	InsertExpense(ctx context.Context, e Expense) (Expense, error)
	SetJournalEntry(ctx context.Context, expenseID, journalEntryID int64) error
	ResolveAccount(ctx context.Context, module, key, fallbackKey string) (int64, error)
	InsertJournalEntry(ctx context.Context, entry journals.JournalEntry) (journals.JournalEntry, error)
	InsertJournalLines(ctx context.Context, entryID int64, lines []journals.EntryLineInput) error
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

const expenseColumns = `id, description, amount, category, expense_date, vendor_id, cost_center_id,
	payment_method, status, journal_entry_id, created_by, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Expense, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Category != "" {
		argCount++
		where += ` AND category = $` + strconv.Itoa(argCount)
		args = append(args, filters.Category)
	}
	if filters.Status != "" {
		argCount++
		where += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, filters.Status)
	}
	if filters.DateFrom != nil {
		argCount++
		where += ` AND expense_date >= $` + strconv.Itoa(argCount)
		args = append(args, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		argCount++
		where += ` AND expense_date <= $` + strconv.Itoa(argCount)
		args = append(args, *filters.DateTo)
	}
	if filters.VendorID != nil {
		argCount++
		where += ` AND vendor_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.VendorID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM expenses`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses` + where + ` ORDER BY id DESC`
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

	var out []Expense
	for rows.Next() {
		var e Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Expense, error) {
	var e Expense
	err := scanExpense(r.pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id=$1`, id), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Expense{}, ErrExpenseNotFound
		}
		return Expense{}, err
	}
	return e, nil
}

func scanExpense(row pgx.Row, e *Expense) error {
	return row.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.ExpenseDate, &e.VendorID, &e.CostCenterID,
		&e.PaymentMethod, &e.Status, &e.JournalEntryID, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
}

type txRepository struct {
	tx      pgx.Tx
	journal *journals.TxWriter
}

func (t *txRepository) InsertExpense(ctx context.Context, e Expense) (Expense, error) {
	err := t.tx.QueryRow(ctx, `INSERT INTO expenses
	(description, amount, category, expense_date, vendor_id, cost_center_id, payment_method, status, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id, created_at, updated_at`,
		e.Description, e.Amount, e.Category, e.ExpenseDate, e.VendorID, e.CostCenterID,
		e.PaymentMethod, e.Status, e.CreatedBy).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (t *txRepository) SetJournalEntry(ctx context.Context, expenseID, journalEntryID int64) error {
	_, err := t.tx.Exec(ctx, `UPDATE expenses SET journal_entry_id=$2, updated_at=NOW() WHERE id=$1`, expenseID, journalEntryID)
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
