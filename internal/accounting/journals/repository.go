package journals

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
	"github.com/atelier-erp/atelier-erp/internal/platform/db"
)

// Repository encapsulates DB operations for journal entries.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]JournalEntry, int, error)
	Get(ctx context.Context, id int64) (JournalEntry, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the write operations available within a transaction.
type TxRepository interface {
	NextSequence(ctx context.Context, key string) (int64, error)
	InsertEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error)
	InsertLines(ctx context.Context, entryID int64, lines []EntryLineInput) error
	MarkPosted(ctx context.Context, entryID, postedBy int64, at time.Time) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, NewTxWriter(tx))
	})
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]JournalEntry, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		p := `$` + strconv.Itoa(argCount)
		where += ` AND (entry_number ILIKE ` + p + ` OR description ILIKE ` + p + ` OR reference ILIKE ` + p + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Status != "" {
		argCount++
		where += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, filters.Status)
	}
	if filters.DateFrom != nil {
		argCount++
		where += ` AND entry_date >= $` + strconv.Itoa(argCount)
		args = append(args, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		argCount++
		where += ` AND entry_date <= $` + strconv.Itoa(argCount)
		args = append(args, *filters.DateTo)
	}
	if filters.ReferenceType != "" {
		argCount++
		where += ` AND reference_type = $` + strconv.Itoa(argCount)
		args = append(args, filters.ReferenceType)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, entry_number, entry_date, description, reference, reference_type, reference_id,
	total_debit, total_credit, status, created_by, posted_by, posted_at, created_at, updated_at
FROM journal_entries` + where + ` ORDER BY id DESC`

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

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		err := rows.Scan(&e.ID, &e.EntryNumber, &e.EntryDate, &e.Description, &e.Reference, &e.ReferenceType, &e.ReferenceID,
			&e.TotalDebit, &e.TotalCredit, &e.Status, &e.CreatedBy, &e.PostedBy, &e.PostedAt, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (JournalEntry, error) {
	var e JournalEntry
	err := r.pool.QueryRow(ctx, `SELECT id, entry_number, entry_date, description, reference, reference_type, reference_id,
	total_debit, total_credit, status, created_by, posted_by, posted_at, created_at, updated_at
FROM journal_entries WHERE id=$1`, id).
		Scan(&e.ID, &e.EntryNumber, &e.EntryDate, &e.Description, &e.Reference, &e.ReferenceType, &e.ReferenceID,
			&e.TotalDebit, &e.TotalCredit, &e.Status, &e.CreatedBy, &e.PostedBy, &e.PostedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JournalEntry{}, shared.ErrJournalNotFound
		}
		return JournalEntry{}, err
	}

	rows, err := r.pool.Query(ctx, `SELECT id, journal_entry_id, line_number, account_id, cost_center_id, description, debit_amount, credit_amount
FROM journal_entry_lines WHERE journal_entry_id=$1 ORDER BY line_number ASC`, id)
	if err != nil {
		return JournalEntry{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var line JournalEntryLine
		if err := rows.Scan(&line.ID, &line.JournalEntryID, &line.LineNumber, &line.AccountID, &line.CostCenterID, &line.Description, &line.DebitAmount, &line.CreditAmount); err != nil {
			return JournalEntry{}, err
		}
		e.Lines = append(e.Lines, line)
	}
	return e, rows.Err()
}

// TxWriter performs journal writes on an open transaction. The auto-posting
// adapters reuse it so that a business document, its journal entry, and the
// entry lines commit or roll back as one unit.
type TxWriter struct {
	tx pgx.Tx
}

func NewTxWriter(tx pgx.Tx) *TxWriter {
	return &TxWriter{tx: tx}
}

// NextSequence increments and returns the named counter. The upsert takes a
// row lock, serialising concurrent creators; the unique index on
// entry_number backstops it.
func (w *TxWriter) NextSequence(ctx context.Context, key string) (int64, error) {
	var value int64
	err := w.tx.QueryRow(ctx, `INSERT INTO journal_counters (key, last_value) VALUES ($1, 1)
ON CONFLICT (key) DO UPDATE SET last_value = journal_counters.last_value + 1
RETURNING last_value`, key).Scan(&value)
	return value, err
}

func (w *TxWriter) InsertEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error) {
	err := w.tx.QueryRow(ctx, `INSERT INTO journal_entries
	(entry_number, entry_date, description, reference, reference_type, reference_id,
	 total_debit, total_credit, status, created_by, posted_by, posted_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING id, created_at, updated_at`,
		entry.EntryNumber, entry.EntryDate, entry.Description, entry.Reference, entry.ReferenceType, entry.ReferenceID,
		entry.TotalDebit, entry.TotalCredit, entry.Status, entry.CreatedBy, entry.PostedBy, entry.PostedAt).
		Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_journal_entries_reference" {
			return JournalEntry{}, shared.ErrSourceAlreadyLinked
		}
		return JournalEntry{}, err
	}
	return entry, nil
}

func (w *TxWriter) InsertLines(ctx context.Context, entryID int64, lines []EntryLineInput) error {
	for idx, line := range lines {
		if _, err := w.tx.Exec(ctx, `INSERT INTO journal_entry_lines
	(journal_entry_id, line_number, account_id, cost_center_id, description, debit_amount, credit_amount)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			entryID, idx+1, line.AccountID, line.CostCenterID, line.Description, line.DebitAmount, line.CreditAmount); err != nil {
			return err
		}
	}
	return nil
}

// MarkPosted transitions a draft entry to posted. Zero rows affected means
// the entry is missing or already posted; both surface as not found.
func (w *TxWriter) MarkPosted(ctx context.Context, entryID, postedBy int64, at time.Time) error {
	cmd, err := w.tx.Exec(ctx, `UPDATE journal_entries
SET status=$2, posted_by=$3, posted_at=$4, updated_at=NOW()
WHERE id=$1 AND status=$5`, entryID, JournalStatusPosted, postedBy, at, JournalStatusDraft)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrJournalNotFound
	}
	return nil
}
