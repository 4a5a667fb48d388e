package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository fetches aggregated posted activity per active account.
type Repository interface {
	Activity(ctx context.Context, start *time.Time, end time.Time) ([]AccountActivity, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// Activity sums posted journal lines per account up to end, optionally
// bounded below by start. Draft entries and soft-deleted accounts never
// contribute.
func (r *repository) Activity(ctx context.Context, start *time.Time, end time.Time) ([]AccountActivity, error) {
	query := `SELECT a.code, a.name, a.account_type, a.normal_balance,
	COALESCE(t.debit, 0), COALESCE(t.credit, 0)
FROM accounts a
LEFT JOIN (
	SELECT l.account_id, SUM(l.debit_amount) AS debit, SUM(l.credit_amount) AS credit
	FROM journal_entry_lines l
	JOIN journal_entries e ON e.id = l.journal_entry_id
	WHERE e.status = 'posted' AND e.entry_date <= $1`
	args := []interface{}{end}
	if start != nil {
		query += ` AND e.entry_date >= $2`
		args = append(args, *start)
	}
	query += `
	GROUP BY l.account_id
) t ON t.account_id = a.id
WHERE a.deleted_at IS NULL
ORDER BY a.code ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AccountActivity
	for rows.Next() {
		var a AccountActivity
		if err := rows.Scan(&a.Code, &a.Name, &a.AccountType, &a.NormalBalance, &a.Debit, &a.Credit); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
