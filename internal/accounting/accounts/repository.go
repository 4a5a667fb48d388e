package accounts

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
)

// activeAccounts is the tombstone predicate shared by every account query.
// Soft-deleted rows must stay invisible everywhere, including code-uniqueness
// checks, so the code of a deleted account can be reused.
const activeAccounts = `a.deleted_at IS NULL`

// balanceSelect computes the running balance from posted journal lines using
// the normal-balance sign convention.
const balanceSelect = `COALESCE((
	SELECT CASE WHEN a.normal_balance = 'debit'
		THEN SUM(l.debit_amount) - SUM(l.credit_amount)
		ELSE SUM(l.credit_amount) - SUM(l.debit_amount) END
	FROM journal_entry_lines l
	JOIN journal_entries e ON e.id = l.journal_entry_id
	WHERE l.account_id = a.id AND e.status = 'posted'), 0)`

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]AccountSummary, int, error)
	Get(ctx context.Context, id int64) (Account, error)
	Create(ctx context.Context, account Account) (int64, error)
	Update(ctx context.Context, account Account) error
	SoftDelete(ctx context.Context, id int64) error
	CodeInUse(ctx context.Context, code string, excludeID int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]AccountSummary, int, error) {
	where := ` WHERE ` + activeAccounts
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		p := `$` + strconv.Itoa(argCount)
		where += ` AND (a.code ILIKE ` + p + ` OR a.name ILIKE ` + p + ` OR a.name_en ILIKE ` + p + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.AccountType != "" {
		argCount++
		where += ` AND a.account_type = $` + strconv.Itoa(argCount)
		args = append(args, filters.AccountType)
	}
	if filters.CategoryID != nil {
		argCount++
		where += ` AND a.category_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.CategoryID)
	}
	if filters.IsActive != nil {
		argCount++
		where += ` AND a.is_active = $` + strconv.Itoa(argCount)
		args = append(args, *filters.IsActive)
	}
	if filters.ParentAccountID != nil {
		argCount++
		where += ` AND a.parent_account_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.ParentAccountID)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts a`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT a.id, a.code, a.name, a.name_en, a.category_id, a.parent_account_id,
	a.account_type, a.normal_balance, a.level, a.is_active, a.description, a.created_at, a.updated_at,
	COALESCE(c.name, ''),
	COALESCE(p.code, ''), COALESCE(p.name, ''),
	(SELECT COUNT(*) FROM accounts ch WHERE ch.parent_account_id = a.id AND ch.deleted_at IS NULL),
	` + balanceSelect + `
FROM accounts a
LEFT JOIN account_categories c ON c.id = a.category_id
LEFT JOIN accounts p ON p.id = a.parent_account_id` + where + ` ORDER BY a.code ASC`

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

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []AccountSummary
	for rows.Next() {
		var s AccountSummary
		err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.NameEn, &s.CategoryID, &s.ParentAccountID,
			&s.AccountType, &s.NormalBalance, &s.Level, &s.IsActive, &s.Description, &s.CreatedAt, &s.UpdatedAt,
			&s.CategoryName, &s.ParentAccountCode, &s.ParentAccountName, &s.ChildrenCount, &s.CurrentBalance)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Account, error) {
	var a Account
	err := r.db.QueryRow(ctx, `SELECT a.id, a.code, a.name, a.name_en, a.category_id, a.parent_account_id,
	a.account_type, a.normal_balance, a.level, a.is_active, a.description, a.created_at, a.updated_at
FROM accounts a WHERE a.id = $1 AND `+activeAccounts, id).
		Scan(&a.ID, &a.Code, &a.Name, &a.NameEn, &a.CategoryID, &a.ParentAccountID,
			&a.AccountType, &a.NormalBalance, &a.Level, &a.IsActive, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (r *repository) Create(ctx context.Context, account Account) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO accounts
	(code, name, name_en, category_id, parent_account_id, account_type, normal_balance, level, is_active, description)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id`,
		account.Code, account.Name, account.NameEn, account.CategoryID, account.ParentAccountID,
		account.AccountType, account.NormalBalance, account.Level, account.IsActive, account.Description).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, account Account) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts a SET
	code=$2, name=$3, name_en=$4, category_id=$5, parent_account_id=$6,
	account_type=$7, normal_balance=$8, is_active=$9, description=$10, updated_at=NOW()
WHERE a.id=$1 AND `+activeAccounts,
		account.ID, account.Code, account.Name, account.NameEn, account.CategoryID, account.ParentAccountID,
		account.AccountType, account.NormalBalance, account.IsActive, account.Description)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrAccountNotFound
	}
	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts a SET deleted_at=NOW(), updated_at=NOW() WHERE a.id=$1 AND `+activeAccounts, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrAccountNotFound
	}
	return nil
}

func (r *repository) CodeInUse(ctx context.Context, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts a WHERE a.code=$1 AND a.id<>$2 AND `+activeAccounts+`)`, code, excludeID).Scan(&exists)
	return exists, err
}
