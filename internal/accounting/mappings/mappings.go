// Package mappings resolves module/key pairs to ledger accounts. The
// auto-posting adapters look up their accounts here instead of carrying
// hardcoded ids, so a deployment can point "expenses/rent" or
// "payments/cash" at its own chart of accounts.
package mappings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
)

// Querier is satisfied by pgxpool.Pool and pgx.Tx, so resolution can run
// inside an adapter's posting transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Mapping ties a module-scoped key to an account.
type Mapping struct {
	ID        int64  `json:"id"`
	Module    string `json:"module"`
	Key       string `json:"key"`
	AccountID int64  `json:"accountId"`
}

// Resolve returns the account id mapped to (module, key). When the key has
// no mapping it retries with fallbackKey; shared.ErrMappingNotFound means
// neither resolved. Soft-deleted accounts never resolve.
func Resolve(ctx context.Context, q Querier, module, key, fallbackKey string) (int64, error) {
	id, err := lookup(ctx, q, module, key)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, shared.ErrMappingNotFound) || fallbackKey == "" || fallbackKey == key {
		return 0, err
	}
	return lookup(ctx, q, module, fallbackKey)
}

func lookup(ctx context.Context, q Querier, module, key string) (int64, error) {
	var accountID int64
	err := q.QueryRow(ctx, `SELECT m.account_id
FROM account_mappings m
JOIN accounts a ON a.id = m.account_id AND a.deleted_at IS NULL
WHERE m.module = $1 AND m.key = $2`, module, key).Scan(&accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, shared.ErrMappingNotFound
		}
		return 0, err
	}
	return accountID, nil
}
