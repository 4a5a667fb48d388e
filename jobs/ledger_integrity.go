package jobs

import (
	"context"
	"log/slog"
	"math"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
)

// imbalanceTolerance mirrors the journal balance tolerance.
const imbalanceTolerance = 0.01

type ledgerQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type imbalanceGauge interface {
	SetLedgerImbalance(diff float64)
}

// LedgerChecker scans posted journal entries for a ledger-wide imbalance.
// Per-entry validation should make this impossible; the scan is the backstop
// that surfaces corruption loudly instead of letting it age silently.
type LedgerChecker struct {
	db      ledgerQuerier
	metrics imbalanceGauge
	logger  *slog.Logger
}

func NewLedgerChecker(db ledgerQuerier, metrics imbalanceGauge, logger *slog.Logger) *LedgerChecker {
	return &LedgerChecker{db: db, metrics: metrics, logger: logger}
}

// Handle processes TaskLedgerIntegrity tasks.
func (c *LedgerChecker) Handle(ctx context.Context, t *asynq.Task) error {
	var totalDebit, totalCredit float64
	err := c.db.QueryRow(ctx, `SELECT COALESCE(SUM(total_debit), 0), COALESCE(SUM(total_credit), 0)
FROM journal_entries WHERE status = 'posted'`).Scan(&totalDebit, &totalCredit)
	if err != nil {
		return err
	}

	diff := math.Abs(totalDebit - totalCredit)
	if c.metrics != nil {
		c.metrics.SetLedgerImbalance(diff)
	}
	if diff > imbalanceTolerance {
		c.logger.Error("ledger out of balance",
			slog.Float64("totalDebit", totalDebit),
			slog.Float64("totalCredit", totalCredit),
			slog.Float64("difference", diff))
		return nil
	}
	c.logger.Info("ledger integrity check passed",
		slog.Float64("totalDebit", totalDebit),
		slog.Float64("totalCredit", totalCredit))
	return nil
}
