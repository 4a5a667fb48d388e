package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	debit  float64
	credit float64
}

func (r fakeRow) Scan(dest ...any) error {
	*dest[0].(*float64) = r.debit
	*dest[1].(*float64) = r.credit
	return nil
}

type fakeQuerier struct {
	row fakeRow
}

func (q fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.row
}

type fakeGauge struct {
	diff float64
	set  bool
}

func (g *fakeGauge) SetLedgerImbalance(diff float64) {
	g.diff = diff
	g.set = true
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLedgerCheckerBalanced(t *testing.T) {
	gauge := &fakeGauge{}
	checker := NewLedgerChecker(fakeQuerier{row: fakeRow{debit: 5000, credit: 5000}}, gauge, discardLogger())

	err := checker.Handle(context.Background(), NewLedgerIntegrityTask())
	require.NoError(t, err)
	require.True(t, gauge.set)
	require.Equal(t, 0.0, gauge.diff)
}

func TestLedgerCheckerFlagsImbalance(t *testing.T) {
	gauge := &fakeGauge{}
	checker := NewLedgerChecker(fakeQuerier{row: fakeRow{debit: 5000, credit: 4900}}, gauge, discardLogger())

	// The scan reports the drift through the gauge and the log; it must not
	// fail the task, or asynq would retry a condition that cannot self-heal.
	err := checker.Handle(context.Background(), NewLedgerIntegrityTask())
	require.NoError(t, err)
	require.Equal(t, 100.0, gauge.diff)
}

func TestEnqueueLedgerIntegrity(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer client.Close()

	info, err := client.EnqueueLedgerIntegrity(context.Background())
	require.NoError(t, err)
	require.Equal(t, TaskLedgerIntegrity, info.Type)
	require.Equal(t, QueueDefault, info.Queue)
}
