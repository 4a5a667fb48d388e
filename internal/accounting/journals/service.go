package journals

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
	internalShared "github.com/atelier-erp/atelier-erp/internal/shared"
)

// counterKey names the sequence used for manual journal entries.
const counterKey = "JE"

type auditRecorder interface {
	Record(ctx context.Context, log internalShared.AuditLog) error
}

type idempotencyGuard interface {
	CheckAndInsert(ctx context.Context, key, module string) error
	Delete(ctx context.Context, key string) error
}

type Service struct {
	repo  Repository
	audit auditRecorder
	idem  idempotencyGuard
}

func NewService(repo Repository, audit auditRecorder, idem idempotencyGuard) *Service {
	return &Service{repo: repo, audit: audit, idem: idem}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]JournalEntry, internalShared.Pagination, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 20
	}
	entries, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, internalShared.Pagination{}, err
	}
	return entries, internalShared.NewPagination(filters.Page, filters.Limit, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (JournalEntry, error) {
	if id <= 0 {
		return JournalEntry{}, shared.ErrJournalNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create records a manual journal entry in draft status. The sequence
// increment, the entry header and its lines share one transaction, so a
// failure on any line leaves no partial entry behind.
func (s *Service) Create(ctx context.Context, in CreateEntryInput) (JournalEntry, error) {
	if err := in.Validate(); err != nil {
		return JournalEntry{}, err
	}

	if in.IdempotencyKey != "" {
		if err := s.idem.CheckAndInsert(ctx, in.IdempotencyKey, "journals"); err != nil {
			return JournalEntry{}, err
		}
	}

	debit, credit := in.Totals()
	var created JournalEntry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		seq, err := tx.NextSequence(ctx, counterKey)
		if err != nil {
			return err
		}
		entry, err := tx.InsertEntry(ctx, JournalEntry{
			EntryNumber:   fmt.Sprintf("JE-%03d", seq),
			EntryDate:     in.EntryDate,
			Description:   in.Description,
			Reference:     in.Reference,
			ReferenceType: in.ReferenceType,
			ReferenceID:   in.ReferenceID,
			TotalDebit:    debit,
			TotalCredit:   credit,
			Status:        JournalStatusDraft,
			CreatedBy:     in.CreatedBy,
		})
		if err != nil {
			return err
		}
		if err := tx.InsertLines(ctx, entry.ID, in.Lines); err != nil {
			return err
		}
		created = entry
		return nil
	})
	if err != nil {
		if in.IdempotencyKey != "" {
			_ = s.idem.Delete(ctx, in.IdempotencyKey)
		}
		return JournalEntry{}, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			ActorID:  in.CreatedBy,
			Action:   "journal.create",
			Entity:   "journal_entry",
			EntityID: strconv.FormatInt(created.ID, 10),
			Meta:     map[string]any{"entryNumber": created.EntryNumber, "totalDebit": debit},
		})
	}
	return created, nil
}

// Post transitions a draft entry to posted, stamping the actor and time.
// A missing or already posted entry both report shared.ErrJournalNotFound.
func (s *Service) Post(ctx context.Context, id, postedBy int64) error {
	if id <= 0 {
		return shared.ErrJournalNotFound
	}
	now := time.Now()
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.MarkPosted(ctx, id, postedBy, now)
	})
	if err != nil {
		if errors.Is(err, shared.ErrJournalNotFound) {
			return shared.ErrJournalNotFound
		}
		return err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			ActorID:  postedBy,
			Action:   "journal.post",
			Entity:   "journal_entry",
			EntityID: strconv.FormatInt(id, 10),
		})
	}
	return nil
}
