package payments

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/atelier-erp/atelier-erp/internal/accounting/journals"
	internalShared "github.com/atelier-erp/atelier-erp/internal/shared"
)

// Mapping keys: the payment method resolves the debit cash/bank account
// with fallback "cash"; accounts receivable is credited via a fixed key.
const (
	mappingModule        = "payments"
	fallbackMethod       = "cash"
	receivableMappingKey = "accounts_receivable"
)

type auditRecorder interface {
	Record(ctx context.Context, log internalShared.AuditLog) error
}

type Service struct {
	repo  Repository
	audit auditRecorder
}

func NewService(repo Repository, audit auditRecorder) *Service {
	return &Service{repo: repo, audit: audit}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Payment, internalShared.Pagination, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 20
	}
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, internalShared.Pagination{}, err
	}
	return items, internalShared.NewPagination(filters.Page, filters.Limit, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (Payment, error) {
	if id <= 0 {
		return Payment{}, ErrPaymentNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create records the receipt, posts its journal entry (debit cash/bank,
// credit accounts receivable) and, when an invoice is referenced, settles
// it under a row lock. All of it commits or rolls back together.
func (s *Service) Create(ctx context.Context, in CreatePaymentInput) (Payment, error) {
	now := time.Now()
	var created Payment
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		payment, err := tx.InsertPayment(ctx, Payment{
			CustomerID:    in.CustomerID,
			InvoiceID:     in.InvoiceID,
			Amount:        in.Amount,
			PaymentMethod: in.PaymentMethod,
			PaymentDate:   in.PaymentDate,
			Status:        PaymentStatusCompleted,
			CreatedBy:     in.CreatedBy,
		})
		if err != nil {
			return err
		}

		cashAccount, err := tx.ResolveAccount(ctx, mappingModule, in.PaymentMethod, fallbackMethod)
		if err != nil {
			return err
		}
		receivableAccount, err := tx.ResolveAccount(ctx, mappingModule, receivableMappingKey, "")
		if err != nil {
			return err
		}

		refID := payment.ID
		description := fmt.Sprintf("Customer payment #%d", payment.ID)
		entry, err := tx.InsertJournalEntry(ctx, journals.JournalEntry{
			EntryNumber:   fmt.Sprintf("PAY-%d-%06d", in.PaymentDate.Year(), payment.ID),
			EntryDate:     in.PaymentDate,
			Description:   description,
			ReferenceType: "payment",
			ReferenceID:   &refID,
			TotalDebit:    in.Amount,
			TotalCredit:   in.Amount,
			Status:        journals.JournalStatusPosted,
			CreatedBy:     in.CreatedBy,
			PostedBy:      &in.CreatedBy,
			PostedAt:      &now,
		})
		if err != nil {
			return err
		}
		err = tx.InsertJournalLines(ctx, entry.ID, []journals.EntryLineInput{
			{AccountID: cashAccount, Description: description, DebitAmount: in.Amount},
			{AccountID: receivableAccount, Description: description, CreditAmount: in.Amount},
		})
		if err != nil {
			return err
		}
		if err := tx.SetJournalEntry(ctx, payment.ID, entry.ID); err != nil {
			return err
		}

		if in.InvoiceID != nil {
			if err := tx.ApplyToInvoice(ctx, *in.InvoiceID, in.Amount); err != nil {
				return err
			}
		}

		payment.JournalEntryID = &entry.ID
		created = payment
		return nil
	})
	if err != nil {
		return Payment{}, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			ActorID:  in.CreatedBy,
			Action:   "payment.create",
			Entity:   "payment",
			EntityID: strconv.FormatInt(created.ID, 10),
			Meta:     map[string]any{"amount": in.Amount, "method": in.PaymentMethod},
		})
	}
	return created, nil
}
