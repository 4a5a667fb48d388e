package expenses

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/atelier-erp/atelier-erp/internal/accounting/journals"
	internalShared "github.com/atelier-erp/atelier-erp/internal/shared"
)

// Mapping keys: the expense category resolves the debit account with
// fallback "other"; the payment method resolves the credit account with
// fallback "cash".
const (
	mappingModuleExpenses = "expenses"
	mappingModulePayments = "payments"
	fallbackCategory      = "other"
	fallbackMethod        = "cash"
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

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Expense, internalShared.Pagination, error) {
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

func (s *Service) Get(ctx context.Context, id int64) (Expense, error) {
	if id <= 0 {
		return Expense{}, ErrExpenseNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create records the expense and posts its journal entry in one
// transaction: debit the category's expense account (carrying the cost
// center), credit the payment account. The entry is posted immediately;
// there is no draft stage for adapter-generated entries.
func (s *Service) Create(ctx context.Context, in CreateExpenseInput) (Expense, error) {
	now := time.Now()
	var created Expense
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		exp, err := tx.InsertExpense(ctx, Expense{
			Description:   in.Description,
			Amount:        in.Amount,
			Category:      in.Category,
			ExpenseDate:   in.ExpenseDate,
			VendorID:      in.VendorID,
			CostCenterID:  in.CostCenterID,
			PaymentMethod: in.PaymentMethod,
			Status:        ExpenseStatusApproved,
			CreatedBy:     in.CreatedBy,
		})
		if err != nil {
			return err
		}

		expenseAccount, err := tx.ResolveAccount(ctx, mappingModuleExpenses, in.Category, fallbackCategory)
		if err != nil {
			return err
		}
		paymentAccount, err := tx.ResolveAccount(ctx, mappingModulePayments, in.PaymentMethod, fallbackMethod)
		if err != nil {
			return err
		}

		refID := exp.ID
		entry, err := tx.InsertJournalEntry(ctx, journals.JournalEntry{
			EntryNumber:   fmt.Sprintf("EXP-%d-%06d", in.ExpenseDate.Year(), exp.ID),
			EntryDate:     in.ExpenseDate,
			Description:   "Expense: " + in.Description,
			ReferenceType: "expense",
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
			{AccountID: expenseAccount, CostCenterID: in.CostCenterID, Description: in.Description, DebitAmount: in.Amount},
			{AccountID: paymentAccount, Description: in.Description, CreditAmount: in.Amount},
		})
		if err != nil {
			return err
		}
		if err := tx.SetJournalEntry(ctx, exp.ID, entry.ID); err != nil {
			return err
		}
		exp.JournalEntryID = &entry.ID
		created = exp
		return nil
	})
	if err != nil {
		return Expense{}, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			ActorID:  in.CreatedBy,
			Action:   "expense.create",
			Entity:   "expense",
			EntityID: strconv.FormatInt(created.ID, 10),
			Meta:     map[string]any{"amount": in.Amount, "category": in.Category},
		})
	}
	return created, nil
}
