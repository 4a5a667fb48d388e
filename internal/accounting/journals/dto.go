package journals

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
)

// EntryLineInput describes one journal line in a creation request.
type EntryLineInput struct {
	AccountID    int64   `json:"accountId" validate:"required,gt=0"`
	CostCenterID *int64  `json:"costCenterId,omitempty" validate:"omitempty,gt=0"`
	Description  string  `json:"description"`
	DebitAmount  float64 `json:"debitAmount" validate:"gte=0"`
	CreditAmount float64 `json:"creditAmount" validate:"gte=0"`
}

// CreateEntryInput groups fields required to create a journal entry.
type CreateEntryInput struct {
	EntryDate      time.Time
	Description    string
	Reference      string
	ReferenceType  string
	ReferenceID    *int64
	CreatedBy      int64
	IdempotencyKey string
	Lines          []EntryLineInput
}

// Validate ensures the input forms a balanced double-entry transaction.
func (in CreateEntryInput) Validate() error {
	if in.EntryDate.IsZero() {
		return errors.New("accounting: entry date required")
	}
	if len(in.Lines) < 2 {
		return shared.ErrTooFewLines
	}
	var debit, credit float64
	for idx, line := range in.Lines {
		if line.AccountID == 0 {
			return fmt.Errorf("line %d missing account: %w", idx+1, shared.ErrInvalidLine)
		}
		if line.DebitAmount < 0 || line.CreditAmount < 0 {
			return fmt.Errorf("line %d negative amount: %w", idx+1, shared.ErrInvalidLine)
		}
		if line.DebitAmount > 0 && line.CreditAmount > 0 {
			return fmt.Errorf("line %d cannot be both debit and credit: %w", idx+1, shared.ErrInvalidLine)
		}
		debit += line.DebitAmount
		credit += line.CreditAmount
	}
	if math.Abs(debit-credit) > balanceTolerance {
		return shared.ErrUnbalanced
	}
	return nil
}

// Totals sums debit and credit across lines.
func (in CreateEntryInput) Totals() (debit, credit float64) {
	for _, line := range in.Lines {
		debit += line.DebitAmount
		credit += line.CreditAmount
	}
	return debit, credit
}

// ListFilters collects the optional journal listing filters.
type ListFilters struct {
	Search        string
	Status        JournalStatus
	DateFrom      *time.Time
	DateTo        *time.Time
	ReferenceType string
	Page          int
	Limit         int
}

// CreateEntryRequest is the POST /journal-entries payload.
type CreateEntryRequest struct {
	EntryDate     string           `json:"entryDate" validate:"required,datetime=2006-01-02"`
	Description   string           `json:"description" validate:"required"`
	Reference     string           `json:"reference,omitempty"`
	ReferenceType string           `json:"referenceType,omitempty"`
	ReferenceID   *int64           `json:"referenceId,omitempty" validate:"omitempty,gt=0"`
	Lines         []EntryLineInput `json:"lines" validate:"required,min=2,dive"`
}
