package expenses

import (
	"errors"
	"time"
)

// ExpenseStatus enumerates expense lifecycle values. Expenses post to the
// ledger on creation, so they are born approved.
type ExpenseStatus string

const (
	ExpenseStatusApproved ExpenseStatus = "approved"
)

// Expense is a business expense with its generated journal entry.
type Expense struct {
	ID             int64         `json:"id"`
	Description    string        `json:"description"`
	Amount         float64       `json:"amount"`
	Category       string        `json:"category"`
	ExpenseDate    time.Time     `json:"expenseDate"`
	VendorID       *int64        `json:"vendorId,omitempty"`
	CostCenterID   *int64        `json:"costCenterId,omitempty"`
	PaymentMethod  string        `json:"paymentMethod"`
	Status         ExpenseStatus `json:"status"`
	JournalEntryID *int64        `json:"journalEntryId,omitempty"`
	CreatedBy      int64         `json:"createdBy"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// ErrExpenseNotFound indicates a missing expense.
var ErrExpenseNotFound = errors.New("expenses: expense not found")
