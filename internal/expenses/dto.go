package expenses

import "time"

// CreateExpenseRequest is the POST /expenses payload.
type CreateExpenseRequest struct {
	Description   string  `json:"description" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Category      string  `json:"category" validate:"required,max=40"`
	ExpenseDate   string  `json:"expenseDate" validate:"required,datetime=2006-01-02"`
	VendorID      *int64  `json:"vendorId,omitempty" validate:"omitempty,gt=0"`
	CostCenterID  *int64  `json:"costCenterId,omitempty" validate:"omitempty,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,max=40"`
}

// CreateExpenseInput carries the parsed request into the service.
type CreateExpenseInput struct {
	Description   string
	Amount        float64
	Category      string
	ExpenseDate   time.Time
	VendorID      *int64
	CostCenterID  *int64
	PaymentMethod string
	CreatedBy     int64
}

// ListFilters collects the optional expense listing filters.
type ListFilters struct {
	Category string
	Status   ExpenseStatus
	DateFrom *time.Time
	DateTo   *time.Time
	VendorID *int64
	Page     int
	Limit    int
}
