package payments

import "time"

// CreatePaymentRequest is the POST /payments payload.
type CreatePaymentRequest struct {
	CustomerID    int64   `json:"customerId" validate:"required,gt=0"`
	InvoiceID     *int64  `json:"invoiceId,omitempty" validate:"omitempty,gt=0"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,max=40"`
	PaymentDate   string  `json:"paymentDate" validate:"required,datetime=2006-01-02"`
}

// CreatePaymentInput carries the parsed request into the service.
type CreatePaymentInput struct {
	CustomerID    int64
	InvoiceID     *int64
	Amount        float64
	PaymentMethod string
	PaymentDate   time.Time
	CreatedBy     int64
}

// ListFilters collects the optional payment listing filters.
type ListFilters struct {
	CustomerID *int64
	InvoiceID  *int64
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}
