package payments

import (
	"errors"
	"time"
)

// PaymentStatus enumerates payment lifecycle values.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Payment is a customer receipt with its generated journal entry.
type Payment struct {
	ID             int64         `json:"id"`
	CustomerID     int64         `json:"customerId"`
	InvoiceID      *int64        `json:"invoiceId,omitempty"`
	Amount         float64       `json:"amount"`
	PaymentMethod  string        `json:"paymentMethod"`
	PaymentDate    time.Time     `json:"paymentDate"`
	Status         PaymentStatus `json:"status"`
	JournalEntryID *int64        `json:"journalEntryId,omitempty"`
	CreatedBy      int64         `json:"createdBy"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

var (
	// ErrPaymentNotFound indicates a missing payment.
	ErrPaymentNotFound = errors.New("payments: payment not found")
	// ErrInvoiceNotFound indicates the referenced invoice does not exist.
	ErrInvoiceNotFound = errors.New("payments: invoice not found")
)
