package shared

import "errors"

var (
	// ErrUnbalanced indicates debit != credit beyond the 0.01 tolerance.
	ErrUnbalanced = errors.New("accounting: journal lines must balance")
	// ErrTooFewLines indicates less than two lines.
	ErrTooFewLines = errors.New("accounting: journal requires at least two lines")
	// ErrInvalidLine indicates a malformed journal line; wrapped errors carry
	// the 1-based line number.
	ErrInvalidLine = errors.New("accounting: invalid journal line")
	// ErrJournalNotFound indicates a missing entry, or an entry that is no
	// longer in draft when posting.
	ErrJournalNotFound = errors.New("accounting: journal entry not found")
	// ErrAccountNotFound indicates a missing or soft-deleted account.
	ErrAccountNotFound = errors.New("accounting: account not found")
	// ErrCostCenterNotFound indicates a missing or soft-deleted cost center.
	ErrCostCenterNotFound = errors.New("accounting: cost center not found")
	// ErrDuplicateCode indicates a code collision with an active record.
	ErrDuplicateCode = errors.New("accounting: code already in use")
	// ErrMappingNotFound indicates an account mapping missing for both the
	// requested key and its fallback.
	ErrMappingNotFound = errors.New("accounting: account mapping not found")
	// ErrSourceAlreadyLinked indicates the source document already generated
	// a journal entry.
	ErrSourceAlreadyLinked = errors.New("accounting: source already linked")
)
