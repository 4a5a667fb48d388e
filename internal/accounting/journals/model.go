package journals

import "time"

// JournalStatus enumerates journal lifecycle values. Manual entries start as
// draft and require an explicit post; adapter-generated entries are inserted
// directly as posted.
type JournalStatus string

const (
	JournalStatusDraft  JournalStatus = "draft"
	JournalStatusPosted JournalStatus = "posted"
)

// JournalEntry is one balanced accounting transaction.
type JournalEntry struct {
	ID            int64              `json:"id"`
	EntryNumber   string             `json:"entryNumber"`
	EntryDate     time.Time          `json:"entryDate"`
	Description   string             `json:"description"`
	Reference     string             `json:"reference,omitempty"`
	ReferenceType string             `json:"referenceType,omitempty"`
	ReferenceID   *int64             `json:"referenceId,omitempty"`
	TotalDebit    float64            `json:"totalDebit"`
	TotalCredit   float64            `json:"totalCredit"`
	Status        JournalStatus      `json:"status"`
	CreatedBy     int64              `json:"createdBy"`
	PostedBy      *int64             `json:"postedBy,omitempty"`
	PostedAt      *time.Time         `json:"postedAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Lines         []JournalEntryLine `json:"lines,omitempty"`
}

// JournalEntryLine is one debit or credit leg of an entry.
type JournalEntryLine struct {
	ID             int64   `json:"id"`
	JournalEntryID int64   `json:"journalEntryId"`
	LineNumber     int     `json:"lineNumber"`
	AccountID      int64   `json:"accountId"`
	CostCenterID   *int64  `json:"costCenterId,omitempty"`
	Description    string  `json:"description,omitempty"`
	DebitAmount    float64 `json:"debitAmount"`
	CreditAmount   float64 `json:"creditAmount"`
}

// balanceTolerance is the maximum accepted |debit - credit| difference.
const balanceTolerance = 0.01
