package accounts

import "time"

// AccountType enumerates CoA categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeCOGS      AccountType = "cogs"
)

// NormalBalance marks which side naturally increases an account.
type NormalBalance string

const (
	NormalBalanceDebit  NormalBalance = "debit"
	NormalBalanceCredit NormalBalance = "credit"
)

// Account models a chart of accounts node.
type Account struct {
	ID              int64         `json:"id"`
	Code            string        `json:"code"`
	Name            string        `json:"name"`
	NameEn          string        `json:"nameEn"`
	CategoryID      int64         `json:"categoryId"`
	ParentAccountID *int64        `json:"parentAccountId,omitempty"`
	AccountType     AccountType   `json:"accountType"`
	NormalBalance   NormalBalance `json:"normalBalance"`
	Level           int           `json:"level"`
	IsActive        bool          `json:"isActive"`
	Description     string        `json:"description"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// AccountSummary enriches an account for listings.
type AccountSummary struct {
	Account
	CategoryName      string  `json:"categoryName"`
	ParentAccountCode string  `json:"parentAccountCode,omitempty"`
	ParentAccountName string  `json:"parentAccountName,omitempty"`
	ChildrenCount     int     `json:"childrenCount"`
	CurrentBalance    float64 `json:"currentBalance"`
}
