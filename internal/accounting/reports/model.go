package reports

import "github.com/atelier-erp/atelier-erp/internal/accounting/accounts"

// AccountActivity is one account's aggregated posted debits and credits for
// a reporting window.
type AccountActivity struct {
	Code          string
	Name          string
	AccountType   accounts.AccountType
	NormalBalance accounts.NormalBalance
	Debit         float64
	Credit        float64
}

// Balance applies the normal-balance sign convention: debit-normal accounts
// report debits minus credits, credit-normal accounts the reverse.
func (a AccountActivity) Balance() float64 {
	if a.NormalBalance == accounts.NormalBalanceCredit {
		return a.Credit - a.Debit
	}
	return a.Debit - a.Credit
}

// zeroTolerance matches the journal balance tolerance; rows inside it are
// treated as zero and dropped from reports.
const zeroTolerance = 0.01
