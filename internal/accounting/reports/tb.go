package reports

import (
	"math"
	"sort"
	"time"
)

// TrialBalanceRow is one account line of the trial balance.
type TrialBalanceRow struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	AccountType string  `json:"accountType"`
	TotalDebit  float64 `json:"totalDebit"`
	TotalCredit float64 `json:"totalCredit"`
	Balance     float64 `json:"balance"`
}

// TrialBalance is the structured trial balance response.
type TrialBalance struct {
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  float64           `json:"totalDebits"`
	TotalCredits float64           `json:"totalCredits"`
	Difference   float64           `json:"difference"`
	OutOfBalance bool              `json:"outOfBalance"`
}

// BuildTrialBalance turns aggregated account activity into a trial balance.
// Accounts whose balance is within the zero tolerance are dropped; the grand
// totals still cover every posted line, so a ledger-wide imbalance shows up
// in Difference even when the offending rows cancel out visually.
func BuildTrialBalance(asOf time.Time, activity []AccountActivity) TrialBalance {
	tb := TrialBalance{AsOf: asOf}
	for _, acc := range activity {
		tb.TotalDebits += acc.Debit
		tb.TotalCredits += acc.Credit

		balance := acc.Balance()
		if math.Abs(balance) <= zeroTolerance {
			continue
		}
		tb.Rows = append(tb.Rows, TrialBalanceRow{
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: string(acc.AccountType),
			TotalDebit:  acc.Debit,
			TotalCredit: acc.Credit,
			Balance:     balance,
		})
	}
	sort.Slice(tb.Rows, func(i, j int) bool { return tb.Rows[i].Code < tb.Rows[j].Code })

	tb.Difference = math.Abs(tb.TotalDebits - tb.TotalCredits)
	tb.OutOfBalance = tb.Difference > zeroTolerance
	return tb
}
