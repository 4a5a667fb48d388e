package reports

import (
	"math"
	"sort"
	"time"

	"github.com/atelier-erp/atelier-erp/internal/accounting/accounts"
)

// BalanceSheet is the structured balance sheet response.
type BalanceSheet struct {
	AsOf                      time.Time     `json:"asOf"`
	Assets                    ReportSection `json:"assets"`
	Liabilities               ReportSection `json:"liabilities"`
	Equity                    ReportSection `json:"equity"`
	TotalAssets               float64       `json:"totalAssets"`
	TotalLiabilities          float64       `json:"totalLiabilities"`
	TotalEquity               float64       `json:"totalEquity"`
	TotalLiabilitiesAndEquity float64       `json:"totalLiabilitiesAndEquity"`
	Balanced                  bool          `json:"balanced"`
}

// BuildBalanceSheet aggregates balances into asset, liability, and equity
// sections and checks assets against liabilities plus equity.
func BuildBalanceSheet(asOf time.Time, activity []AccountActivity) BalanceSheet {
	bs := BalanceSheet{
		AsOf:        asOf,
		Assets:      ReportSection{Label: "Assets"},
		Liabilities: ReportSection{Label: "Liabilities"},
		Equity:      ReportSection{Label: "Equity"},
	}

	for _, acc := range activity {
		var section *ReportSection
		switch acc.AccountType {
		case accounts.AccountTypeAsset:
			section = &bs.Assets
		case accounts.AccountTypeLiability:
			section = &bs.Liabilities
		case accounts.AccountTypeEquity:
			section = &bs.Equity
		default:
			continue
		}
		balance := acc.Balance()
		if math.Abs(balance) <= zeroTolerance {
			continue
		}
		section.Accounts = append(section.Accounts, ReportLine{Code: acc.Code, Name: acc.Name, Amount: balance})
		section.Total += balance
	}

	for _, section := range []*ReportSection{&bs.Assets, &bs.Liabilities, &bs.Equity} {
		sort.Slice(section.Accounts, func(i, j int) bool { return section.Accounts[i].Code < section.Accounts[j].Code })
	}

	bs.TotalAssets = bs.Assets.Total
	bs.TotalLiabilities = bs.Liabilities.Total
	bs.TotalEquity = bs.Equity.Total
	bs.TotalLiabilitiesAndEquity = bs.TotalLiabilities + bs.TotalEquity
	bs.Balanced = math.Abs(bs.TotalAssets-bs.TotalLiabilitiesAndEquity) <= zeroTolerance
	return bs
}
