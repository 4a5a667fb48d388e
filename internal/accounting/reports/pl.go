package reports

import (
	"math"
	"sort"
	"time"

	"github.com/atelier-erp/atelier-erp/internal/accounting/accounts"
)

// ReportLine is one account row inside a report section.
type ReportLine struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ReportSection groups account lines with their subtotal.
type ReportSection struct {
	Label    string       `json:"label"`
	Accounts []ReportLine `json:"accounts"`
	Total    float64      `json:"total"`
}

// IncomeStatement is the structured income statement response.
type IncomeStatement struct {
	StartDate     time.Time     `json:"startDate"`
	EndDate       time.Time     `json:"endDate"`
	Revenue       ReportSection `json:"revenue"`
	COGS          ReportSection `json:"cogs"`
	Expenses      ReportSection `json:"expenses"`
	TotalRevenue  float64       `json:"totalRevenue"`
	TotalCOGS     float64       `json:"totalCogs"`
	GrossProfit   float64       `json:"grossProfit"`
	TotalExpenses float64       `json:"totalExpenses"`
	NetIncome     float64       `json:"netIncome"`
}

// BuildIncomeStatement aggregates period activity into revenue, cost of
// goods sold, and expense sections. Revenue amounts are credit minus debit;
// cost and expense amounts are debit minus credit.
func BuildIncomeStatement(start, end time.Time, activity []AccountActivity) IncomeStatement {
	is := IncomeStatement{
		StartDate: start,
		EndDate:   end,
		Revenue:   ReportSection{Label: "Revenue"},
		COGS:      ReportSection{Label: "Cost of Goods Sold"},
		Expenses:  ReportSection{Label: "Expenses"},
	}

	for _, acc := range activity {
		var section *ReportSection
		var amount float64
		switch acc.AccountType {
		case accounts.AccountTypeRevenue:
			section, amount = &is.Revenue, acc.Credit-acc.Debit
		case accounts.AccountTypeCOGS:
			section, amount = &is.COGS, acc.Debit-acc.Credit
		case accounts.AccountTypeExpense:
			section, amount = &is.Expenses, acc.Debit-acc.Credit
		default:
			continue
		}
		if math.Abs(amount) <= zeroTolerance {
			continue
		}
		section.Accounts = append(section.Accounts, ReportLine{Code: acc.Code, Name: acc.Name, Amount: amount})
		section.Total += amount
	}

	for _, section := range []*ReportSection{&is.Revenue, &is.COGS, &is.Expenses} {
		sort.Slice(section.Accounts, func(i, j int) bool { return section.Accounts[i].Code < section.Accounts[j].Code })
	}

	is.TotalRevenue = is.Revenue.Total
	is.TotalCOGS = is.COGS.Total
	is.GrossProfit = is.TotalRevenue - is.TotalCOGS
	is.TotalExpenses = is.Expenses.Total
	is.NetIncome = is.GrossProfit - is.TotalExpenses
	return is
}
