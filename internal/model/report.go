package model

import "github.com/shopspring/decimal"

// ReportParams selects the transactions a report covers. Empty ID slices and
// a nil type mean "all".
type ReportParams struct {
	StartDate       Time             `json:"start_date"`
	EndDate         Time             `json:"end_date"`
	AccountIDs      []int            `json:"account_ids,omitempty"`
	CategoryIDs     []int            `json:"category_ids,omitempty"`
	TransactionType *TransactionType `json:"transaction_type,omitempty"`
}

// CategoryBreakdown is a label-aligned series of per-category totals.
type CategoryBreakdown struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// MonthlyTrends is a month-label series aligned 1:1 with income and expense
// totals.
type MonthlyTrends struct {
	Labels   []string          `json:"labels"`
	Income   []decimal.Decimal `json:"income"`
	Expenses []decimal.Decimal `json:"expenses"`
}

// Summary aggregates a report's totals. SavingsRate is a fraction of income,
// zero when there is no income.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetSavings    decimal.Decimal `json:"netSavings"`
	SavingsRate   decimal.Decimal `json:"savingsRate"`
}

// ReportData is a generated report. Derived, never persisted.
type ReportData struct {
	CategoryBreakdown CategoryBreakdown `json:"categoryBreakdown"`
	MonthlyTrends     MonthlyTrends     `json:"monthlyTrends"`
	Summary           Summary           `json:"summary"`
	Transactions      []Transaction     `json:"transactions,omitempty"`
}

// MonthSpend is one month's total spending on the dashboard.
type MonthSpend struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// DashboardData is the server's pre-aggregated overview.
type DashboardData struct {
	TotalBalance       decimal.Decimal   `json:"totalBalance"`
	RecentTransactions []Transaction     `json:"recentTransactions"`
	MonthlySpending    []MonthSpend      `json:"monthlySpending"`
	MonthlyTrends      MonthlyTrends     `json:"monthlyTrends"`
	CategoryBreakdown  CategoryBreakdown `json:"categoryBreakdown"`
	Summary            Summary           `json:"summary"`
}
