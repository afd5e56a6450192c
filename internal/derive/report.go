package derive

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// monthLabel is the trend-series label format, e.g. "Jan 2024".
const monthLabel = "Jan 2006"

// BuildReport aggregates a transaction snapshot into report form, entirely
// client-side: an inclusive date-range filter intersected with optional
// account, category, and type filters, then a monthly trend series, an
// expense breakdown per category, and the summary block.
func BuildReport(txs []model.Transaction, cats []model.Category, params model.ReportParams) model.ReportData {
	filtered := filterTransactions(txs, params)

	return model.ReportData{
		CategoryBreakdown: categoryBreakdown(filtered, cats),
		MonthlyTrends:     monthlyTrends(filtered),
		Summary:           summarize(filtered),
		Transactions:      filtered,
	}
}

func filterTransactions(txs []model.Transaction, params model.ReportParams) []model.Transaction {
	start := model.NormalizeDate(params.StartDate.Time)
	end := model.NormalizeDate(params.EndDate.Time)
	accounts := toSet(params.AccountIDs)
	categories := toSet(params.CategoryIDs)

	filtered := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		day := model.NormalizeDate(t.Date.Time)
		if day.Before(start) || day.After(end) {
			continue
		}
		if len(accounts) > 0 && !accounts[t.AccountID] {
			continue
		}
		if len(categories) > 0 && !categories[t.CategoryID] {
			continue
		}
		if params.TransactionType != nil && t.Type != *params.TransactionType {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func toSet(ids []int) map[int]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func monthlyTrends(txs []model.Transaction) model.MonthlyTrends {
	type monthTotals struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}
	byMonth := make(map[time.Time]monthTotals)
	for _, t := range txs {
		month := time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		totals := byMonth[month]
		if t.Type == model.TransactionIncome {
			totals.income = totals.income.Add(t.Amount)
		} else {
			totals.expense = totals.expense.Add(t.Amount)
		}
		byMonth[month] = totals
	}

	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	trends := model.MonthlyTrends{
		Labels:   make([]string, 0, len(months)),
		Income:   make([]decimal.Decimal, 0, len(months)),
		Expenses: make([]decimal.Decimal, 0, len(months)),
	}
	for _, m := range months {
		totals := byMonth[m]
		trends.Labels = append(trends.Labels, m.Format(monthLabel))
		trends.Income = append(trends.Income, totals.income)
		trends.Expenses = append(trends.Expenses, totals.expense)
	}
	return trends
}

func categoryBreakdown(txs []model.Transaction, cats []model.Category) model.CategoryBreakdown {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != model.TransactionExpense {
			continue
		}
		name := CategoryName(cats, t.CategoryID)
		totals[name] = totals[name].Add(t.Amount)
	}

	labels := make([]string, 0, len(totals))
	for name := range totals {
		labels = append(labels, name)
	}
	// Largest spend first; ties break alphabetically for stable output.
	sort.Slice(labels, func(i, j int) bool {
		a, b := totals[labels[i]], totals[labels[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return labels[i] < labels[j]
	})

	breakdown := model.CategoryBreakdown{
		Labels: labels,
		Data:   make([]decimal.Decimal, 0, len(labels)),
	}
	for _, name := range labels {
		breakdown.Data = append(breakdown.Data, totals[name])
	}
	return breakdown
}

func summarize(txs []model.Transaction) model.Summary {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range txs {
		if t.Type == model.TransactionIncome {
			income = income.Add(t.Amount)
		} else {
			expenses = expenses.Add(t.Amount)
		}
	}

	net := income.Sub(expenses)
	rate := decimal.Zero
	if income.IsPositive() {
		rate = net.Div(income)
	}
	return model.Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		NetSavings:    net,
		SavingsRate:   rate,
	}
}
