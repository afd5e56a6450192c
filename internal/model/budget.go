package model

import "github.com/shopspring/decimal"

// Budget caps spending for one category over a period. Spent is computed
// server-side and treated as read-mostly here. NotificationThreshold is the
// fraction of Amount, in (0, 1], at which an alert is raised.
type Budget struct {
	ID                    int             `json:"id"`
	CategoryID            int             `json:"category_id"`
	Amount                decimal.Decimal `json:"amount"`
	Spent                 decimal.Decimal `json:"spent"`
	StartDate             Time            `json:"start_date"`
	EndDate               Time            `json:"end_date"`
	NotificationThreshold decimal.Decimal `json:"notification_threshold"`
	IsActive              bool            `json:"is_active"`
}

// BudgetDraft holds the client-supplied fields for creating or updating a
// budget.
type BudgetDraft struct {
	CategoryID            int             `json:"category_id"`
	Amount                decimal.Decimal `json:"amount"`
	StartDate             Time            `json:"start_date"`
	EndDate               Time            `json:"end_date"`
	NotificationThreshold decimal.Decimal `json:"notification_threshold"`
}

// BudgetAlert is the server's report of a budget whose spending crossed its
// notification threshold.
type BudgetAlert struct {
	BudgetID     int             `json:"budget_id"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Spent        decimal.Decimal `json:"spent"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// BudgetSummaryRow is one active budget with its spending progress.
type BudgetSummaryRow struct {
	BudgetID     int             `json:"budget_id"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percentage   decimal.Decimal `json:"percentage"`
	StartDate    Time            `json:"start_date"`
	EndDate      Time            `json:"end_date"`
}
