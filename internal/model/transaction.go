package model

import "github.com/shopspring/decimal"

// TransactionType splits money movement into income and expense.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// TransactionTypes returns both transaction types.
func TransactionTypes() []TransactionType {
	return []TransactionType{TransactionIncome, TransactionExpense}
}

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single money movement. Amount is strictly positive; the
// type carries the direction. The referenced category must share the
// transaction's type.
type Transaction struct {
	ID          int             `json:"id"`
	Date        Time            `json:"date"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	AccountID   int             `json:"account_id"`
	CategoryID  int             `json:"category_id"`
	CreatedAt   Time            `json:"created_at"`
	UpdatedAt   Time            `json:"updated_at"`
}

// TransactionDraft holds the client-supplied fields for creating or updating
// a transaction.
type TransactionDraft struct {
	Date        Time            `json:"date"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	AccountID   int             `json:"account_id"`
	CategoryID  int             `json:"category_id"`
}
