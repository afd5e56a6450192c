package model

import "github.com/shopspring/decimal"

// AccountType classifies where money is held.
type AccountType string

const (
	AccountTypeBank        AccountType = "bank"
	AccountTypeMobileMoney AccountType = "mobile_money"
	AccountTypeCash        AccountType = "cash"
	AccountTypeOther       AccountType = "other"
)

// AccountTypes returns all supported account types.
func AccountTypes() []AccountType {
	return []AccountType{AccountTypeBank, AccountTypeMobileMoney, AccountTypeCash, AccountTypeOther}
}

// Valid reports whether t is a supported account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeBank, AccountTypeMobileMoney, AccountTypeCash, AccountTypeOther:
		return true
	}
	return false
}

// Currency is an ISO 4217 code supported by the API.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
)

// DefaultCurrency is used when no account establishes one.
const DefaultCurrency = CurrencyUSD

// SupportedCurrencies returns all supported currency codes.
func SupportedCurrencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY}
}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY:
		return true
	}
	return false
}

// Account is a money holding tracked by the API. The ID is server-assigned
// and unique within the collection.
type Account struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Type        AccountType     `json:"type"`
	Currency    Currency        `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   Time            `json:"created_at"`
	UpdatedAt   Time            `json:"updated_at"`
}

// AccountDraft holds the client-supplied fields for creating or updating an
// account.
type AccountDraft struct {
	Name        string          `json:"name"`
	Type        AccountType     `json:"type"`
	Currency    Currency        `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description,omitempty"`
}
