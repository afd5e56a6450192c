package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tally-dev/tally/internal/model"
)

var cats = []model.Category{
	{ID: 10, Name: "Groceries", Type: model.TransactionExpense},
	{ID: 11, Name: "Salary", Type: model.TransactionIncome},
	{ID: 12, Name: "Rent", Type: model.TransactionExpense},
}

func TestCategoriesForType(t *testing.T) {
	expense := CategoriesForType(cats, model.TransactionExpense)
	assert.Len(t, expense, 2)
	income := CategoriesForType(cats, model.TransactionIncome)
	assert.Len(t, income, 1)
	assert.Equal(t, "Salary", income[0].Name)
}

func TestRetainSelection(t *testing.T) {
	expense := CategoriesForType(cats, model.TransactionExpense)

	// A selection still on offer is kept.
	assert.Equal(t, 10, RetainSelection(10, expense))

	// Switching type drops a selection that is no longer offered.
	assert.Equal(t, 0, RetainSelection(11, expense))

	// No selection stays no selection.
	assert.Equal(t, 0, RetainSelection(0, expense))
}

func TestCategoryName(t *testing.T) {
	assert.Equal(t, "Rent", CategoryName(cats, 12))
	assert.Equal(t, "Uncategorized", CategoryName(cats, 99))
	assert.Equal(t, "Uncategorized", CategoryName(nil, 10))
}
