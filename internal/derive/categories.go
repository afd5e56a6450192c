package derive

import "github.com/tally-dev/tally/internal/model"

// CategoriesForType returns the categories offered for a transaction of the
// given type.
func CategoriesForType(cats []model.Category, t model.TransactionType) []model.Category {
	var out []model.Category
	for _, c := range cats {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// RetainSelection keeps a previously chosen category ID only while it is
// still among the offered set; otherwise it resets to 0 (none). Used when
// switching a form between income and expense.
func RetainSelection(selected int, offered []model.Category) int {
	if selected == 0 {
		return 0
	}
	for _, c := range offered {
		if c.ID == selected {
			return selected
		}
	}
	return 0
}

// CategoryName resolves a category reference at read time, so views never
// hold stale embedded copies.
func CategoryName(cats []model.Category, id int) string {
	for _, c := range cats {
		if c.ID == id {
			return c.Name
		}
	}
	return "Uncategorized"
}
