// Package validate catches structurally impossible drafts before any network
// call. Field shapes are checked against JSON schemas; cross-field
// invariants (type matches, date ordering, parent cycles) are checked here.
package validate

import (
	"github.com/xeipuuv/gojsonschema"

	"github.com/tally-dev/tally/internal/model"
)

// CategoryLookup resolves a category by ID from the caller's current
// snapshot. A miss is not an error here; the client does not hold full
// referential-integrity knowledge and leaves unknown IDs to the server.
type CategoryLookup func(id int) (model.Category, bool)

// Account checks an account draft.
func Account(d model.AccountDraft) error {
	return runSchema(accountSchema, d).orNil()
}

// Transaction checks a transaction draft. When the referenced category is
// known, its type must equal the transaction's type.
func Transaction(d model.TransactionDraft, categories CategoryLookup) error {
	errs := runSchema(transactionSchema, d)
	if d.Date.IsZero() {
		errs = append(errs, FieldError{Field: "date", Message: "date is required"})
	}
	if categories != nil && d.CategoryID > 0 && d.Type.Valid() {
		if cat, ok := categories(d.CategoryID); ok && cat.Type != d.Type {
			errs = append(errs, FieldError{
				Field:   "category_id",
				Message: "category type " + string(cat.Type) + " does not match transaction type " + string(d.Type),
			})
		}
	}
	return errs.orNil()
}

// Category checks a draft for a new category against the current snapshot.
func Category(d model.CategoryDraft, existing []model.Category) error {
	return categoryChecks(0, d, existing).orNil()
}

// CategoryUpdate checks a draft updating category id. Beyond the create
// rules, the new parent chain must not loop back to id.
func CategoryUpdate(id int, d model.CategoryDraft, existing []model.Category) error {
	return categoryChecks(id, d, existing).orNil()
}

func categoryChecks(id int, d model.CategoryDraft, existing []model.Category) Errors {
	errs := runSchema(categorySchema, d)
	if d.ParentID == 0 {
		return errs
	}

	byID := make(map[int]model.Category, len(existing))
	for _, c := range existing {
		byID[c.ID] = c
	}

	if id != 0 && d.ParentID == id {
		errs = append(errs, FieldError{Field: "parent_id", Message: "category cannot be its own parent"})
		return errs
	}
	parent, ok := byID[d.ParentID]
	if !ok {
		// Unknown parent: the server is the authority on existence.
		return errs
	}
	if parent.Type != d.Type {
		errs = append(errs, FieldError{Field: "parent_id", Message: "parent category must have the same type"})
	}

	// Walk the ancestor chain: updating id must not make it its own
	// ancestor.
	if id != 0 {
		seen := 0
		for cur := parent; cur.ParentID != 0 && seen <= len(existing); seen++ {
			if cur.ParentID == id {
				errs = append(errs, FieldError{Field: "parent_id", Message: "category cannot be its own ancestor"})
				break
			}
			next, ok := byID[cur.ParentID]
			if !ok {
				break
			}
			cur = next
		}
	}
	return errs
}

// Budget checks a budget draft, including the period boundaries.
func Budget(d model.BudgetDraft) error {
	errs := runSchema(budgetSchema, d)
	if d.StartDate.IsZero() {
		errs = append(errs, FieldError{Field: "start_date", Message: "start date is required"})
	}
	if d.EndDate.IsZero() {
		errs = append(errs, FieldError{Field: "end_date", Message: "end date is required"})
	}
	if !d.StartDate.IsZero() && !d.EndDate.IsZero() && d.EndDate.Before(d.StartDate.Time) {
		errs = append(errs, FieldError{Field: "end_date", Message: "end date must not precede start date"})
	}
	return errs.orNil()
}

// Report checks the date range of report parameters.
func Report(p model.ReportParams) error {
	var errs Errors
	if p.StartDate.IsZero() {
		errs = append(errs, FieldError{Field: "start_date", Message: "start date is required"})
	}
	if p.EndDate.IsZero() {
		errs = append(errs, FieldError{Field: "end_date", Message: "end date is required"})
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate.Time) {
		errs = append(errs, FieldError{Field: "end_date", Message: "end date must not precede start date"})
	}
	if p.TransactionType != nil && !p.TransactionType.Valid() {
		errs = append(errs, FieldError{Field: "transaction_type", Message: "invalid transaction type"})
	}
	return errs.orNil()
}

type credentialsDoc struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registrationDoc struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Credentials checks a login form.
func Credentials(email, password string) error {
	return runSchema(credentialsSchema, credentialsDoc{Email: email, Password: password}).orNil()
}

// Registration checks a sign-up form.
func Registration(email, password, fullName string) error {
	return runSchema(registrationSchema, registrationDoc{Email: email, Password: password, FullName: fullName}).orNil()
}

func runSchema(schema *gojsonschema.Schema, doc any) Errors {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return Errors{{Message: err.Error()}}
	}
	var errs Errors
	for _, re := range result.Errors() {
		errs = append(errs, FieldError{Field: re.Field(), Message: re.Description()})
	}
	return errs
}
