package model

// Category labels transactions of one type. Categories may nest through
// ParentID; a parent must share the child's type and the chain must stay
// acyclic.
type Category struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description,omitempty"`
	Color       string          `json:"color,omitempty"`
	ParentID    int             `json:"parent_id,omitempty"` // 0 = top-level
	CreatedAt   Time            `json:"created_at"`
	UpdatedAt   Time            `json:"updated_at"`
}

// CategoryDraft holds the client-supplied fields for creating or updating a
// category.
type CategoryDraft struct {
	Name        string          `json:"name"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description,omitempty"`
	Color       string          `json:"color,omitempty"`
	ParentID    int             `json:"parent_id,omitempty"`
}
