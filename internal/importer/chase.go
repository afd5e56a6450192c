package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// ChaseParser parses Chase bank checking CSV exports. Negative amounts
// become expense drafts, positive amounts income drafts.
type ChaseParser struct{}

const (
	chaseDateFormat = "01/02/2006"
	chaseNumFields  = 7
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns transaction drafts.
func (p *ChaseParser) Parse(r io.Reader) ([]model.TransactionDraft, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chaseNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var drafts []model.TransactionDraft
	for i, rec := range records[1:] {
		draft, err := parseChaseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func parseChaseRow(rec []string) (model.TransactionDraft, error) {
	date, err := time.Parse(chaseDateFormat, rec[chaseColDate])
	if err != nil {
		return model.TransactionDraft{}, fmt.Errorf("parsing date %q: %w", rec[chaseColDate], err)
	}

	amount, err := decimal.NewFromString(rec[chaseColAmount])
	if err != nil {
		return model.TransactionDraft{}, fmt.Errorf("parsing amount %q: %w", rec[chaseColAmount], err)
	}
	if amount.IsZero() {
		return model.TransactionDraft{}, fmt.Errorf("zero amount in %q", rec[chaseColDesc])
	}

	txType := model.TransactionIncome
	if amount.IsNegative() {
		txType = model.TransactionExpense
		amount = amount.Neg()
	}

	return model.TransactionDraft{
		Date:        model.NewTime(model.NormalizeDate(date)),
		Type:        txType,
		Amount:      amount,
		Description: rec[chaseColDesc],
	}, nil
}
