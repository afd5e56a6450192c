package importer

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/model"
)

func TestChaseParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/chase_checking.csv")
	require.NoError(t, err)

	p := &ChaseParser{}
	drafts, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Len(t, drafts, 6)

	// First: GITHUB subscription, a debit, becomes a positive expense.
	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", drafts[0].Description)
	assert.Equal(t, model.TransactionExpense, drafts[0].Type)
	assert.Equal(t, "4.00", drafts[0].Amount.StringFixed(2))
	assert.Equal(t, 2025, drafts[0].Date.Year())
	assert.Equal(t, 1, int(drafts[0].Date.Month()))
	assert.Equal(t, 3, drafts[0].Date.Day())

	// Fourth: ACME income (positive in the export).
	assert.Equal(t, "ACME CONSULTING INVOICE 1042", drafts[3].Description)
	assert.Equal(t, model.TransactionIncome, drafts[3].Type)
	assert.Equal(t, "3500.00", drafts[3].Amount.StringFixed(2))
}

func TestChaseParser_AmountsAlwaysPositive(t *testing.T) {
	data, err := os.ReadFile("../../testdata/chase_checking.csv")
	require.NoError(t, err)

	p := &ChaseParser{}
	drafts, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)

	for _, d := range drafts {
		assert.True(t, d.Amount.IsPositive(), "expected positive amount for %s", d.Description)
	}
}

func TestChaseParser_DatesNormalizedToNoonUTC(t *testing.T) {
	data, err := os.ReadFile("../../testdata/chase_checking.csv")
	require.NoError(t, err)

	p := &ChaseParser{}
	drafts, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)

	for _, d := range drafts {
		assert.Equal(t, 12, d.Date.Hour())
		assert.Equal(t, "UTC", d.Date.Location().String())
	}
}

func TestChaseParser_ReferencesLeftUnset(t *testing.T) {
	data, err := os.ReadFile("../../testdata/chase_checking.csv")
	require.NoError(t, err)

	p := &ChaseParser{}
	drafts, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)

	for _, d := range drafts {
		assert.Zero(t, d.AccountID)
		assert.Zero(t, d.CategoryID)
	}
}

func TestChaseParser_EmptyFile(t *testing.T) {
	p := &ChaseParser{}
	drafts, err := p.Parse(strings.NewReader("Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"))
	require.NoError(t, err)
	assert.Nil(t, drafts)
}

func TestChaseParser_BadDate(t *testing.T) {
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,NOTADATE,desc,-4.00,ACH_DEBIT,100.00,\n"
	p := &ChaseParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestChaseParser_ZeroAmount(t *testing.T) {
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,01/03/2025,desc,0.00,ACH_DEBIT,100.00,\n"
	p := &ChaseParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "zero amount")
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("chase"))
	assert.NotNil(t, r.Get("CHASE"))
	assert.Nil(t, r.Get("unknown"))
	assert.Contains(t, r.Formats(), "chase")
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	assert.Panics(t, func() { r.Register(&ChaseParser{}) })
}
