package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokturk078/cektakip/internal/models"
)

func queryFixture() []models.Check {
	return []models.Check{
		{ID: 1, CompanyName: "Acme Ltd", CheckNumber: "CK-100", BankName: "GARANTİ BANKASI", TL: models.AmountFromFloat(100)},
		{ID: 2, CompanyName: "Globex", CheckNumber: "ACME-7", BankName: "NEAR EAST BANK", USD: models.AmountFromFloat(500), Status: models.StatusPaid},
		{ID: 3, CompanyName: "Initech", CheckNumber: "CK-200", BankName: "GARANTİ BANKASI", EUR: models.AmountFromFloat(50), Status: models.StatusCancelled},
	}
}

func TestSearch_SubstringAnyField(t *testing.T) {
	s, _ := newTestStore(t, queryFixture())

	// "acme" matches record 1 by company and record 2 by check number
	got := s.Search("acme", Filters{})
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestSearch_EmptyQueryReturnsAll(t *testing.T) {
	s, _ := newTestStore(t, queryFixture())
	assert.Len(t, s.Search("", Filters{}), 3)
	assert.Len(t, s.Search("   ", Filters{}), 3)
}

func TestSearch_StatusFilter(t *testing.T) {
	s, _ := newTestStore(t, queryFixture())

	got := s.Search("", Filters{Status: models.StatusPaid})
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	// the pending filter selects the pending bucket, not the literal
	got = s.Search("", Filters{Status: models.StatusPending})
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestSearch_CurrencyAndBankFilters(t *testing.T) {
	s, _ := newTestStore(t, queryFixture())

	got := s.Search("", Filters{Currency: "USD"})
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	got = s.Search("", Filters{Bank: "GARANTİ BANKASI"})
	assert.Len(t, got, 2)

	// filters AND together
	got = s.Search("", Filters{Bank: "GARANTİ BANKASI", Currency: "EUR"})
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestSearch_AmountRange(t *testing.T) {
	s, _ := newTestStore(t, queryFixture())

	min := models.AmountFromFloat(80)
	max := models.AmountFromFloat(200)

	// without a currency the record's largest amount is compared
	got := s.Search("", Filters{MinAmount: min, MaxAmount: max})
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	// with a currency the bound applies to that amount only
	got = s.Search("", Filters{Currency: "USD", MinAmount: min})
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestSort_DateColumn(t *testing.T) {
	records := []models.Check{
		{ID: 1, DueDate: "2024-06-05"},
		{ID: 2, DueDate: "2024-06-01"},
		{ID: 3}, // missing date sorts first ascending
	}

	got := Sort(records, "vade_tarihi", "asc")
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, int64(1), got[2].ID)

	got = Sort(records, "vade_tarihi", "desc")
	assert.Equal(t, int64(1), got[0].ID)
}

func TestSort_NumericColumn(t *testing.T) {
	records := []models.Check{
		{ID: 1, TL: models.AmountFromFloat(300)},
		{ID: 2, TL: models.AmountFromFloat(100)},
		{ID: 3}, // missing amount coerces to zero
	}

	got := Sort(records, "tl", "asc")
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, int64(1), got[2].ID)
}

func TestSort_StringColumnCaseInsensitive(t *testing.T) {
	records := []models.Check{
		{ID: 1, CompanyName: "beta"},
		{ID: 2, CompanyName: "Alpha"},
	}

	got := Sort(records, "firma_adi", "asc")
	assert.Equal(t, int64(2), got[0].ID)
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	records := []models.Check{{ID: 2}, {ID: 1}}
	_ = Sort(records, "id", "asc")
	assert.Equal(t, int64(2), records[0].ID)
}
