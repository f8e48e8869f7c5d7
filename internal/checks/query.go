package checks

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gokturk078/cektakip/internal/models"
)

// Filters narrow a search. Zero-valued fields are inactive; active filters
// AND together (and with the text query).
type Filters struct {
	// Status filters by exact match, except StatusPending which selects
	// the whole pending bucket (anything neither paid nor cancelled).
	Status models.Status

	// Currency keeps only records with a positive amount in that currency
	// ("USD", "EUR" or "TL").
	Currency string

	// Bank matches the bank name exactly.
	Bank string

	// MinAmount/MaxAmount bound the record's amount: the filtered
	// currency's amount when Currency is set, otherwise the maximum of
	// all populated amounts.
	MinAmount *models.Amount
	MaxAmount *models.Amount
}

// Search returns records matching the case-insensitive substring query
// (against company name, check number and bank name; any field suffices)
// further narrowed by the filters.
func (s *Store) Search(query string, f Filters) []models.Check {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))

	var result []models.Check
	for i := range s.checks {
		c := &s.checks[i]

		if q != "" && !matchesQuery(c, q) {
			continue
		}
		if f.Status != "" && !matchesStatus(c.Status, f.Status) {
			continue
		}
		if f.Currency != "" && !currencyAmount(c, f.Currency).Positive() {
			continue
		}
		if f.Bank != "" && c.BankName != f.Bank {
			continue
		}
		if !matchesRange(c, f) {
			continue
		}

		result = append(result, c.Clone())
	}
	return result
}

func matchesQuery(c *models.Check, q string) bool {
	return strings.Contains(strings.ToLower(c.CompanyName), q) ||
		strings.Contains(strings.ToLower(c.CheckNumber), q) ||
		strings.Contains(strings.ToLower(c.BankName), q)
}

func matchesStatus(have, want models.Status) bool {
	if want == models.StatusPending {
		return have.Pending()
	}
	return have == want
}

func currencyAmount(c *models.Check, currency string) *models.Amount {
	switch currency {
	case "USD":
		return c.USD
	case "EUR":
		return c.EUR
	case "TL":
		return c.TL
	default:
		return nil
	}
}

func matchesRange(c *models.Check, f Filters) bool {
	if f.MinAmount == nil && f.MaxAmount == nil {
		return true
	}

	var amount decimal.Decimal
	if f.Currency != "" {
		amount = currencyAmount(c, f.Currency).Decimal()
	} else {
		// No currency narrowed: compare against the largest populated
		// amount on the record.
		amount = decimal.Max(c.USD.Decimal(), c.EUR.Decimal(), c.TL.Decimal())
	}

	if f.MinAmount != nil && amount.LessThan(f.MinAmount.Decimal()) {
		return false
	}
	if f.MaxAmount != nil && amount.GreaterThan(f.MaxAmount.Decimal()) {
		return false
	}
	return true
}

// Sort orders records by a wire-named column. Date columns (name contains
// "tarihi") sort on the underlying timestamp with missing dates at epoch
// zero; numeric columns (dolar, euro, tl, id) coerce non-numbers to zero;
// everything else compares case-insensitively as strings with absent
// values first. The sort is stable; direction is "asc" or "desc".
func Sort(records []models.Check, column, direction string) []models.Check {
	out := models.CloneAll(records)
	desc := direction == "desc"

	less := lessFunc(column)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(&out[j], &out[i])
		}
		return less(&out[i], &out[j])
	})

	return out
}

func lessFunc(column string) func(a, b *models.Check) bool {
	if strings.Contains(column, "tarihi") {
		return func(a, b *models.Check) bool {
			return dateKey(a, column) < dateKey(b, column)
		}
	}

	switch column {
	case "dolar", "euro", "tl", "id":
		return func(a, b *models.Check) bool {
			return numberKey(a, column).LessThan(numberKey(b, column))
		}
	}

	return func(a, b *models.Check) bool {
		return strings.ToLower(stringKey(a, column)) < strings.ToLower(stringKey(b, column))
	}
}

func dateKey(c *models.Check, column string) int64 {
	var s string
	switch column {
	case "vade_tarihi":
		s = c.DueDate
	case "cek_tanzim_tarihi":
		s = c.IssueDate
	}
	t, ok := models.ParseDate(s)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

func numberKey(c *models.Check, column string) decimal.Decimal {
	switch column {
	case "dolar":
		return c.USD.Decimal()
	case "euro":
		return c.EUR.Decimal()
	case "tl":
		return c.TL.Decimal()
	case "id":
		return decimal.NewFromInt(c.ID)
	}
	return decimal.Zero
}

func stringKey(c *models.Check, column string) string {
	switch column {
	case "firma_adi":
		return c.CompanyName
	case "cek_no":
		return c.CheckNumber
	case "banka":
		return c.BankName
	case "odeme_durumu":
		return string(c.Status)
	case "createdAt":
		return c.CreatedAt
	case "updatedAt":
		return c.UpdatedAt
	case "autoUpdatedAt":
		return c.AutoUpdatedAt
	}
	return ""
}
