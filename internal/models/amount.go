package models

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// Amount is an optional monetary value. A nil *Amount means the check does
// not carry that currency. On the wire it is a bare JSON number; numeric
// strings are accepted on input for tolerance, and unparsable values decode
// as zero rather than failing (read paths never error on data issues).
type Amount struct {
	dec decimal.Decimal
}

// NewAmount parses a decimal string such as "1250.50".
func NewAmount(s string) (*Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &Amount{dec: d}, nil
}

// AmountFromFloat converts a float, mainly for literals in tests and fixtures.
func AmountFromFloat(f float64) *Amount {
	return &Amount{dec: decimal.NewFromFloat(f)}
}

// AmountFromDecimal wraps an existing decimal value.
func AmountFromDecimal(d decimal.Decimal) *Amount {
	return &Amount{dec: d}
}

// Decimal returns the underlying value; nil-safe, nil yields zero.
func (a *Amount) Decimal() decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return a.dec
}

// Positive reports whether the amount is present and strictly positive.
func (a *Amount) Positive() bool {
	return a != nil && a.dec.IsPositive()
}

func (a *Amount) String() string {
	if a == nil {
		return ""
	}
	return a.dec.String()
}

func (a *Amount) clone() *Amount {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.dec.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		a.dec = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		// Tolerate malformed stored values: treat as zero.
		a.dec = decimal.Zero
		return nil
	}
	a.dec = d
	return nil
}
