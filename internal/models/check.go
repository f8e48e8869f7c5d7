// Package models defines the check record types and the persisted snapshot
// envelope. JSON field names are fixed by the existing data files and must
// round-trip exactly.
package models

// Status is the payment state of a check. The literals are the exact wire
// values used in existing data; an absent or empty value means pending.
type Status string

const (
	StatusPaid      Status = "ÖDENDİ"
	StatusPending   Status = "BEKLEMEDE"
	StatusCancelled Status = "İPTAL EDİLDİ"
)

func (s Status) IsPaid() bool      { return s == StatusPaid }
func (s Status) IsCancelled() bool { return s == StatusCancelled }

// Pending reports whether the status falls in the pending bucket, i.e. is
// neither paid nor cancelled. Unknown or empty values count as pending.
func (s Status) Pending() bool {
	return !s.IsPaid() && !s.IsCancelled()
}

// Check is a single post-dated check record. Dates are ISO YYYY-MM-DD
// strings; amounts are optional and a record is expected to carry the one
// matching the currency it was issued in (not enforced here).
type Check struct {
	ID            int64   `json:"id"`
	CompanyName   string  `json:"firma_adi"`
	CheckNumber   string  `json:"cek_no,omitempty"`
	BankName      string  `json:"banka,omitempty"`
	IssueDate     string  `json:"cek_tanzim_tarihi,omitempty"`
	DueDate       string  `json:"vade_tarihi,omitempty"`
	USD           *Amount `json:"dolar,omitempty"`
	EUR           *Amount `json:"euro,omitempty"`
	TL            *Amount `json:"tl,omitempty"`
	Status        Status  `json:"odeme_durumu,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
	AutoUpdatedAt string  `json:"autoUpdatedAt,omitempty"`
}

// Clone returns a deep copy; amount values are duplicated so mutating the
// copy never reaches the original.
func (c Check) Clone() Check {
	out := c
	out.USD = c.USD.clone()
	out.EUR = c.EUR.clone()
	out.TL = c.TL.clone()
	return out
}

// CloneAll deep-copies a record list.
func CloneAll(checks []Check) []Check {
	out := make([]Check, len(checks))
	for i, c := range checks {
		out[i] = c.Clone()
	}
	return out
}

// Patch carries partial updates for a check. Nil fields are left unchanged;
// ID and the store-owned timestamps cannot be patched.
type Patch struct {
	CompanyName *string
	CheckNumber *string
	BankName    *string
	IssueDate   *string
	DueDate     *string
	USD         *Amount
	EUR         *Amount
	TL          *Amount
	Status      *Status
}

// Apply merges the patch onto c.
func (p Patch) Apply(c *Check) {
	if p.CompanyName != nil {
		c.CompanyName = *p.CompanyName
	}
	if p.CheckNumber != nil {
		c.CheckNumber = *p.CheckNumber
	}
	if p.BankName != nil {
		c.BankName = *p.BankName
	}
	if p.IssueDate != nil {
		c.IssueDate = *p.IssueDate
	}
	if p.DueDate != nil {
		c.DueDate = *p.DueDate
	}
	if p.USD != nil {
		c.USD = p.USD.clone()
	}
	if p.EUR != nil {
		c.EUR = p.EUR.clone()
	}
	if p.TL != nil {
		c.TL = p.TL.clone()
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}
