package cli

import (
	"fmt"
	"io"

	"github.com/gokturk078/cektakip/internal/models"
)

func statusLabel(s models.Status) string {
	if s.Pending() {
		return string(models.StatusPending)
	}
	return string(s)
}

func amountLabel(c *models.Check) string {
	switch {
	case c.USD.Positive():
		return "$" + c.USD.String()
	case c.EUR.Positive():
		return "€" + c.EUR.String()
	case c.TL.Positive():
		return "₺" + c.TL.String()
	default:
		return "-"
	}
}

// printCheckLine renders a record as a single table row.
func printCheckLine(w io.Writer, c *models.Check) {
	fmt.Fprintf(w, "%4d  %-24s  %-12s  %-20s  %-10s  %12s  %s\n",
		c.ID, c.CompanyName, c.CheckNumber, c.BankName, c.DueDate, amountLabel(c), statusLabel(c.Status))
}

// printCheckDetail renders a record field by field.
func printCheckDetail(w io.Writer, c *models.Check) {
	fmt.Fprintf(w, "ID:        %d\n", c.ID)
	fmt.Fprintf(w, "Company:   %s\n", c.CompanyName)
	fmt.Fprintf(w, "Check no:  %s\n", c.CheckNumber)
	fmt.Fprintf(w, "Bank:      %s\n", c.BankName)
	fmt.Fprintf(w, "Issued:    %s\n", c.IssueDate)
	fmt.Fprintf(w, "Due:       %s\n", c.DueDate)
	fmt.Fprintf(w, "Amount:    %s\n", amountLabel(c))
	fmt.Fprintf(w, "Status:    %s\n", statusLabel(c.Status))
	if c.CreatedAt != "" {
		fmt.Fprintf(w, "Created:   %s\n", c.CreatedAt)
	}
	if c.UpdatedAt != "" {
		fmt.Fprintf(w, "Updated:   %s\n", c.UpdatedAt)
	}
	if c.AutoUpdatedAt != "" {
		fmt.Fprintf(w, "Auto-upd:  %s\n", c.AutoUpdatedAt)
	}
}
