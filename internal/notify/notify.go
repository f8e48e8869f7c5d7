// Package notify plans and dispatches due-date reminders for pending
// checks. Reminder dispatch is best effort: failures are reported to the
// caller but must never be treated as fatal by the application.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gokturk078/cektakip/internal/logging"
	"github.com/gokturk078/cektakip/internal/models"
)

// Reminders buckets pending checks by how soon they fall due. Checks due
// today or tomorrow share the most urgent bucket.
type Reminders struct {
	Today       []models.Check
	InThreeDays []models.Check
	InSevenDays []models.Check
}

func (r Reminders) Empty() bool {
	return len(r.Today) == 0 && len(r.InThreeDays) == 0 && len(r.InSevenDays) == 0
}

// Plan scans the records and fills the reminder buckets. Paid and
// cancelled checks never produce reminders; so do records without a
// parsable due date.
func Plan(records []models.Check, now time.Time) Reminders {
	var r Reminders
	for i := range records {
		c := &records[i]
		if !c.Status.Pending() {
			continue
		}
		days, ok := models.DaysUntil(c.DueDate, now)
		if !ok {
			continue
		}
		switch days {
		case 0, 1:
			r.Today = append(r.Today, c.Clone())
		case 3:
			r.InThreeDays = append(r.InThreeDays, c.Clone())
		case 7:
			r.InSevenDays = append(r.InSevenDays, c.Clone())
		}
	}
	return r
}

// Mailer delivers a composed reminder message.
type Mailer interface {
	Send(ctx context.Context, subject, body string) error
}

// Notifier turns reminder buckets into messages and hands them to the
// mailer.
type Notifier struct {
	mailer Mailer
	log    logging.Logger
}

func NewNotifier(mailer Mailer, log logging.Logger) *Notifier {
	return &Notifier{mailer: mailer, log: log.With("component", "notify")}
}

// Dispatch sends one summary mail covering all non-empty buckets. Nothing
// due means nothing sent.
func (n *Notifier) Dispatch(ctx context.Context, r Reminders) error {
	if r.Empty() {
		n.log.Debug(ctx, "no reminders due")
		return nil
	}

	body := ComposeBody(r)
	subject := fmt.Sprintf("Check reminder: %d due soon",
		len(r.Today)+len(r.InThreeDays)+len(r.InSevenDays))

	if err := n.mailer.Send(ctx, subject, body); err != nil {
		n.log.Warn(ctx, "reminder dispatch failed", "err", err)
		return fmt.Errorf("sending reminder: %w", err)
	}

	n.log.Info(ctx, "reminder sent",
		"today", len(r.Today), "in3", len(r.InThreeDays), "in7", len(r.InSevenDays))
	return nil
}

// ComposeBody renders the buckets as a plain-text summary.
func ComposeBody(r Reminders) string {
	var b strings.Builder
	section := func(title string, checks []models.Check) {
		if len(checks) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s:\n", title)
		for i := range checks {
			c := &checks[i]
			fmt.Fprintf(&b, "  - %s | %s | %s | due %s\n",
				c.CompanyName, c.BankName, DisplayAmount(c), c.DueDate)
		}
	}

	section("Due today or tomorrow", r.Today)
	section("Due in 3 days", r.InThreeDays)
	section("Due in 7 days", r.InSevenDays)
	return b.String()
}

// DisplayAmount formats the check's populated amount with its currency
// symbol, preferring USD, then EUR, then TL.
func DisplayAmount(c *models.Check) string {
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
