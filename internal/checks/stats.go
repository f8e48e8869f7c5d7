package checks

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gokturk078/cektakip/internal/models"
)

// Stats is the dashboard summary, computed in a single pass.
type Stats struct {
	Total     int
	Paid      int
	Pending   int
	Cancelled int

	// Pending records due exactly today / within the next 7 days.
	DueToday  int
	DueInWeek int

	// Running totals over all records, and over pending records only.
	TotalUSD   decimal.Decimal
	TotalEUR   decimal.Decimal
	TotalTL    decimal.Decimal
	PendingUSD decimal.Decimal
	PendingEUR decimal.Decimal
	PendingTL  decimal.Decimal
}

// GetStats summarizes the current record set. Records with malformed or
// missing dates simply do not count toward the due windows.
func (s *Store) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	st := Stats{Total: len(s.checks)}

	for i := range s.checks {
		c := &s.checks[i]

		switch {
		case c.Status.IsPaid():
			st.Paid++
		case c.Status.IsCancelled():
			st.Cancelled++
		}

		st.TotalUSD = st.TotalUSD.Add(c.USD.Decimal())
		st.TotalEUR = st.TotalEUR.Add(c.EUR.Decimal())
		st.TotalTL = st.TotalTL.Add(c.TL.Decimal())

		if !c.Status.Pending() {
			continue
		}

		st.PendingUSD = st.PendingUSD.Add(c.USD.Decimal())
		st.PendingEUR = st.PendingEUR.Add(c.EUR.Decimal())
		st.PendingTL = st.PendingTL.Add(c.TL.Decimal())

		if days, ok := models.DaysUntil(c.DueDate, now); ok {
			if days == 0 {
				st.DueToday++
			}
			if days >= 0 && days <= 7 {
				st.DueInWeek++
			}
		}
	}

	st.Pending = st.Total - st.Paid - st.Cancelled
	return st
}

// GetUpcoming returns pending records due within [today, today+daysAhead]
// inclusive, ascending by due date. Records without a due date are
// excluded. A non-positive daysAhead defaults to 7.
func (s *Store) GetUpcoming(daysAhead int) []models.Check {
	if daysAhead <= 0 {
		daysAhead = 7
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var upcoming []models.Check
	for i := range s.checks {
		c := &s.checks[i]
		if !c.Status.Pending() {
			continue
		}
		days, ok := models.DaysUntil(c.DueDate, now)
		if !ok || days < 0 || days > daysAhead {
			continue
		}
		upcoming = append(upcoming, c.Clone())
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		ti, _ := models.ParseDate(upcoming[i].DueDate)
		tj, _ := models.ParseDate(upcoming[j].DueDate)
		return ti.Before(tj)
	})

	return upcoming
}

// GetOverdue returns pending records whose due date is strictly before
// today, in store order.
func (s *Store) GetOverdue() []models.Check {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var overdue []models.Check
	for i := range s.checks {
		c := &s.checks[i]
		if !c.Status.Pending() {
			continue
		}
		if days, ok := models.DaysUntil(c.DueDate, now); ok && days < 0 {
			overdue = append(overdue, c.Clone())
		}
	}
	return overdue
}
