package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokturk078/cektakip/internal/models"
)

func statsFixture() []models.Check {
	return []models.Check{
		{ID: 1, TL: models.AmountFromFloat(100), DueDate: "2024-06-01"},
		{ID: 2, USD: models.AmountFromFloat(50), DueDate: "2024-06-05", Status: models.StatusPaid},
		{ID: 3, EUR: models.AmountFromFloat(20), DueDate: "2024-06-03", Status: models.StatusCancelled},
	}
}

func TestGetStats(t *testing.T) {
	s, _ := newTestStore(t, statsFixture())

	st := s.GetStats()

	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Paid)
	assert.Equal(t, 1, st.Pending)
	assert.Equal(t, 1, st.Cancelled)

	assert.Equal(t, "50", st.TotalUSD.String())
	assert.Equal(t, "20", st.TotalEUR.String())
	assert.Equal(t, "100", st.TotalTL.String())

	// only the pending record contributes to the pending totals
	assert.True(t, st.PendingUSD.IsZero())
	assert.True(t, st.PendingEUR.IsZero())
	assert.Equal(t, "100", st.PendingTL.String())

	// the clock is pinned at 2024-06-01; only record 1 is pending and due
	assert.Equal(t, 1, st.DueToday)
	assert.Equal(t, 1, st.DueInWeek)
}

func TestGetStats_MalformedDatesDoNotCount(t *testing.T) {
	s, _ := newTestStore(t, []models.Check{
		{ID: 1, DueDate: "not a date"},
		{ID: 2},
	})

	st := s.GetStats()
	assert.Equal(t, 2, st.Pending)
	assert.Zero(t, st.DueToday)
	assert.Zero(t, st.DueInWeek)
}

func TestGetUpcoming(t *testing.T) {
	s, _ := newTestStore(t, []models.Check{
		{ID: 1, DueDate: "2024-06-08"},
		{ID: 2, DueDate: "2024-06-02"},
		{ID: 3, DueDate: "2024-06-09"},                            // outside the window
		{ID: 4, DueDate: "2024-05-30"},                            // overdue, excluded
		{ID: 5, DueDate: "2024-06-03", Status: models.StatusPaid}, // not pending
		{ID: 6}, // no date
	})

	got := s.GetUpcoming(7)
	require.Len(t, got, 2)
	// ascending by due date
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
}

func TestGetUpcoming_DefaultWindow(t *testing.T) {
	s, _ := newTestStore(t, []models.Check{
		{ID: 1, DueDate: "2024-06-08"},
		{ID: 2, DueDate: "2024-06-09"},
	})

	got := s.GetUpcoming(0)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestGetOverdue(t *testing.T) {
	s, _ := newTestStore(t, []models.Check{
		{ID: 1, DueDate: "2024-05-20"},
		{ID: 2, DueDate: "2024-06-01"},                             // due today is not overdue
		{ID: 3, DueDate: "2024-05-01", Status: models.StatusPaid},  // paid never overdue
		{ID: 4, DueDate: "2024-05-25"},
	})

	got := s.GetOverdue()
	require.Len(t, got, 2)
	// store order preserved
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}
