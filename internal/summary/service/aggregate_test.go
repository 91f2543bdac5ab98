package service

import (
	"testing"
	"time"

	optindomain "github.com/offsetcf/offsetcf/internal/optin/domain"
	"github.com/offsetcf/offsetcf/internal/summary/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marchWindow(t *testing.T) domain.Window {
	t.Helper()
	w, err := domain.ResolveMonth("2024-03", time.Now())
	require.NoError(t, err)
	return w
}

func event(updatedAt time.Time, offset string) optindomain.OptIn {
	return optindomain.OptIn{
		UpdatedAt:       updatedAt,
		EstimatedOffset: decimal.RequireFromString(offset),
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	totals, daily := Aggregate(nil, marchWindow(t))

	assert.Equal(t, int64(0), totals.OptIns)
	assert.True(t, totals.EstimatedOffset.IsZero())
	assert.NotNil(t, daily)
	assert.Empty(t, daily)
}

func TestAggregate_GroupsByDay(t *testing.T) {
	events := []optindomain.OptIn{
		event(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), "1.000"),
		event(time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC), "2.500"),
		event(time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC), "0.750"),
	}

	totals, daily := Aggregate(events, marchWindow(t))

	assert.Equal(t, int64(3), totals.OptIns)
	assert.Equal(t, "4.250", totals.EstimatedOffset.StringFixed(3))

	require.Len(t, daily, 2)
	assert.Equal(t, "2024-03-01", daily[0].Day)
	assert.Equal(t, int64(2), daily[0].OptIns)
	assert.Equal(t, "3.500", daily[0].EstimatedOffset.StringFixed(3))
	assert.Equal(t, "2024-03-03", daily[1].Day)
	assert.Equal(t, int64(1), daily[1].OptIns)
	assert.Equal(t, "0.750", daily[1].EstimatedOffset.StringFixed(3))
}

func TestAggregate_IndependentOfInputOrder(t *testing.T) {
	forward := []optindomain.OptIn{
		event(time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC), "0.100"),
		event(time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC), "0.200"),
		event(time.Date(2024, 3, 9, 1, 0, 0, 0, time.UTC), "0.300"),
		event(time.Date(2024, 3, 2, 23, 0, 0, 0, time.UTC), "0.400"),
	}
	reversed := make([]optindomain.OptIn, len(forward))
	for i, e := range forward {
		reversed[len(forward)-1-i] = e
	}

	window := marchWindow(t)
	totalsA, dailyA := Aggregate(forward, window)
	totalsB, dailyB := Aggregate(reversed, window)

	assert.Equal(t, totalsA, totalsB)
	assert.Equal(t, dailyA, dailyB)
	require.Len(t, dailyA, 3)
	assert.Equal(t, []string{"2024-03-02", "2024-03-05", "2024-03-09"},
		[]string{dailyA[0].Day, dailyA[1].Day, dailyA[2].Day})
}

func TestAggregate_FiltersOutsideWindow(t *testing.T) {
	window := marchWindow(t)
	events := []optindomain.OptIn{
		event(window.Start.Add(-time.Nanosecond), "9.999"), // Feb 29 (leap year)
		event(window.Start, "1.000"),                       // first instant, inclusive
		event(window.End.Add(-time.Millisecond), "2.000"),  // last instant of March
		event(window.End, "9.999"),                         // April 1, exclusive
	}

	totals, daily := Aggregate(events, window)

	assert.Equal(t, int64(2), totals.OptIns)
	assert.Equal(t, "3.000", totals.EstimatedOffset.StringFixed(3))
	require.Len(t, daily, 2)
	assert.Equal(t, "2024-03-01", daily[0].Day)
	assert.Equal(t, "2024-03-31", daily[1].Day)
}

func TestAggregate_TotalsMatchDailySums(t *testing.T) {
	window := marchWindow(t)
	events := make([]optindomain.OptIn, 0, 1000)
	for i := 0; i < 1000; i++ {
		day := 1 + i%28
		events = append(events, event(
			time.Date(2024, 3, day, i%24, 0, 0, 0, time.UTC),
			"0.001",
		))
	}

	totals, daily := Aggregate(events, window)

	// A float accumulator would drift here; decimals stay exact.
	assert.Equal(t, int64(1000), totals.OptIns)
	assert.Equal(t, "1.000", totals.EstimatedOffset.StringFixed(3))

	var count int64
	sum := decimal.Zero
	for _, bucket := range daily {
		count += bucket.OptIns
		sum = sum.Add(bucket.EstimatedOffset)
	}
	assert.Equal(t, totals.OptIns, count)
	assert.True(t, totals.EstimatedOffset.Equal(sum))
}
