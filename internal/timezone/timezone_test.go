package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocationFallsBack(t *testing.T) {
	require.Equal(t, Location(DefaultTimezone).String(), Location("Not/AZone").String())
	require.False(t, IsValid(""))
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(2025, time.December)
	require.Equal(t, "2025-12-01", from)
	require.Equal(t, "2026-01-01", to)
}

func TestWeekStart(t *testing.T) {
	sunday := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	require.Equal(t, "2025-06-09", WeekStart(sunday))

	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2025-06-09", WeekStart(monday))
}

func TestValidDateAndTime(t *testing.T) {
	require.True(t, ValidDate("2025-06-10"))
	require.False(t, ValidDate("10/06/2025"))
	require.True(t, ValidTime("14:30"))
	require.False(t, ValidTime("2pm"))
}
