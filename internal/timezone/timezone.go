package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

// Calendar layouts used for appointment and payment dates.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Date formats t as a calendar date in its own location.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func ValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// MonthRange returns the first day of the month and the first day of the next
// one, both as calendar dates.
func MonthRange(year int, month time.Month) (string, string) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Date(start), Date(start.AddDate(0, 1, 0))
}

// WeekStart returns the Monday of t's week as a calendar date.
func WeekStart(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7
	return Date(t.AddDate(0, 0, -offset))
}
