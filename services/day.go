package services

import "time"

// DateAtLocation truncates value to midnight in the given location. The day
// boundary zone is an explicit parameter everywhere instead of whatever the
// process happens to run in.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.Local
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns the half-open [start, end) window of the calendar day
// containing value in the given location.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// MonthRange returns the half-open window covering the given month.
func MonthRange(year int, month time.Month, location *time.Location) (time.Time, time.Time) {
	if location == nil {
		location = time.Local
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, location)
	return start, start.AddDate(0, 1, 0)
}

// SameDay reports whether a and b fall on the same calendar day in location.
func SameDay(a, b time.Time, location *time.Location) bool {
	return DateAtLocation(a, location).Equal(DateAtLocation(b, location))
}
