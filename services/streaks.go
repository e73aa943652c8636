package services

import (
	"sort"
	"time"

	"jiefei/models"
)

// PersistDays returns the distinct calendar days holding at least one
// PERSIST record, as midnights in the given location, sorted ascending.
func PersistDays(records []models.DailyRecord, location *time.Location) []time.Time {
	seen := map[time.Time]bool{}
	for _, record := range records {
		if record.Status != models.StatusPersist {
			continue
		}
		seen[DateAtLocation(record.Date, location)] = true
	}
	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// StreakPeriods splits the persist-day history into runs of consecutive
// days and returns each run's length. A gap day (or a takeoff-only day,
// which by definition has no PERSIST record) closes the run; the still-open
// run counts as well.
func StreakPeriods(records []models.DailyRecord, location *time.Location) []int {
	days := PersistDays(records, location)
	if len(days) == 0 {
		return nil
	}
	periods := []int{}
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour || days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
			continue
		}
		periods = append(periods, run)
		run = 1
	}
	return append(periods, run)
}

// AverageStreak is the rounded mean length of all streak periods. This is a
// true historical average over completed runs, not the (current+max)/2
// stand-in the old client computed.
func AverageStreak(records []models.DailyRecord, location *time.Location) int {
	periods := StreakPeriods(records, location)
	if len(periods) == 0 {
		return 0
	}
	total := 0
	for _, length := range periods {
		total += length
	}
	return int(float64(total)/float64(len(periods)) + 0.5)
}
