package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jiefei/models"
	"jiefei/services"
	"jiefei/utils"
)

// ProfileController serves the authenticated user's stats, calendar and
// profile aggregations.
type ProfileController struct {
	db      *gorm.DB
	checkin *services.CheckinService
}

// NewProfileController creates a new controller instance.
func NewProfileController(db *gorm.DB, checkin *services.CheckinService) *ProfileController {
	return &ProfileController{db: db, checkin: checkin}
}

// GetStats returns the user's counters and today's check-in state.
func (p *ProfileController) GetStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load user")
		return
	}

	todayStart, tomorrowStart := services.DayRange(time.Now(), p.checkin.Location())

	var todayRecords []models.DailyRecord
	if err := p.db.Where("user_id = ? AND date >= ? AND date < ?", userID, todayStart, tomorrowStart).
		Find(&todayRecords).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load records")
		return
	}

	hasPersist := false
	todayTakeoffs := 0
	for _, record := range todayRecords {
		switch record.Status {
		case models.StatusPersist:
			hasPersist = true
		case models.StatusTakeoff:
			todayTakeoffs++
		}
	}

	level := services.LevelFor(user.TotalTakeoffs)
	utils.Success(ctx, gin.H{
		"currentStreak": user.CurrentStreak,
		"maxStreak":     user.MaxStreak,
		"merit":         user.Merit,
		"totalTakeoffs": user.TotalTakeoffs,
		"todayTakeoffs": todayTakeoffs,
		"hasPersist":    hasPersist,
		"startDate":     user.StartDate,
		"level":         level,
		"nextLevel":     services.NextLevel(user.TotalTakeoffs),
		"levelProgress": services.ProgressToNext(user.TotalTakeoffs),
	})
}

// GetCalendar returns per-day persist/takeoff booleans for one month.
func (p *ProfileController) GetCalendar(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	location := p.checkin.Location()
	now := time.Now().In(location)
	year := now.Year()
	month := int(now.Month())
	if v := ctx.Query("year"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 2000 && n <= 2200 {
			year = n
		}
	}
	if v := ctx.Query("month"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 12 {
			month = n
		}
	}

	monthStart, monthEnd := services.MonthRange(year, time.Month(month), location)

	var records []models.DailyRecord
	if err := p.db.Where("user_id = ? AND date >= ? AND date < ?", userID, monthStart, monthEnd).
		Find(&records).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load records")
		return
	}

	type dayMarks struct {
		Persist bool `json:"persist"`
		Takeoff bool `json:"takeoff"`
	}
	calendar := map[string]*dayMarks{}
	for _, record := range records {
		key := services.DateAtLocation(record.Date, location).Format("2006-01-02")
		marks, ok := calendar[key]
		if !ok {
			marks = &dayMarks{}
			calendar[key] = marks
		}
		switch record.Status {
		case models.StatusPersist:
			marks.Persist = true
		case models.StatusTakeoff:
			marks.Takeoff = true
		}
	}

	utils.Success(ctx, gin.H{
		"year":         year,
		"month":        month,
		"calendarData": calendar,
	})
}

// GetProfile returns the profile page payload: user fields, a 7-day activity
// chart and derived statistics.
func (p *ProfileController) GetProfile(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load user")
		return
	}

	location := p.checkin.Location()
	now := time.Now()

	var allRecords []models.DailyRecord
	if err := p.db.Where("user_id = ?", userID).Order("date ASC").Find(&allRecords).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to load records")
		return
	}

	// 7-day chart, oldest day first.
	type chartPoint struct {
		Name    string `json:"name"`
		Date    string `json:"date"`
		Persist int    `json:"persist"`
		Takeoff int    `json:"takeoff"`
	}
	weekDays := []string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}
	chart := make([]chartPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		dayStart, dayEnd := services.DayRange(now.AddDate(0, 0, -i), location)
		point := chartPoint{
			Name: weekDays[dayStart.Weekday()],
			Date: dayStart.Format("01/02"),
		}
		for _, record := range allRecords {
			if record.Date.Before(dayStart) || !record.Date.Before(dayEnd) {
				continue
			}
			switch record.Status {
			case models.StatusPersist:
				point.Persist++
			case models.StatusTakeoff:
				point.Takeoff++
			}
		}
		chart = append(chart, point)
	}

	persistDays := len(services.PersistDays(allRecords, location))
	totalDays := int(now.Sub(user.StartDate).Hours()/24) + 1
	if totalDays < 1 {
		totalDays = 1
	}
	successRate := int(float64(persistDays)/float64(totalDays)*100 + 0.5)

	utils.Success(ctx, gin.H{
		"user":      publicUser(user),
		"chartData": chart,
		"stats": gin.H{
			"totalDays":     totalDays,
			"persistDays":   persistDays,
			"successRate":   successRate,
			"avgStreak":     services.AverageStreak(allRecords, location),
			"hasEnoughData": len(allRecords) >= 7,
		},
	})
}
