package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jiefei/models"
)

// ActionInput is the validated check-in request. Duration and Method are
// only meaningful for TAKEOFF and are dropped for PERSIST.
type ActionInput struct {
	Type     string
	Duration *int
	Method   string
	Note     string
}

// ActionResult carries the counters after a successful check-in.
type ActionResult struct {
	NewStreak        int `json:"newStreak"`
	NewMerit         int `json:"newMerit"`
	NewTotalTakeoffs int `json:"newTotalTakeoffs"`
}

// CheckinService applies the daily PERSIST/TAKEOFF state machine. All writes
// of one submission happen inside a single transaction holding a row lock on
// the user, so racing submissions from the same user serialize.
type CheckinService struct {
	db            *gorm.DB
	location      *time.Location
	persistReward int
	takeoffReward int
}

// NewCheckinService wires the engine with its day-boundary zone and merit
// rewards.
func NewCheckinService(db *gorm.DB, location *time.Location, persistReward, takeoffReward int) *CheckinService {
	if location == nil {
		location = time.Local
	}
	if persistReward == 0 {
		persistReward = 10
	}
	if takeoffReward == 0 {
		takeoffReward = 1
	}
	return &CheckinService{db: db, location: location, persistReward: persistReward, takeoffReward: takeoffReward}
}

// Submit records one action for the user and returns the updated counters.
// Returns ErrInvalidAction, ErrUserNotFound or ErrAlreadyCheckedIn for the
// expected failures; any other error is a storage fault and nothing was
// written.
func (s *CheckinService) Submit(ctx context.Context, userID uint, input ActionInput) (*ActionResult, error) {
	if input.Type != models.StatusPersist && input.Type != models.StatusTakeoff {
		return nil, ErrInvalidAction
	}

	now := time.Now()
	todayStart, tomorrowStart := DayRange(now, s.location)

	var result ActionResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := lockForUpdate(tx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		// The duplicate check runs after the row lock is held, otherwise two
		// racing PERSIST submissions could both pass it and double-credit
		// the streak.
		var count int64
		if err := tx.Model(&models.DailyRecord{}).
			Where("user_id = ? AND status = ? AND date >= ? AND date < ?",
				userID, models.StatusPersist, todayStart, tomorrowStart).
			Count(&count).Error; err != nil {
			return err
		}
		alreadyPersistedToday := count > 0

		record := models.DailyRecord{
			UserID: userID,
			Date:   now,
			Status: input.Type,
			Note:   strings.TrimSpace(input.Note),
		}

		switch input.Type {
		case models.StatusPersist:
			if alreadyPersistedToday {
				return ErrAlreadyCheckedIn
			}
			user.CurrentStreak++
			user.Merit += s.persistReward
		case models.StatusTakeoff:
			user.TotalTakeoffs++
			user.Merit += s.takeoffReward
			// A relapse on a day already marked self-disciplined keeps that
			// day's streak credit.
			if !alreadyPersistedToday {
				user.CurrentStreak = 0
			}
			if input.Duration != nil && *input.Duration > 0 {
				record.Duration = input.Duration
			}
			record.Method = strings.TrimSpace(input.Method)
		}

		if user.CurrentStreak > user.MaxStreak {
			user.MaxStreak = user.CurrentStreak
		}
		user.LastCheckIn = &now

		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if record.Note != "" {
			post := models.Post{
				UserID:  userID,
				Content: record.Note,
				Type:    postTypeFor(input.Type, record.Method),
			}
			if err := tx.Create(&post).Error; err != nil {
				return err
			}
		}

		result = ActionResult{
			NewStreak:        user.CurrentStreak,
			NewMerit:         user.Merit,
			NewTotalTakeoffs: user.TotalTakeoffs,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// HasPersistedToday reports whether a PERSIST record exists for the user in
// the current day window.
func (s *CheckinService) HasPersistedToday(ctx context.Context, userID uint) (bool, error) {
	todayStart, tomorrowStart := DayRange(time.Now(), s.location)
	var count int64
	err := s.db.WithContext(ctx).Model(&models.DailyRecord{}).
		Where("user_id = ? AND status = ? AND date >= ? AND date < ?",
			userID, models.StatusPersist, todayStart, tomorrowStart).
		Count(&count).Error
	return count > 0, err
}

// Location exposes the configured day-boundary zone.
func (s *CheckinService) Location() *time.Location {
	return s.location
}

func postTypeFor(actionType, method string) string {
	if actionType == models.StatusPersist {
		return models.PostTypeSelfDiscipline
	}
	if method != "" {
		return method
	}
	return models.PostTypeTakeoff
}

// lockForUpdate adds a SELECT ... FOR UPDATE clause on dialects that support
// it. SQLite serializes writers on its own and rejects the syntax.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
