package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiefei/models"
)

func newTestCheckin(t *testing.T) (*CheckinService, *models.User) {
	t.Helper()
	db := openTestDB(t)
	user := createTestUser(t, db, "陈柏文")
	return NewCheckinService(db, time.UTC, 10, 1), user
}

func reloadUser(t *testing.T, svc *CheckinService, id uint) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, svc.db.First(&user, id).Error)
	return user
}

func TestSubmitPersistFirstOfDay(t *testing.T) {
	svc, user := newTestCheckin(t)

	result, err := svc.Submit(context.Background(), user.ID, ActionInput{Type: models.StatusPersist})
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewStreak)
	assert.Equal(t, 10, result.NewMerit)
	assert.Equal(t, 0, result.NewTotalTakeoffs)

	stored := reloadUser(t, svc, user.ID)
	assert.Equal(t, 1, stored.CurrentStreak)
	assert.Equal(t, 1, stored.MaxStreak)
	assert.Equal(t, 10, stored.Merit)
	require.NotNil(t, stored.LastCheckIn)

	var count int64
	require.NoError(t, svc.db.Model(&models.DailyRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitPersistTwiceSameDayConflicts(t *testing.T) {
	svc, user := newTestCheckin(t)

	_, err := svc.Submit(context.Background(), user.ID, ActionInput{Type: models.StatusPersist})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), user.ID, ActionInput{Type: models.StatusPersist})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	// Nothing moved and no second record was appended.
	stored := reloadUser(t, svc, user.ID)
	assert.Equal(t, 1, stored.CurrentStreak)
	assert.Equal(t, 10, stored.Merit)

	var count int64
	require.NoError(t, svc.db.Model(&models.DailyRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitTakeoffResetsStreakWithoutPersist(t *testing.T) {
	svc, user := newTestCheckin(t)
	require.NoError(t, svc.db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"current_streak": 5, "max_streak": 5}).Error)

	result, err := svc.Submit(context.Background(), user.ID, ActionInput{Type: models.StatusTakeoff})
	require.NoError(t, err)
	assert.Equal(t, 0, result.NewStreak)
	assert.Equal(t, 1, result.NewMerit)
	assert.Equal(t, 1, result.NewTotalTakeoffs)

	stored := reloadUser(t, svc, user.ID)
	assert.Equal(t, 0, stored.CurrentStreak)
	assert.GreaterOrEqual(t, stored.MaxStreak, 5)
}

func TestSubmitTakeoffKeepsStreakAfterPersist(t *testing.T) {
	svc, user := newTestCheckin(t)

	_, err := svc.Submit(context.Background(), user.ID, ActionInput{Type: models.StatusPersist})
	require.NoError(t, err)

	result, err := svc.Submit(context.Background(), user.ID, ActionInput{Type: models.StatusTakeoff})
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewStreak)
	assert.Equal(t, 11, result.NewMerit)
	assert.Equal(t, 1, result.NewTotalTakeoffs)
}

func TestSubmitTakeoffTwiceAppendsTwoRecords(t *testing.T) {
	svc, user := newTestCheckin(t)
	duration := 30
	input := ActionInput{Type: models.StatusTakeoff, Duration: &duration, Method: "日剧"}

	_, err := svc.Submit(context.Background(), user.ID, input)
	require.NoError(t, err)
	result, err := svc.Submit(context.Background(), user.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 2, result.NewTotalTakeoffs)
	assert.Equal(t, 2, result.NewMerit)

	var records []models.DailyRecord
	require.NoError(t, svc.db.Find(&records).Error)
	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, models.StatusTakeoff, record.Status)
		require.NotNil(t, record.Duration)
		assert.Equal(t, 30, *record.Duration)
		assert.Equal(t, "日剧", record.Method)
	}
}

func TestSubmitPersistIgnoresTakeoffFields(t *testing.T) {
	svc, user := newTestCheckin(t)
	duration := 45

	_, err := svc.Submit(context.Background(), user.ID, ActionInput{
		Type:     models.StatusPersist,
		Duration: &duration,
		Method:   "韩剧",
	})
	require.NoError(t, err)

	var record models.DailyRecord
	require.NoError(t, svc.db.First(&record).Error)
	assert.Nil(t, record.Duration)
	assert.Empty(t, record.Method)
}

func TestSubmitNoteCreatesPost(t *testing.T) {
	svc, user := newTestCheckin(t)

	_, err := svc.Submit(context.Background(), user.ID, ActionInput{
		Type: models.StatusPersist,
		Note: "今天忍住没起飞，打卡第1天！",
	})
	require.NoError(t, err)

	var post models.Post
	require.NoError(t, svc.db.First(&post).Error)
	assert.Equal(t, models.PostTypeSelfDiscipline, post.Type)
	assert.Equal(t, user.ID, post.UserID)
	assert.Equal(t, 0, post.Likes)
}

func TestSubmitTakeoffNotePostType(t *testing.T) {
	svc, user := newTestCheckin(t)

	_, err := svc.Submit(context.Background(), user.ID, ActionInput{
		Type:   models.StatusTakeoff,
		Method: "直播",
		Note:   "没忍住。",
	})
	require.NoError(t, err)

	var post models.Post
	require.NoError(t, svc.db.First(&post).Error)
	assert.Equal(t, "直播", post.Type)

	// Without a method the post falls back to the generic takeoff tag.
	_, err = svc.Submit(context.Background(), user.ID, ActionInput{
		Type: models.StatusTakeoff,
		Note: "又破戒了。",
	})
	require.NoError(t, err)

	var posts []models.Post
	require.NoError(t, svc.db.Order("id ASC").Find(&posts).Error)
	require.Len(t, posts, 2)
	assert.Equal(t, models.PostTypeTakeoff, posts[1].Type)
}

func TestSubmitWithoutNoteCreatesNoPost(t *testing.T) {
	svc, user := newTestCheckin(t)

	_, err := svc.Submit(context.Background(), user.ID, ActionInput{Type: models.StatusPersist, Note: "   "})
	require.NoError(t, err)

	var count int64
	require.NoError(t, svc.db.Model(&models.Post{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitInvalidActionType(t *testing.T) {
	svc, user := newTestCheckin(t)

	_, err := svc.Submit(context.Background(), user.ID, ActionInput{Type: "FLY"})
	assert.ErrorIs(t, err, ErrInvalidAction)

	var count int64
	require.NoError(t, svc.db.Model(&models.DailyRecord{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitUnknownUser(t *testing.T) {
	svc, _ := newTestCheckin(t)

	_, err := svc.Submit(context.Background(), 9999, ActionInput{Type: models.StatusPersist})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSubmitMaxStreakNeverDecreases(t *testing.T) {
	svc, user := newTestCheckin(t)
	require.NoError(t, svc.db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"current_streak": 2, "max_streak": 9}).Error)

	_, err := svc.Submit(context.Background(), user.ID, ActionInput{Type: models.StatusPersist})
	require.NoError(t, err)

	stored := reloadUser(t, svc, user.ID)
	assert.Equal(t, 3, stored.CurrentStreak)
	assert.Equal(t, 9, stored.MaxStreak)
}

func TestSubmitNewUserScenario(t *testing.T) {
	svc, user := newTestCheckin(t)
	ctx := context.Background()

	result, err := svc.Submit(ctx, user.ID, ActionInput{Type: models.StatusPersist})
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewStreak)
	assert.Equal(t, 10, result.NewMerit)

	_, err = svc.Submit(ctx, user.ID, ActionInput{Type: models.StatusPersist})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	result, err = svc.Submit(ctx, user.ID, ActionInput{Type: models.StatusTakeoff})
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewTotalTakeoffs)
	assert.Equal(t, 11, result.NewMerit)
	assert.Equal(t, 1, result.NewStreak)
}

func TestHasPersistedToday(t *testing.T) {
	svc, user := newTestCheckin(t)
	ctx := context.Background()

	has, err := svc.HasPersistedToday(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = svc.Submit(ctx, user.ID, ActionInput{Type: models.StatusTakeoff})
	require.NoError(t, err)
	has, err = svc.HasPersistedToday(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = svc.Submit(ctx, user.ID, ActionInput{Type: models.StatusPersist})
	require.NoError(t, err)
	has, err = svc.HasPersistedToday(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, has)
}
