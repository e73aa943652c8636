package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiefei/models"
)

func TestCheckinPersistFlow(t *testing.T) {
	r, db := newTestRouter(t)
	_, token := newTestUserToken(t, db, "小王")

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/checkin", token, map[string]interface{}{
		"type": "PERSIST",
		"note": "打卡第1天",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		NewStreak        int `json:"newStreak"`
		NewMerit         int `json:"newMerit"`
		NewTotalTakeoffs int `json:"newTotalTakeoffs"`
	}
	decodeData(t, env, &data)
	assert.Equal(t, 1, data.NewStreak)
	assert.Equal(t, 10, data.NewMerit)
	assert.Equal(t, 0, data.NewTotalTakeoffs)

	// The note became a community post in the self-discipline zone.
	var post models.Post
	require.NoError(t, db.First(&post).Error)
	assert.Equal(t, models.PostTypeSelfDiscipline, post.Type)

	// Second PERSIST the same day conflicts.
	w, env = doJSON(t, r, http.MethodPost, "/api/v1/checkin", token, map[string]interface{}{
		"type": "PERSIST",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 40910, env.Code)

	// A takeoff after today's persist keeps the streak.
	w, env = doJSON(t, r, http.MethodPost, "/api/v1/checkin", token, map[string]interface{}{
		"type":     "TAKEOFF",
		"duration": 30,
		"method":   "日剧",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, env, &data)
	assert.Equal(t, 1, data.NewStreak)
	assert.Equal(t, 11, data.NewMerit)
	assert.Equal(t, 1, data.NewTotalTakeoffs)
}

func TestCheckinRejectsUnknownType(t *testing.T) {
	r, db := newTestRouter(t)
	_, token := newTestUserToken(t, db, "小李")

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/checkin", token, map[string]interface{}{
		"type": "LANDING",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40011, env.Code)
}

func TestCheckinRejectsNonPositiveDuration(t *testing.T) {
	r, db := newTestRouter(t)
	_, token := newTestUserToken(t, db, "小赵")

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/checkin", token, map[string]interface{}{
		"type":     "TAKEOFF",
		"duration": -5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckinRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/checkin", "", map[string]interface{}{
		"type": "PERSIST",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserStatsReflectsToday(t *testing.T) {
	r, db := newTestRouter(t)
	_, token := newTestUserToken(t, db, "小陈")

	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/checkin", token, map[string]interface{}{"type": "PERSIST"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/checkin", token, map[string]interface{}{"type": "TAKEOFF"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/checkin", token, map[string]interface{}{"type": "TAKEOFF"})

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/user/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		CurrentStreak int  `json:"currentStreak"`
		Merit         int  `json:"merit"`
		TotalTakeoffs int  `json:"totalTakeoffs"`
		TodayTakeoffs int  `json:"todayTakeoffs"`
		HasPersist    bool `json:"hasPersist"`
	}
	decodeData(t, env, &data)
	assert.Equal(t, 1, data.CurrentStreak)
	assert.Equal(t, 12, data.Merit)
	assert.Equal(t, 2, data.TotalTakeoffs)
	assert.Equal(t, 2, data.TodayTakeoffs)
	assert.True(t, data.HasPersist)
}

func TestWoodenFishAddsMerit(t *testing.T) {
	r, db := newTestRouter(t)
	user, token := newTestUserToken(t, db, "小孙")

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/user/woodfish", token, map[string]interface{}{"count": 108})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Added int `json:"added"`
		Merit int `json:"merit"`
	}
	decodeData(t, env, &data)
	assert.Equal(t, 108, data.Added)
	assert.Equal(t, 108, data.Merit)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, 108, stored.Merit)

	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/user/woodfish", token, map[string]interface{}{"count": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
