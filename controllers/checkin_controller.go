package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jiefei/services"
	"jiefei/utils"
)

// CheckinController is the HTTP boundary of the check-in engine.
type CheckinController struct {
	checkin *services.CheckinService
}

// NewCheckinController creates a new controller instance.
func NewCheckinController(checkin *services.CheckinService) *CheckinController {
	return &CheckinController{checkin: checkin}
}

// SubmitAction records a PERSIST or TAKEOFF action for the authenticated
// user and returns the updated counters.
func (c *CheckinController) SubmitAction(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Type     string `json:"type" binding:"required"`
		Duration *int   `json:"duration"`
		Method   string `json:"method"`
		Note     string `json:"note"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}
	if req.Duration != nil && *req.Duration <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40012, "duration must be positive")
		return
	}

	result, err := c.checkin.Submit(ctx.Request.Context(), userID, services.ActionInput{
		Type:     req.Type,
		Duration: req.Duration,
		Method:   utils.Sanitize(req.Method),
		Note:     utils.Sanitize(req.Note),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAction):
			utils.Error(ctx, http.StatusBadRequest, 40011, "invalid action type")
		case errors.Is(err, services.ErrUserNotFound):
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		case errors.Is(err, services.ErrAlreadyCheckedIn):
			utils.Error(ctx, http.StatusConflict, 40910, "今日已打卡自律")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to record action")
		}
		return
	}

	utils.Success(ctx, gin.H{
		"newStreak":        result.NewStreak,
		"newMerit":         result.NewMerit,
		"newTotalTakeoffs": result.NewTotalTakeoffs,
	})
}
