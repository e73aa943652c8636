package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jiefei/services"
	"jiefei/utils"
)

// MeritController handles the wooden-fish merit clicker.
type MeritController struct {
	merit *services.MeritService
}

// NewMeritController creates a new controller instance.
func NewMeritController(merit *services.MeritService) *MeritController {
	return &MeritController{merit: merit}
}

// WoodenFish credits a batch of taps to the user's merit.
func (m *MeritController) WoodenFish(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Count int `json:"count"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	newMerit, err := m.merit.Tap(ctx.Request.Context(), userID, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCount):
			utils.Error(ctx, http.StatusBadRequest, 40031, "invalid count")
		case errors.Is(err, services.ErrUserNotFound):
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to add merit")
		}
		return
	}

	utils.Success(ctx, gin.H{"added": req.Count, "merit": newMerit})
}
