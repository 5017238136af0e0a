package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fitbook/fitbook/internal/service"
	"github.com/fitbook/fitbook/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CoachHandler serves the public coach browsing endpoints.
type CoachHandler struct {
	coachService *service.CoachService
}

func NewCoachHandler(coachService *service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// pagination reads per/page query params with sane defaults.
func pagination(c *gin.Context) (per, page int) {
	per, err := strconv.Atoi(c.Query("per"))
	if err != nil || per <= 0 {
		per = 10
	}
	page, err = strconv.Atoi(c.Query("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	return per, page
}

func (h *CoachHandler) GetCoaches(c *gin.Context) {
	per, page := pagination(c)

	coaches, err := h.coachService.ListCoaches(per, page)
	if err != nil {
		logger.Log.Error("Failed to list coaches", zap.Error(err))
		respondServerError(c)
		return
	}

	data := make([]gin.H, 0, len(coaches))
	for _, coach := range coaches {
		data = append(data, gin.H{
			"id":   coach.ID,
			"name": coach.User.Name,
		})
	}

	respondSuccess(c, http.StatusOK, data)
}

func (h *CoachHandler) GetCoach(c *gin.Context) {
	coachID, err := uuid.Parse(c.Param("coachId"))
	if err != nil {
		respondFailed(c, http.StatusBadRequest, "找不到該教練")
		return
	}

	coach, user, err := h.coachService.GetPublicDetail(coachID)
	if err != nil {
		if errors.Is(err, service.ErrCoachNotFound) {
			respondFailed(c, http.StatusBadRequest, "找不到該教練")
			return
		}
		logger.Log.Error("Failed to get coach", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"user": gin.H{
			"name": user.Name,
			"role": user.Role,
		},
		"coach": coach,
	})
}

func (h *CoachHandler) GetCoachCourses(c *gin.Context) {
	coachID, err := uuid.Parse(c.Param("coachId"))
	if err != nil {
		respondFailed(c, http.StatusBadRequest, "找不到該教練")
		return
	}

	per, page := pagination(c)

	courses, err := h.coachService.ListCourses(coachID, per, page)
	if err != nil {
		if errors.Is(err, service.ErrCoachNotFound) {
			respondFailed(c, http.StatusBadRequest, "找不到該教練")
			return
		}
		logger.Log.Error("Failed to list coach courses", zap.Error(err))
		respondServerError(c)
		return
	}

	data := make([]gin.H, 0, len(courses))
	for _, course := range courses {
		data = append(data, gin.H{
			"id":    course.ID,
			"name":  course.Name,
			"price": course.Price,
		})
	}

	respondSuccess(c, http.StatusOK, data)
}
