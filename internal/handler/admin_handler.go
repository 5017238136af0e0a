package handler

import (
	"errors"
	"net/http"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/fitbook/fitbook/internal/service"
	"github.com/fitbook/fitbook/internal/utils"
	"github.com/fitbook/fitbook/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler serves coach promotion, coach self-management and course
// authoring.
type AdminHandler struct {
	coachService  *service.CoachService
	courseService *service.CourseService
}

func NewAdminHandler(coachService *service.CoachService, courseService *service.CourseService) *AdminHandler {
	return &AdminHandler{
		coachService:  coachService,
		courseService: courseService,
	}
}

type PostCoachRequest struct {
	ExperienceYears *int    `json:"experience_years"`
	Description     *string `json:"description"`
	ProfileImageURL *string `json:"profile_image_url"`
}

type PutCoachRequest struct {
	ExperienceYears *int      `json:"experience_years"`
	Description     *string   `json:"description"`
	ProfileImageURL *string   `json:"profile_image_url"`
	SkillIDs        *[]string `json:"skill_ids"`
}

type CourseRequest struct {
	SkillID         *string `json:"skill_id"`
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	StartAt         *string `json:"start_at"`
	EndAt           *string `json:"end_at"`
	MaxParticipants *int    `json:"max_participants"`
	MeetingURL      *string `json:"meeting_url"`
}

// PostCoach promotes a user to coach.
func (h *AdminHandler) PostCoach(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		respondFailed(c, http.StatusBadRequest, "使用者不存在")
		return
	}

	var req PostCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	if utils.IsMissingInt(req.ExperienceYears) || utils.IsInvalidCount(*req.ExperienceYears) ||
		utils.IsMissingString(req.Description) || utils.IsBlank(*req.Description) {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}
	// profile_image_url is optional, but when present it must be https
	if req.ProfileImageURL != nil && !utils.IsBlank(*req.ProfileImageURL) &&
		!utils.IsSecureURL(*req.ProfileImageURL) {
		logger.Log.Warn("Promotion rejected: insecure profile image url")
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	user, coach, err := h.coachService.Promote(userID, *req.ExperienceYears, *req.Description, req.ProfileImageURL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondFailed(c, http.StatusBadRequest, "使用者不存在")
		case errors.Is(err, service.ErrAlreadyCoach):
			respondFailed(c, http.StatusConflict, "使用者已經是教練")
		case errors.Is(err, service.ErrPromotionFailed):
			respondFailed(c, http.StatusBadRequest, "更新使用者失敗")
		default:
			logger.Log.Error("Promotion failed", zap.Error(err))
			respondServerError(c)
		}
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"user": gin.H{
			"name": user.Name,
			"role": user.Role,
		},
		"coach": coach,
	})
}

// PutCoach edits the authenticated coach's profile and replaces its skills.
func (h *AdminHandler) PutCoach(c *gin.Context) {
	var req PutCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	if utils.IsMissingInt(req.ExperienceYears) || utils.IsInvalidCount(*req.ExperienceYears) ||
		utils.IsMissingString(req.Description) || utils.IsBlank(*req.Description) ||
		utils.IsMissingString(req.ProfileImageURL) || utils.IsBlank(*req.ProfileImageURL) ||
		!utils.IsSecureURL(*req.ProfileImageURL) ||
		req.SkillIDs == nil || len(*req.SkillIDs) == 0 {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	skillIDs := make([]uuid.UUID, 0, len(*req.SkillIDs))
	for _, raw := range *req.SkillIDs {
		skillID, err := uuid.Parse(raw)
		if err != nil {
			respondFailed(c, http.StatusBadRequest, msgInvalidFields)
			return
		}
		skillIDs = append(skillIDs, skillID)
	}

	detail, err := h.coachService.UpdateProfile(currentUserID(c), *req.ExperienceYears, *req.Description, *req.ProfileImageURL, skillIDs)
	if err != nil {
		if errors.Is(err, service.ErrCoachNotFound) {
			respondFailed(c, http.StatusBadRequest, "找不到教練")
			return
		}
		logger.Log.Error("Coach update failed", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"coach": coachDetailJSON(detail),
	})
}

// GetCoach returns the authenticated coach's own detail.
func (h *AdminHandler) GetCoach(c *gin.Context) {
	detail, err := h.coachService.GetOwnDetail(currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrCoachNotFound) {
			respondFailed(c, http.StatusBadRequest, "找不到教練")
			return
		}
		logger.Log.Error("Failed to get coach detail", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccess(c, http.StatusOK, coachDetailJSON(detail))
}

// PostCourses creates a course owned by the authenticated coach.
func (h *AdminHandler) PostCourses(c *gin.Context) {
	course, ok := h.bindCourse(c)
	if !ok {
		return
	}

	created, err := h.courseService.CreateCourse(currentUserID(c), course)
	if err != nil {
		logger.Log.Error("Course creation failed", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"course": created,
	})
}

// PutCourses edits a course after the ownership check.
func (h *AdminHandler) PutCourses(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	course, ok := h.bindCourse(c)
	if !ok {
		return
	}
	course.ID = courseID

	updated, err := h.courseService.UpdateCourse(currentUserID(c), course)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			respondFailed(c, http.StatusBadRequest, "課程不存在")
		case errors.Is(err, service.ErrCourseUpdateFailed):
			respondFailed(c, http.StatusBadRequest, "更新課程失敗")
		default:
			logger.Log.Error("Course update failed", zap.Error(err))
			respondServerError(c)
		}
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"course": updated,
	})
}

// bindCourse decodes and validates the shared course payload. On failure it
// has already written the response and returns ok=false.
func (h *AdminHandler) bindCourse(c *gin.Context) (*models.Course, bool) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return nil, false
	}

	if utils.IsMissingString(req.SkillID) || utils.IsBlank(*req.SkillID) ||
		utils.IsMissingString(req.Name) || utils.IsBlank(*req.Name) ||
		utils.IsMissingString(req.Description) || utils.IsBlank(*req.Description) ||
		utils.IsMissingString(req.StartAt) || utils.IsBlank(*req.StartAt) ||
		utils.IsMissingString(req.EndAt) || utils.IsBlank(*req.EndAt) ||
		utils.IsMissingInt(req.MaxParticipants) || utils.IsInvalidCount(*req.MaxParticipants) ||
		utils.IsMissingString(req.MeetingURL) || utils.IsBlank(*req.MeetingURL) ||
		!utils.IsSecureURL(*req.MeetingURL) {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return nil, false
	}

	skillID, err := uuid.Parse(*req.SkillID)
	if err != nil {
		respondFailed(c, http.StatusBadRequest, msgInvalidFields)
		return nil, false
	}

	return &models.Course{
		SkillID:         skillID,
		Name:            *req.Name,
		Description:     *req.Description,
		StartAt:         *req.StartAt,
		EndAt:           *req.EndAt,
		MaxParticipants: *req.MaxParticipants,
		MeetingURL:      *req.MeetingURL,
	}, true
}

func coachDetailJSON(detail *service.CoachDetail) gin.H {
	return gin.H{
		"id":                detail.Coach.ID,
		"experience_years":  detail.Coach.ExperienceYears,
		"description":       detail.Coach.Description,
		"profile_image_url": detail.Coach.ProfileImageURL,
		"skill_ids":         detail.SkillIDs,
	}
}
