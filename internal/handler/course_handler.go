package handler

import (
	"errors"
	"net/http"

	"github.com/fitbook/fitbook/internal/service"
	"github.com/fitbook/fitbook/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CourseHandler serves the public course list and the booking lifecycle.
type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func (h *CourseHandler) GetCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses()
	if err != nil {
		logger.Log.Error("Failed to list courses", zap.Error(err))
		respondServerError(c)
		return
	}

	data := make([]gin.H, 0, len(courses))
	for _, course := range courses {
		data = append(data, gin.H{
			"id":               course.ID,
			"coach_name":       course.User.Name,
			"skill_name":       course.Skill.Name,
			"name":             course.Name,
			"description":      course.Description,
			"start_at":         course.StartAt,
			"end_at":           course.EndAt,
			"max_participants": course.MaxParticipants,
			"price":            course.Price,
		})
	}

	respondSuccess(c, http.StatusOK, data)
}

func (h *CourseHandler) PostBooking(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		respondFailed(c, http.StatusBadRequest, msgBadID)
		return
	}

	if err := h.courseService.Book(currentUserID(c), courseID); err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			respondFailed(c, http.StatusBadRequest, msgBadID)
		case errors.Is(err, service.ErrAlreadyBooked):
			respondFailed(c, http.StatusBadRequest, "已經報名過此課程")
		case errors.Is(err, service.ErrCourseFull):
			respondFailed(c, http.StatusBadRequest, "已達最大參加人數")
		case errors.Is(err, service.ErrNoRemainingCredits):
			respondFailed(c, http.StatusBadRequest, "已無可使用堂數")
		default:
			logger.Log.Error("Booking failed", zap.Error(err))
			respondServerError(c)
		}
		return
	}

	respondSuccess(c, http.StatusCreated, nil)
}

// DeleteBooking cancels an active booking. A second cancellation finds no
// active booking and is rejected.
func (h *CourseHandler) DeleteBooking(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		respondFailed(c, http.StatusBadRequest, msgBadID)
		return
	}

	if err := h.courseService.CancelBooking(currentUserID(c), courseID); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			respondFailed(c, http.StatusBadRequest, msgBadID)
			return
		}
		logger.Log.Error("Booking cancellation failed", zap.Error(err))
		respondServerError(c)
		return
	}

	respondSuccess(c, http.StatusOK, nil)
}
