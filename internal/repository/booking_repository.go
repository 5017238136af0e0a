package repository

import (
	"errors"
	"time"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) CreateBooking(booking *models.CourseBooking) error {
	return r.db.Create(booking).Error
}

// GetActiveBooking returns the user's non-cancelled booking for the course.
func (r *BookingRepository) GetActiveBooking(userID, courseID uuid.UUID) (*models.CourseBooking, error) {
	var booking models.CourseBooking
	err := r.db.
		Where("user_id = ? AND course_id = ? AND cancelled_at IS NULL", userID, courseID).
		First(&booking).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &booking, nil
}

// ListActiveBookings returns the user's non-cancelled bookings with courses.
func (r *BookingRepository) ListActiveBookings(userID uuid.UUID) ([]models.CourseBooking, error) {
	var bookings []models.CourseBooking
	err := r.db.
		Preload("Course").
		Where("user_id = ? AND cancelled_at IS NULL", userID).
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, err
}

// CountActiveBookingsForCourse counts non-cancelled bookings on the course.
func (r *BookingRepository) CountActiveBookingsForCourse(courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.CourseBooking{}).
		Where("course_id = ? AND cancelled_at IS NULL", courseID).
		Count(&count).Error
	return count, err
}

// CountActiveBookingsForUser counts the user's non-cancelled bookings.
func (r *BookingRepository) CountActiveBookingsForUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.CourseBooking{}).
		Where("user_id = ? AND cancelled_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

// CancelBooking soft-cancels by setting cancelled_at; the row is never
// deleted. Guarding on cancelled_at IS NULL makes a second cancellation
// affect zero rows.
func (r *BookingRepository) CancelBooking(id uuid.UUID) (int64, error) {
	result := r.db.Model(&models.CourseBooking{}).
		Where("id = ? AND cancelled_at IS NULL", id).
		Update("cancelled_at", time.Now())
	return result.RowsAffected, result.Error
}
