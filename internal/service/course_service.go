package service

import (
	"errors"
	"time"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/fitbook/fitbook/internal/repository"
	"github.com/fitbook/fitbook/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseUpdateFailed  = errors.New("course update affected no rows")
	ErrAlreadyBooked       = errors.New("course already booked")
	ErrCourseFull          = errors.New("course is full")
	ErrNoRemainingCredits  = errors.New("no remaining credits")
	ErrBookingNotFound     = errors.New("active booking not found")
)

type CourseService struct {
	courseRepo   *repository.CourseRepository
	bookingRepo  *repository.BookingRepository
	purchaseRepo *repository.CreditPurchaseRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	bookingRepo *repository.BookingRepository,
	purchaseRepo *repository.CreditPurchaseRepository,
) *CourseService {
	return &CourseService{
		courseRepo:   courseRepo,
		bookingRepo:  bookingRepo,
		purchaseRepo: purchaseRepo,
	}
}

// CreateCourse persists a new course owned by the coach's user id.
func (s *CourseService) CreateCourse(userID uuid.UUID, course *models.Course) (*models.Course, error) {
	course.ID = uuid.New()
	course.UserID = userID

	if err := s.courseRepo.CreateCourse(course); err != nil {
		logger.Log.Error("Failed to create course",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Course created",
		zap.String("course_id", course.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return s.courseRepo.GetCourseByID(course.ID)
}

// UpdateCourse overwrites an existing course after verifying it belongs to
// the requesting coach.
func (s *CourseService) UpdateCourse(userID uuid.UUID, course *models.Course) (*models.Course, error) {
	existing, err := s.courseRepo.GetOwnedCourse(course.ID, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		logger.Log.Warn("Course update rejected: not found or not owned",
			zap.String("course_id", course.ID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, ErrCourseNotFound
	}

	affected, err := s.courseRepo.UpdateCourse(course)
	if err != nil {
		logger.Log.Error("Failed to update course",
			zap.String("course_id", course.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCourseUpdateFailed
	}

	return s.courseRepo.GetCourseByID(course.ID)
}

// ListCourses returns all courses with coach user and skill loaded.
func (s *CourseService) ListCourses() ([]models.Course, error) {
	return s.courseRepo.ListCourses()
}

// Book reserves a seat: the course must exist, the user must not hold an
// active booking for it, the course must have a free seat, and the user must
// have unconsumed purchased credits (one credit per active booking).
func (s *CourseService) Book(userID, courseID uuid.UUID) error {
	course, err := s.courseRepo.GetCourseByID(courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrCourseNotFound
	}

	existing, err := s.bookingRepo.GetActiveBooking(userID, courseID)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.Log.Warn("Booking rejected: already booked",
			zap.String("user_id", userID.String()),
			zap.String("course_id", courseID.String()),
		)
		return ErrAlreadyBooked
	}

	seats, err := s.bookingRepo.CountActiveBookingsForCourse(courseID)
	if err != nil {
		return err
	}
	if seats >= int64(course.MaxParticipants) {
		logger.Log.Warn("Booking rejected: course full",
			zap.String("course_id", courseID.String()),
		)
		return ErrCourseFull
	}

	purchased, err := s.purchaseRepo.SumPurchasedCredits(userID)
	if err != nil {
		return err
	}
	used, err := s.bookingRepo.CountActiveBookingsForUser(userID)
	if err != nil {
		return err
	}
	if purchased-used <= 0 {
		logger.Log.Warn("Booking rejected: no remaining credits",
			zap.String("user_id", userID.String()),
		)
		return ErrNoRemainingCredits
	}

	booking := &models.CourseBooking{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		BookingAt: time.Now(),
	}

	if err := s.bookingRepo.CreateBooking(booking); err != nil {
		logger.Log.Error("Failed to create booking",
			zap.String("user_id", userID.String()),
			zap.String("course_id", courseID.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Course booked",
		zap.String("booking_id", booking.ID.String()),
		zap.String("course_id", courseID.String()),
	)

	return nil
}

// CancelBooking soft-cancels the user's active booking for the course.
// Cancelling an already-cancelled booking is rejected, not idempotent.
func (s *CourseService) CancelBooking(userID, courseID uuid.UUID) error {
	booking, err := s.bookingRepo.GetActiveBooking(userID, courseID)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	affected, err := s.bookingRepo.CancelBooking(booking.ID)
	if err != nil {
		logger.Log.Error("Failed to cancel booking",
			zap.String("booking_id", booking.ID.String()),
			zap.Error(err),
		)
		return err
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	logger.Log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
	)

	return nil
}
