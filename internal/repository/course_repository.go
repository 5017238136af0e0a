package repository

import (
	"errors"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) CreateCourse(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *CourseRepository) GetCourseByID(id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := r.db.Where("id = ?", id).First(&course).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &course, nil
}

// GetOwnedCourse returns the course only when it belongs to the given user.
func (r *CourseRepository) GetOwnedCourse(id, userID uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&course).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &course, nil
}

// ListCourses returns all courses with coach user and skill loaded.
func (r *CourseRepository) ListCourses() ([]models.Course, error) {
	var courses []models.Course
	err := r.db.
		Preload("User").
		Preload("Skill").
		Order("start_at ASC").
		Find(&courses).Error
	return courses, err
}

// ListCoursesByUserID returns a page of the coach's courses.
func (r *CourseRepository) ListCoursesByUserID(userID uuid.UUID, limit, offset int) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error
	return courses, err
}

// UpdateCourse overwrites the course's editable fields and returns the rows
// affected.
func (r *CourseRepository) UpdateCourse(course *models.Course) (int64, error) {
	result := r.db.Model(&models.Course{}).
		Where("id = ?", course.ID).
		Updates(map[string]interface{}{
			"skill_id":         course.SkillID,
			"name":             course.Name,
			"description":      course.Description,
			"start_at":         course.StartAt,
			"end_at":           course.EndAt,
			"max_participants": course.MaxParticipants,
			"meeting_url":      course.MeetingURL,
		})
	return result.RowsAffected, result.Error
}
