package repository

import (
	"errors"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRoleUnchanged is returned when the role flip during promotion matched
// no row, meaning the user was promoted concurrently.
var ErrRoleUnchanged = errors.New("user role update affected no rows")

type CoachRepository struct {
	db *gorm.DB
}

func NewCoachRepository(db *gorm.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

func (r *CoachRepository) GetCoachByID(id uuid.UUID) (*models.Coach, error) {
	var coach models.Coach
	err := r.db.Where("id = ?", id).First(&coach).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &coach, nil
}

func (r *CoachRepository) GetCoachByUserID(userID uuid.UUID) (*models.Coach, error) {
	var coach models.Coach
	err := r.db.Where("user_id = ?", userID).First(&coach).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &coach, nil
}

// ListCoaches returns a page of coaches with their user loaded.
func (r *CoachRepository) ListCoaches(limit, offset int) ([]models.Coach, error) {
	var coaches []models.Coach
	err := r.db.
		Preload("User").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&coaches).Error
	return coaches, err
}

// PromoteToCoach creates the coach row and flips the user role to COACH in
// one transaction, so a failed flip leaves no orphan coach row. The role
// update is guarded on role = USER; zero rows affected aborts the whole
// promotion with ErrRoleUnchanged.
func (r *CoachRepository) PromoteToCoach(coach *models.Coach) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(coach).Error; err != nil {
			return err
		}

		result := tx.Model(&models.User{}).
			Where("id = ? AND role = ?", coach.UserID, models.RoleUser).
			Update("role", models.RoleCoach)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRoleUnchanged
		}

		return nil
	})
}

// UpdateCoachWithSkills updates the coach's scalar fields and fully replaces
// its skill associations (delete-all then insert-all, last-writer-wins) in
// one transaction.
func (r *CoachRepository) UpdateCoachWithSkills(coach *models.Coach, links []models.CoachLinkSkill) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Coach{}).
			Where("id = ?", coach.ID).
			Updates(map[string]interface{}{
				"experience_years":  coach.ExperienceYears,
				"description":       coach.Description,
				"profile_image_url": coach.ProfileImageURL,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("coach_id = ?", coach.ID).Delete(&models.CoachLinkSkill{}).Error; err != nil {
			return err
		}

		return tx.Create(&links).Error
	})
}

// GetSkillIDs returns the skill ids currently linked to the coach.
func (r *CoachRepository) GetSkillIDs(coachID uuid.UUID) ([]uuid.UUID, error) {
	var links []models.CoachLinkSkill
	err := r.db.Where("coach_id = ?", coachID).Find(&links).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.SkillID)
	}
	return ids, nil
}
