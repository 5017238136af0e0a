package repository

import (
	"errors"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) CreateSkill(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

func (r *SkillRepository) GetSkillByID(id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.Where("id = ?", id).First(&skill).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &skill, nil
}

func (r *SkillRepository) GetSkillByName(name string) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.Where("name = ?", name).First(&skill).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &skill, nil
}

func (r *SkillRepository) GetAllSkills() ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.Order("created_at ASC").Find(&skills).Error
	return skills, err
}

// DeleteSkill removes the skill by id and returns the rows affected.
func (r *SkillRepository) DeleteSkill(id uuid.UUID) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&models.Skill{})
	return result.RowsAffected, result.Error
}
