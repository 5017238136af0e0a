package service

import (
	"errors"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/fitbook/fitbook/internal/repository"
	"github.com/fitbook/fitbook/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSkillExists      = errors.New("skill name already exists")
	ErrSkillNotFound    = errors.New("skill not found")
	ErrSkillDeleteNoRow = errors.New("skill delete affected no rows")
)

type SkillService struct {
	skillRepo *repository.SkillRepository
}

func NewSkillService(skillRepo *repository.SkillRepository) *SkillService {
	return &SkillService{skillRepo: skillRepo}
}

func (s *SkillService) AddSkill(name string) (*models.Skill, error) {
	existing, err := s.skillRepo.GetSkillByName(name)
	if err != nil {
		logger.Log.Error("Failed to check skill name",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Skill creation rejected: duplicate name",
			zap.String("name", name),
		)
		return nil, ErrSkillExists
	}

	skill := &models.Skill{
		ID:   uuid.New(),
		Name: name,
	}

	if err := s.skillRepo.CreateSkill(skill); err != nil {
		logger.Log.Error("Failed to create skill",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Skill created",
		zap.String("skill_id", skill.ID.String()),
		zap.String("name", name),
	)

	return skill, nil
}

func (s *SkillService) ListSkills() ([]models.Skill, error) {
	return s.skillRepo.GetAllSkills()
}

func (s *SkillService) DeleteSkill(id uuid.UUID) error {
	skill, err := s.skillRepo.GetSkillByID(id)
	if err != nil {
		return err
	}
	if skill == nil {
		return ErrSkillNotFound
	}

	affected, err := s.skillRepo.DeleteSkill(id)
	if err != nil {
		logger.Log.Error("Failed to delete skill",
			zap.String("skill_id", id.String()),
			zap.Error(err),
		)
		return err
	}
	if affected == 0 {
		return ErrSkillDeleteNoRow
	}

	logger.Log.Info("Skill deleted",
		zap.String("skill_id", id.String()),
	)

	return nil
}
