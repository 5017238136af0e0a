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
	ErrAlreadyCoach    = errors.New("user is already a coach")
	ErrCoachNotFound   = errors.New("coach not found")
	ErrPromotionFailed = errors.New("role promotion failed")
)

// CoachDetail is the coach self-view projection including linked skill ids.
type CoachDetail struct {
	Coach    *models.Coach
	SkillIDs []uuid.UUID
}

type CoachService struct {
	coachRepo  *repository.CoachRepository
	userRepo   *repository.UserRepository
	courseRepo *repository.CourseRepository
}

func NewCoachService(
	coachRepo *repository.CoachRepository,
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
) *CoachService {
	return &CoachService{
		coachRepo:  coachRepo,
		userRepo:   userRepo,
		courseRepo: courseRepo,
	}
}

// Promote turns the user into a coach: a coach row plus a USER -> COACH role
// flip, both in one transaction. A user can be promoted at most once.
func (s *CoachService) Promote(userID uuid.UUID, experienceYears int, description string, profileImageURL *string) (*models.User, *models.Coach, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		logger.Log.Error("Failed to load user for promotion",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, nil, err
	}
	if user == nil {
		logger.Log.Warn("Promotion rejected: user not found",
			zap.String("user_id", userID.String()),
		)
		return nil, nil, ErrUserNotFound
	}
	if user.Role == models.RoleCoach {
		logger.Log.Warn("Promotion rejected: already a coach",
			zap.String("user_id", userID.String()),
		)
		return nil, nil, ErrAlreadyCoach
	}

	coach := &models.Coach{
		ID:              uuid.New(),
		UserID:          userID,
		ExperienceYears: experienceYears,
		Description:     description,
		ProfileImageURL: profileImageURL,
	}

	if err := s.coachRepo.PromoteToCoach(coach); err != nil {
		if errors.Is(err, repository.ErrRoleUnchanged) {
			logger.Log.Warn("Promotion failed: role flip affected no rows",
				zap.String("user_id", userID.String()),
			)
			return nil, nil, ErrPromotionFailed
		}
		logger.Log.Error("Failed to promote user",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, nil, err
	}

	promoted, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, nil, err
	}

	logger.Log.Info("User promoted to coach",
		zap.String("user_id", userID.String()),
		zap.String("coach_id", coach.ID.String()),
	)

	return promoted, coach, nil
}

// UpdateProfile updates the coach's scalar fields and fully replaces its
// skill links; the previous skill set is discarded, not merged.
func (s *CoachService) UpdateProfile(userID uuid.UUID, experienceYears int, description, profileImageURL string, skillIDs []uuid.UUID) (*CoachDetail, error) {
	coach, err := s.coachRepo.GetCoachByUserID(userID)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		logger.Log.Warn("Coach profile update rejected: coach not found",
			zap.String("user_id", userID.String()),
		)
		return nil, ErrCoachNotFound
	}

	coach.ExperienceYears = experienceYears
	coach.Description = description
	coach.ProfileImageURL = &profileImageURL

	links := make([]models.CoachLinkSkill, 0, len(skillIDs))
	for _, skillID := range skillIDs {
		links = append(links, models.CoachLinkSkill{
			ID:      uuid.New(),
			CoachID: coach.ID,
			SkillID: skillID,
		})
	}

	if err := s.coachRepo.UpdateCoachWithSkills(coach, links); err != nil {
		logger.Log.Error("Failed to update coach profile",
			zap.String("coach_id", coach.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Coach profile updated",
		zap.String("coach_id", coach.ID.String()),
		zap.Int("skill_count", len(skillIDs)),
	)

	return s.getDetail(coach.ID)
}

// GetOwnDetail returns the authenticated coach's profile with skill ids.
func (s *CoachService) GetOwnDetail(userID uuid.UUID) (*CoachDetail, error) {
	coach, err := s.coachRepo.GetCoachByUserID(userID)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		return nil, ErrCoachNotFound
	}
	return s.getDetail(coach.ID)
}

func (s *CoachService) getDetail(coachID uuid.UUID) (*CoachDetail, error) {
	coach, err := s.coachRepo.GetCoachByID(coachID)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		return nil, ErrCoachNotFound
	}

	skillIDs, err := s.coachRepo.GetSkillIDs(coachID)
	if err != nil {
		return nil, err
	}

	return &CoachDetail{Coach: coach, SkillIDs: skillIDs}, nil
}

// ListCoaches returns a page of coaches with their users loaded.
func (s *CoachService) ListCoaches(per, page int) ([]models.Coach, error) {
	return s.coachRepo.ListCoaches(per, (page-1)*per)
}

// GetPublicDetail returns the coach and its user for the public detail view.
func (s *CoachService) GetPublicDetail(coachID uuid.UUID) (*models.Coach, *models.User, error) {
	coach, err := s.coachRepo.GetCoachByID(coachID)
	if err != nil {
		return nil, nil, err
	}
	if coach == nil {
		return nil, nil, ErrCoachNotFound
	}

	user, err := s.userRepo.GetUserByID(coach.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrCoachNotFound
	}

	return coach, user, nil
}

// ListCourses returns a page of the coach's courses, resolved through the
// coach's user id since courses are keyed by the owning user.
func (s *CoachService) ListCourses(coachID uuid.UUID, per, page int) ([]models.Course, error) {
	coach, err := s.coachRepo.GetCoachByID(coachID)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		return nil, ErrCoachNotFound
	}

	return s.courseRepo.ListCoursesByUserID(coach.UserID, per, (page-1)*per)
}
