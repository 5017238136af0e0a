package testutil

import (
	"time"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/fitbook/fitbook/internal/utils"
	"github.com/google/uuid"
)

// CreateTestUser creates a user fixture with a hashed password.
func CreateTestUser(name, email, password string, role models.Role) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
	}, nil
}

// DefaultTestUser returns a default regular user
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("testuser", "test@example.com", "Test1234", models.RoleUser)
}

// CreateTestCoach creates a coach fixture for the given user.
func CreateTestCoach(userID uuid.UUID, experienceYears int, description string) *models.Coach {
	return &models.Coach{
		ID:              uuid.New(),
		UserID:          userID,
		ExperienceYears: experienceYears,
		Description:     description,
	}
}

// CreateTestSkill creates a skill fixture.
func CreateTestSkill(name string) *models.Skill {
	return &models.Skill{
		ID:   uuid.New(),
		Name: name,
	}
}

// CreateTestCourse creates a course fixture owned by the given user.
func CreateTestCourse(userID, skillID uuid.UUID, name string, maxParticipants int) *models.Course {
	return &models.Course{
		ID:              uuid.New(),
		UserID:          userID,
		SkillID:         skillID,
		Name:            name,
		Description:     "test course",
		StartAt:         "2025-07-01 10:00:00",
		EndAt:           "2025-07-01 12:00:00",
		MaxParticipants: maxParticipants,
		MeetingURL:      "https://meet.example.com/room",
		Price:           200,
	}
}

// CreateTestPackage creates a credit package fixture.
func CreateTestPackage(name string, creditAmount, price int) *models.CreditPackage {
	return &models.CreditPackage{
		ID:           uuid.New(),
		Name:         name,
		CreditAmount: creditAmount,
		Price:        price,
	}
}

// CreateTestPurchase creates a purchase fixture snapshotting the package.
func CreateTestPurchase(userID uuid.UUID, pkg *models.CreditPackage) *models.CreditPurchase {
	return &models.CreditPurchase{
		ID:               uuid.New(),
		UserID:           userID,
		CreditPackageID:  pkg.ID,
		PurchasedCredits: pkg.CreditAmount,
		PricePaid:        pkg.Price,
		PurchaseAt:       time.Now(),
	}
}
