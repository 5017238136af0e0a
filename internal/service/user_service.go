package service

import (
	"errors"
	"time"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/fitbook/fitbook/internal/repository"
	"github.com/fitbook/fitbook/internal/utils"
	"github.com/fitbook/fitbook/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmailTaken           = errors.New("email already in use")
	ErrInvalidCredentials   = errors.New("user not found or password mismatch")
	ErrUserNotFound         = errors.New("user not found")
	ErrNameUnchanged        = errors.New("user name unchanged")
	ErrProfileUpdateFailed  = errors.New("profile update affected no rows")
	ErrPasswordReused       = errors.New("new password equals old password")
	ErrOldPasswordMismatch  = errors.New("old password mismatch")
	ErrPasswordUpdateFailed = errors.New("password update affected no rows")
)

type UserService struct {
	userRepo      *repository.UserRepository
	purchaseRepo  *repository.CreditPurchaseRepository
	bookingRepo   *repository.BookingRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewUserService(
	userRepo *repository.UserRepository,
	purchaseRepo *repository.CreditPurchaseRepository,
	bookingRepo *repository.BookingRepository,
	jwtSecret string,
	jwtExpiration time.Duration,
) *UserService {
	return &UserService{
		userRepo:      userRepo,
		purchaseRepo:  purchaseRepo,
		bookingRepo:   bookingRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Signup creates a user with role USER and a bcrypt-hashed password.
// The email uniqueness check runs before the insert; the unique index on
// users.email backstops concurrent duplicates.
func (s *UserService) Signup(name, email, password string) (*models.User, error) {
	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Signup rejected: email already in use",
			zap.String("email", email),
		)
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		logger.Log.Error("Failed to create user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
	)

	return user, nil
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password intentionally return the same error.
func (s *UserService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("email", email),
		)
		return nil, "", ErrInvalidCredentials
	}

	if !utils.VerifyPassword(password, user.Password) {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("user_id", user.ID.String()),
		)
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
	)

	return user, token, nil
}

func (s *UserService) GetProfile(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		logger.Log.Error("Failed to get user",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateName rejects no-op renames, then renames guarded on the old name so
// a concurrent rename surfaces as ErrProfileUpdateFailed.
func (s *UserService) UpdateName(userID uuid.UUID, name string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.Name == name {
		logger.Log.Warn("Profile update rejected: name unchanged",
			zap.String("user_id", userID.String()),
		)
		return nil, ErrNameUnchanged
	}

	affected, err := s.userRepo.UpdateName(userID, user.Name, name)
	if err != nil {
		logger.Log.Error("Failed to update user name",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrProfileUpdateFailed
	}

	return s.userRepo.GetUserByID(userID)
}

// UpdatePassword verifies the old password and replaces the stored hash.
func (s *UserService) UpdatePassword(userID uuid.UUID, oldPassword, newPassword string) error {
	if oldPassword == newPassword {
		logger.Log.Warn("Password update rejected: password reuse",
			zap.String("user_id", userID.String()),
		)
		return ErrPasswordReused
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !utils.VerifyPassword(oldPassword, user.Password) {
		logger.Log.Warn("Password update rejected: old password mismatch",
			zap.String("user_id", userID.String()),
		)
		return ErrOldPasswordMismatch
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return err
	}

	affected, err := s.userRepo.UpdatePassword(userID, user.Password, hash)
	if err != nil {
		logger.Log.Error("Failed to update password",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return err
	}
	if affected == 0 {
		return ErrPasswordUpdateFailed
	}

	logger.Log.Info("Password updated",
		zap.String("user_id", userID.String()),
	)

	return nil
}

// GetAllUsers lists every user without pagination. This mirrors the admin
// listing endpoint; it will not scale past a modest user count.
func (s *UserService) GetAllUsers() ([]*models.User, error) {
	return s.userRepo.GetAllUsers()
}

// GetPurchases lists the user's credit purchases with packages loaded.
func (s *UserService) GetPurchases(userID uuid.UUID) ([]models.CreditPurchase, error) {
	return s.purchaseRepo.ListPurchasesByUserID(userID)
}

// GetBookedCourses lists the courses behind the user's active bookings.
func (s *UserService) GetBookedCourses(userID uuid.UUID) ([]models.Course, error) {
	bookings, err := s.bookingRepo.ListActiveBookings(userID)
	if err != nil {
		return nil, err
	}

	courses := make([]models.Course, 0, len(bookings))
	for _, booking := range bookings {
		courses = append(courses, booking.Course)
	}
	return courses, nil
}
