package repository

import (
	"errors"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetAllUsers() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateName renames the user only if the stored name still matches oldName.
// Returns the number of rows affected.
func (r *UserRepository) UpdateName(id uuid.UUID, oldName, newName string) (int64, error) {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND name = ?", id, oldName).
		Update("name", newName)
	return result.RowsAffected, result.Error
}

// UpdatePassword replaces the stored hash only if it still matches oldHash.
// Returns the number of rows affected.
func (r *UserRepository) UpdatePassword(id uuid.UUID, oldHash, newHash string) (int64, error) {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND password = ?", id, oldHash).
		Update("password", newHash)
	return result.RowsAffected, result.Error
}
