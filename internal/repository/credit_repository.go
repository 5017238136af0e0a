package repository

import (
	"errors"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreditPackageRepository struct {
	db *gorm.DB
}

func NewCreditPackageRepository(db *gorm.DB) *CreditPackageRepository {
	return &CreditPackageRepository{db: db}
}

func (r *CreditPackageRepository) CreatePackage(pkg *models.CreditPackage) error {
	return r.db.Create(pkg).Error
}

func (r *CreditPackageRepository) GetPackageByID(id uuid.UUID) (*models.CreditPackage, error) {
	var pkg models.CreditPackage
	err := r.db.Where("id = ?", id).First(&pkg).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &pkg, nil
}

func (r *CreditPackageRepository) GetPackageByName(name string) (*models.CreditPackage, error) {
	var pkg models.CreditPackage
	err := r.db.Where("name = ?", name).First(&pkg).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &pkg, nil
}

func (r *CreditPackageRepository) GetAllPackages() ([]models.CreditPackage, error) {
	var packages []models.CreditPackage
	err := r.db.Order("created_at ASC").Find(&packages).Error
	return packages, err
}

// UpdatePackage overwrites the package's fields.
func (r *CreditPackageRepository) UpdatePackage(pkg *models.CreditPackage) error {
	return r.db.Model(&models.CreditPackage{}).
		Where("id = ?", pkg.ID).
		Updates(map[string]interface{}{
			"name":          pkg.Name,
			"credit_amount": pkg.CreditAmount,
			"price":         pkg.Price,
		}).Error
}

// DeletePackage removes the package by id and returns the rows affected.
func (r *CreditPackageRepository) DeletePackage(id uuid.UUID) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&models.CreditPackage{})
	return result.RowsAffected, result.Error
}

type CreditPurchaseRepository struct {
	db *gorm.DB
}

func NewCreditPurchaseRepository(db *gorm.DB) *CreditPurchaseRepository {
	return &CreditPurchaseRepository{db: db}
}

func (r *CreditPurchaseRepository) CreatePurchase(purchase *models.CreditPurchase) error {
	return r.db.Create(purchase).Error
}

// ListPurchasesByUserID returns the user's purchases with packages loaded.
func (r *CreditPurchaseRepository) ListPurchasesByUserID(userID uuid.UUID) ([]models.CreditPurchase, error) {
	var purchases []models.CreditPurchase
	err := r.db.
		Preload("CreditPackage").
		Where("user_id = ?", userID).
		Order("purchase_at ASC").
		Find(&purchases).Error
	return purchases, err
}

// SumPurchasedCredits totals the credits the user has ever bought.
func (r *CreditPurchaseRepository) SumPurchasedCredits(userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.Model(&models.CreditPurchase{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(purchased_credits), 0)").
		Scan(&total).Error
	return total, err
}
