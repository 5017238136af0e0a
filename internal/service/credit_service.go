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
	ErrPackageExists      = errors.New("credit package name already exists")
	ErrPackageNotFound    = errors.New("credit package not found")
	ErrPackageDeleteNoRow = errors.New("credit package delete affected no rows")
)

type CreditService struct {
	packageRepo  *repository.CreditPackageRepository
	purchaseRepo *repository.CreditPurchaseRepository
}

func NewCreditService(
	packageRepo *repository.CreditPackageRepository,
	purchaseRepo *repository.CreditPurchaseRepository,
) *CreditService {
	return &CreditService{
		packageRepo:  packageRepo,
		purchaseRepo: purchaseRepo,
	}
}

func (s *CreditService) ListPackages() ([]models.CreditPackage, error) {
	return s.packageRepo.GetAllPackages()
}

func (s *CreditService) AddPackage(name string, creditAmount, price int) (*models.CreditPackage, error) {
	existing, err := s.packageRepo.GetPackageByName(name)
	if err != nil {
		logger.Log.Error("Failed to check package name",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Package creation rejected: duplicate name",
			zap.String("name", name),
		)
		return nil, ErrPackageExists
	}

	pkg := &models.CreditPackage{
		ID:           uuid.New(),
		Name:         name,
		CreditAmount: creditAmount,
		Price:        price,
	}

	if err := s.packageRepo.CreatePackage(pkg); err != nil {
		logger.Log.Error("Failed to create package",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Credit package created",
		zap.String("package_id", pkg.ID.String()),
		zap.String("name", name),
	)

	return pkg, nil
}

// Buy records a purchase snapshotting the package's current credit amount
// and price; later package edits never touch existing purchases.
func (s *CreditService) Buy(userID, packageID uuid.UUID) error {
	pkg, err := s.packageRepo.GetPackageByID(packageID)
	if err != nil {
		return err
	}
	if pkg == nil {
		logger.Log.Warn("Purchase rejected: package not found",
			zap.String("package_id", packageID.String()),
		)
		return ErrPackageNotFound
	}

	purchase := &models.CreditPurchase{
		ID:               uuid.New(),
		UserID:           userID,
		CreditPackageID:  packageID,
		PurchasedCredits: pkg.CreditAmount,
		PricePaid:        pkg.Price,
		PurchaseAt:       time.Now(),
	}

	if err := s.purchaseRepo.CreatePurchase(purchase); err != nil {
		logger.Log.Error("Failed to record purchase",
			zap.String("user_id", userID.String()),
			zap.String("package_id", packageID.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Credit package purchased",
		zap.String("purchase_id", purchase.ID.String()),
		zap.Int("credits", purchase.PurchasedCredits),
	)

	return nil
}

func (s *CreditService) DeletePackage(id uuid.UUID) error {
	affected, err := s.packageRepo.DeletePackage(id)
	if err != nil {
		logger.Log.Error("Failed to delete package",
			zap.String("package_id", id.String()),
			zap.Error(err),
		)
		return err
	}
	if affected == 0 {
		return ErrPackageDeleteNoRow
	}

	logger.Log.Info("Credit package deleted",
		zap.String("package_id", id.String()),
	)

	return nil
}
