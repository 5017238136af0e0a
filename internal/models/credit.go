package models

import (
	"time"

	"github.com/google/uuid"
)

type CreditPackage struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreditAmount int       `gorm:"not null" json:"credit_amount"`
	Price        int       `gorm:"not null" json:"price"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreditPurchase snapshots the package's credit_amount and price at purchase
// time; later package edits must not affect existing purchases.
type CreditPurchase struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreditPackageID  uuid.UUID `gorm:"type:uuid;not null" json:"credit_package_id"`
	PurchasedCredits int       `gorm:"not null" json:"purchased_credits"`
	PricePaid        int       `gorm:"not null" json:"price_paid"`
	PurchaseAt       time.Time `gorm:"not null" json:"purchase_at"`
	CreatedAt        time.Time `json:"created_at"`

	CreditPackage CreditPackage `gorm:"foreignKey:CreditPackageID" json:"-"`
}
