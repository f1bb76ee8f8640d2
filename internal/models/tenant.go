package models

import "time"

// DepositMultiplier is the number of months of rent taken as security deposit.
const DepositMultiplier = 2

// Tenant is a renter tracked by the landlord. Tenants are never deleted;
// moving out deactivates them so their payments and documents stay on record.
type Tenant struct {
	ID              uint       `gorm:"primaryKey"`
	FullName        string     `gorm:"size:200;not null;index"`
	Phone           string     `gorm:"size:20;not null"`
	Email           string     `gorm:"size:200"`
	MoveInDate      time.Time  `gorm:"type:date;not null"`
	MoveOutDate     *time.Time `gorm:"type:date"`
	RentAmount      float64    `gorm:"not null"`
	SecurityDeposit float64    `gorm:"not null"`
	DepositRefunded bool       `gorm:"not null;default:false"`
	Notes           string
	IsActive        bool      `gorm:"not null;default:true;index"`
	PhotoPath       string    `gorm:"size:512"`
	PropertyID      *uint     `gorm:"index"`
	Property        *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:SET NULL"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Tenant) TableName() string {
	return "tenants"
}

// DepositFor returns the security deposit owed for a monthly rent.
func DepositFor(rent float64) float64 {
	return rent * DepositMultiplier
}

// Status is the label shown in tenant lists.
func (t *Tenant) Status() string {
	if t.IsActive {
		return "Active"
	}
	return "Inactive"
}

// HasPhoto reports whether an ID photo was stored for the tenant.
func (t *Tenant) HasPhoto() bool {
	return t.PhotoPath != ""
}
