package models

import "time"

// Property is a rentable unit owned by the landlord.
type Property struct {
	ID         uint   `gorm:"primaryKey"`
	Address    string `gorm:"size:500;not null"`
	UnitNumber string `gorm:"size:50"`
	OwnerNotes string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Property) TableName() string {
	return "properties"
}

// Label joins the unit number and address for pickers and lists.
func (p *Property) Label() string {
	if p.UnitNumber == "" {
		return p.Address
	}
	return p.UnitNumber + ", " + p.Address
}
