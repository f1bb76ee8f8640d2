package models

import (
	"slices"
	"time"
)

// Document types accepted by the upload form.
const (
	DocLease          = "Lease Agreement"
	DocPAN            = "PAN Card"
	DocAadhaar        = "Aadhaar"
	DocPassport       = "Passport"
	DocDrivingLicense = "Driving License"
	DocOther          = "Other"
)

var DocumentTypes = []string{DocLease, DocPAN, DocAadhaar, DocPassport, DocDrivingLicense, DocOther}

func IsDocumentType(docType string) bool {
	return slices.Contains(DocumentTypes, docType)
}

// Document is a file attached to a tenant, stored under a hashed filename.
type Document struct {
	ID           uint       `gorm:"primaryKey"`
	TenantID     uint       `gorm:"not null;index"`
	Tenant       *Tenant    `gorm:"foreignKey:TenantID;constraint:OnDelete:RESTRICT"`
	DocType      string     `gorm:"size:50;not null"`
	FilePath     string     `gorm:"size:512;not null"`
	OriginalName string     `gorm:"size:255"`
	MimeType     string     `gorm:"size:128"`
	ExpiryDate   *time.Time `gorm:"type:date;index"`
	CreatedAt    time.Time
}

func (Document) TableName() string {
	return "documents"
}

// IsExpired reports whether the expiry date lies before the day of now.
// A document expiring today is still valid.
func (d *Document) IsExpired(now time.Time) bool {
	if d.ExpiryDate == nil {
		return false
	}
	return DateOnly(*d.ExpiryDate).Before(DateOnly(now))
}

// ExpiresWithin reports whether a still valid document expires within
// window days of now.
func (d *Document) ExpiresWithin(now time.Time, windowDays int) bool {
	if d.ExpiryDate == nil || d.IsExpired(now) {
		return false
	}
	limit := DateOnly(now).AddDate(0, 0, windowDays)
	return !DateOnly(*d.ExpiryDate).After(limit)
}

// DaysUntilExpiry is negative for expired documents and 0 without an expiry date.
func (d *Document) DaysUntilExpiry(now time.Time) int {
	if d.ExpiryDate == nil {
		return 0
	}
	diff := DateOnly(*d.ExpiryDate).Sub(DateOnly(now))
	return int(diff.Hours() / 24)
}

// ExpiryStatus is the flag shown next to a document.
func (d *Document) ExpiryStatus(now time.Time, windowDays int) string {
	switch {
	case d.IsExpired(now):
		return "Expired"
	case d.ExpiresWithin(now, windowDays):
		return "Expiring soon"
	case d.ExpiryDate == nil:
		return "-"
	default:
		return "Valid"
	}
}
