package storage

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/models"
)

type DocumentStore struct {
	db  *gorm.DB
	log logger.Logger
}

const documentOrder = "expiry_date IS NULL, expiry_date ASC, id ASC"

func (s *DocumentStore) Create(ctx context.Context, d *models.Document) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Tenant").Create(d).Error
	})
	if err != nil {
		s.log.Error("DocumentStore", err, map[string]interface{}{"tenant_id": d.TenantID})
		return translate(err, "document")
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, id uint) (*models.Document, error) {
	var d models.Document
	if err := s.db.WithContext(ctx).Preload("Tenant").First(&d, id).Error; err != nil {
		return nil, translate(err, "document")
	}
	return &d, nil
}

// List returns all documents by expiry date, undated ones last.
func (s *DocumentStore) List(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := s.db.WithContext(ctx).Preload("Tenant").Order(documentOrder).Find(&docs).Error; err != nil {
		return nil, translate(err, "document")
	}
	return docs, nil
}

func (s *DocumentStore) ListByTenant(ctx context.Context, tenantID uint) ([]models.Document, error) {
	var docs []models.Document
	err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order(documentOrder).Find(&docs).Error
	if err != nil {
		return nil, translate(err, "document")
	}
	return docs, nil
}

// ListExpiringBefore returns documents whose expiry date is on or before limit.
func (s *DocumentStore) ListExpiringBefore(ctx context.Context, limit time.Time) ([]models.Document, error) {
	var docs []models.Document
	err := s.db.WithContext(ctx).
		Preload("Tenant").
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", models.DateOnly(limit)).
		Order(documentOrder).
		Find(&docs).Error
	if err != nil {
		return nil, translate(err, "document")
	}
	return docs, nil
}
