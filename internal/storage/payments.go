package storage

import (
	"context"

	"gorm.io/gorm"

	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/models"
)

// PaymentStore is append-only: recorded payments are never changed.
type PaymentStore struct {
	db  *gorm.DB
	log logger.Logger
}

func (s *PaymentStore) Create(ctx context.Context, p *models.Payment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Tenant", "Property").Create(p).Error
	})
	if err != nil {
		s.log.Error("PaymentStore", err, map[string]interface{}{"tenant_id": p.TenantID})
		return translate(err, "payment")
	}
	return nil
}

func (s *PaymentStore) Get(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	err := s.db.WithContext(ctx).Preload("Tenant").Preload("Property").First(&p, id).Error
	if err != nil {
		return nil, translate(err, "payment")
	}
	return &p, nil
}

// List returns all payments, newest first, with their tenants loaded.
func (s *PaymentStore) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).Preload("Tenant").Order("payment_date DESC, id DESC").Find(&payments).Error
	if err != nil {
		return nil, translate(err, "payment")
	}
	return payments, nil
}

func (s *PaymentStore) ListByTenant(ctx context.Context, tenantID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("payment_date DESC, id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, translate(err, "payment")
	}
	return payments, nil
}
