package storage

import (
	"context"

	"gorm.io/gorm"

	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/models"
)

type PropertyStore struct {
	db  *gorm.DB
	log logger.Logger
}

func (s *PropertyStore) Create(ctx context.Context, p *models.Property) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
	if err != nil {
		s.log.Error("PropertyStore", err, map[string]interface{}{"address": p.Address})
		return translate(err, "property")
	}
	return nil
}

func (s *PropertyStore) Get(ctx context.Context, id uint) (*models.Property, error) {
	var p models.Property
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, "property")
	}
	return &p, nil
}

func (s *PropertyStore) List(ctx context.Context) ([]models.Property, error) {
	var props []models.Property
	if err := s.db.WithContext(ctx).Order("address ASC, unit_number ASC").Find(&props).Error; err != nil {
		return nil, translate(err, "property")
	}
	return props, nil
}
