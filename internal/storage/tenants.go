package storage

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/models"
)

// TenantStore reads and writes the tenants table. It has no delete: tenants
// are deactivated instead.
type TenantStore struct {
	db  *gorm.DB
	log logger.Logger
}

// editableTenantColumns are the columns changed by the edit form. The
// deposit is fixed at creation.
var editableTenantColumns = []string{
	"full_name", "phone", "email", "move_in_date", "rent_amount", "notes", "photo_path", "property_id",
}

func (s *TenantStore) Create(ctx context.Context, t *models.Tenant) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Property").Create(t).Error
	})
	if err != nil {
		s.log.Error("TenantStore", err, map[string]interface{}{"full_name": t.FullName})
		return translate(err, "tenant")
	}
	return nil
}

// Update writes the editable columns of t.
func (s *TenantStore) Update(ctx context.Context, t *models.Tenant) error {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Tenant{ID: t.ID}).Select(editableTenantColumns).Updates(t)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		s.log.Error("TenantStore", err, map[string]interface{}{"tenant_id": t.ID})
		return translate(err, "tenant")
	}
	if affected == 0 {
		return ErrNotFound.Msg("tenant not found")
	}
	return nil
}

func (s *TenantStore) Get(ctx context.Context, id uint) (*models.Tenant, error) {
	var t models.Tenant
	err := s.db.WithContext(ctx).Preload("Property").First(&t, id).Error
	if err != nil {
		return nil, translate(err, "tenant")
	}
	return &t, nil
}

// List returns every tenant, active ones first, then by name.
func (s *TenantStore) List(ctx context.Context) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := s.db.WithContext(ctx).Order("is_active DESC, full_name ASC, id ASC").Find(&tenants).Error
	if err != nil {
		return nil, translate(err, "tenant")
	}
	return tenants, nil
}

// ListActive returns active tenants ordered by name.
func (s *TenantStore) ListActive(ctx context.Context) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("full_name ASC, id ASC").Find(&tenants).Error
	if err != nil {
		return nil, translate(err, "tenant")
	}
	return tenants, nil
}

// SetActive flips the active flag and stores the move-out date alongside it.
func (s *TenantStore) SetActive(ctx context.Context, id uint, active bool, moveOut *time.Time) error {
	return s.updateColumns(ctx, id, map[string]interface{}{
		"is_active":     active,
		"move_out_date": moveOut,
	})
}

func (s *TenantStore) MarkDepositRefunded(ctx context.Context, id uint) error {
	return s.updateColumns(ctx, id, map[string]interface{}{"deposit_refunded": true})
}

func (s *TenantStore) updateColumns(ctx context.Context, id uint, columns map[string]interface{}) error {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Tenant{}).Where("id = ?", id).Updates(columns)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		s.log.Error("TenantStore", err, map[string]interface{}{"tenant_id": id})
		return translate(err, "tenant")
	}
	if affected == 0 {
		return ErrNotFound.Msg("tenant not found")
	}
	return nil
}

func (s *TenantStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Tenant{}).Count(&n).Error; err != nil {
		return 0, translate(err, "tenant")
	}
	return n, nil
}
