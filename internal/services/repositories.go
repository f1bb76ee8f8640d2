package services

import (
	"context"
	"time"

	"tenant-ledger/internal/filestore"
	"tenant-ledger/internal/models"
)

// TenantRepository is the tenant persistence used by the services.
type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error
	Update(ctx context.Context, t *models.Tenant) error
	Get(ctx context.Context, id uint) (*models.Tenant, error)
	List(ctx context.Context) ([]models.Tenant, error)
	ListActive(ctx context.Context) ([]models.Tenant, error)
	SetActive(ctx context.Context, id uint, active bool, moveOut *time.Time) error
	MarkDepositRefunded(ctx context.Context, id uint) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	Get(ctx context.Context, id uint) (*models.Payment, error)
	List(ctx context.Context) ([]models.Payment, error)
	ListByTenant(ctx context.Context, tenantID uint) ([]models.Payment, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, d *models.Document) error
	List(ctx context.Context) ([]models.Document, error)
	ListByTenant(ctx context.Context, tenantID uint) ([]models.Document, error)
	ListExpiringBefore(ctx context.Context, limit time.Time) ([]models.Document, error)
}

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error
	Get(ctx context.Context, id uint) (*models.Property, error)
	List(ctx context.Context) ([]models.Property, error)
}

// FileSaver copies a file from disk into attachment storage.
type FileSaver interface {
	SaveFile(path string) (*filestore.Stored, error)
}

// Clock returns the current time. Services take one so tests can pin dates.
type Clock func() time.Time
