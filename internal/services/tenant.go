package services

import (
	"context"
	"strings"
	"time"

	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/models"
)

// TenantInput is the content of the add and edit tenant forms.
type TenantInput struct {
	FullName   string    `label:"Full name" validate:"required,max=200"`
	Phone      string    `label:"Phone" validate:"required,phone"`
	Email      string    `label:"Email" validate:"omitempty,email"`
	RentAmount float64   `label:"Monthly rent" validate:"gt=0"`
	MoveInDate time.Time `label:"Move-in date" validate:"required"`
	Notes      string    `label:"Notes"`
	PhotoFile  string    `label:"ID photo"` // source file to store; empty keeps the current photo
	PropertyID *uint     `label:"Property"`
}

func (in *TenantInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Notes = strings.TrimSpace(in.Notes)
	in.PhotoFile = strings.TrimSpace(in.PhotoFile)
	if !in.MoveInDate.IsZero() {
		in.MoveInDate = models.DateOnly(in.MoveInDate)
	}
}

// TenantService manages tenant records and their ID photos.
type TenantService struct {
	tenants TenantRepository
	photos  FileSaver
	log     logger.Logger
	now     Clock
}

func NewTenantService(tenants TenantRepository, photos FileSaver, log logger.Logger, now Clock) *TenantService {
	if log == nil {
		log = logger.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &TenantService{tenants: tenants, photos: photos, log: log, now: now}
}

// Add creates an active tenant. The security deposit is fixed here at
// DepositMultiplier months of rent.
func (s *TenantService) Add(ctx context.Context, in TenantInput) (*models.Tenant, error) {
	in.normalize()
	if err := Validate(&in); err != nil {
		return nil, err
	}

	photoPath, err := s.storePhoto(in.PhotoFile)
	if err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		FullName:        in.FullName,
		Phone:           in.Phone,
		Email:           in.Email,
		MoveInDate:      in.MoveInDate,
		RentAmount:      in.RentAmount,
		SecurityDeposit: models.DepositFor(in.RentAmount),
		Notes:           in.Notes,
		IsActive:        true,
		PhotoPath:       photoPath,
		PropertyID:      in.PropertyID,
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}

	s.log.Info("TenantService", "tenant added", map[string]interface{}{
		"tenant_id": tenant.ID,
		"rent":      tenant.RentAmount,
		"deposit":   tenant.SecurityDeposit,
	})
	return tenant, nil
}

// Update applies the edit form. The security deposit keeps the value set
// when the tenant was added.
func (s *TenantService) Update(ctx context.Context, id uint, in TenantInput) (*models.Tenant, error) {
	in.normalize()
	if err := Validate(&in); err != nil {
		return nil, err
	}

	tenant, err := s.tenants.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.PhotoFile != "" {
		photoPath, err := s.storePhoto(in.PhotoFile)
		if err != nil {
			return nil, err
		}
		tenant.PhotoPath = photoPath
	}

	tenant.FullName = in.FullName
	tenant.Phone = in.Phone
	tenant.Email = in.Email
	tenant.MoveInDate = in.MoveInDate
	tenant.RentAmount = in.RentAmount
	tenant.Notes = in.Notes
	tenant.PropertyID = in.PropertyID
	tenant.Property = nil

	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.log.Info("TenantService", "tenant updated", map[string]interface{}{"tenant_id": id})
	return tenant, nil
}

func (s *TenantService) storePhoto(path string) (string, error) {
	if path == "" || s.photos == nil {
		return "", nil
	}
	stored, err := s.photos.SaveFile(path)
	if err != nil {
		return "", err
	}
	return stored.Path, nil
}

func (s *TenantService) Get(ctx context.Context, id uint) (*models.Tenant, error) {
	return s.tenants.Get(ctx, id)
}

// List returns all tenants, active first.
func (s *TenantService) List(ctx context.Context) ([]models.Tenant, error) {
	return s.tenants.List(ctx)
}

// ListActive returns the tenants that can receive payments and documents.
func (s *TenantService) ListActive(ctx context.Context) ([]models.Tenant, error) {
	return s.tenants.ListActive(ctx)
}

// Deactivate marks the tenant as moved out. The move-out date defaults to
// today when none was recorded. Payments and documents are kept.
func (s *TenantService) Deactivate(ctx context.Context, id uint) (*models.Tenant, error) {
	tenant, err := s.tenants.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return tenant, nil
	}

	moveOut := tenant.MoveOutDate
	if moveOut == nil {
		today := models.DateOnly(s.now())
		moveOut = &today
	}
	if err := s.tenants.SetActive(ctx, id, false, moveOut); err != nil {
		return nil, err
	}
	tenant.IsActive = false
	tenant.MoveOutDate = moveOut

	s.log.Info("TenantService", "tenant deactivated", map[string]interface{}{
		"tenant_id": id,
		"move_out":  models.FormatDate(moveOut, ""),
	})
	return tenant, nil
}

// Reactivate brings a tenant back and clears the move-out date.
func (s *TenantService) Reactivate(ctx context.Context, id uint) (*models.Tenant, error) {
	tenant, err := s.tenants.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant.IsActive {
		return tenant, nil
	}

	if err := s.tenants.SetActive(ctx, id, true, nil); err != nil {
		return nil, err
	}
	tenant.IsActive = true
	tenant.MoveOutDate = nil

	s.log.Info("TenantService", "tenant reactivated", map[string]interface{}{"tenant_id": id})
	return tenant, nil
}

// ToggleStatus deactivates an active tenant or reactivates an inactive one.
func (s *TenantService) ToggleStatus(ctx context.Context, id uint) (*models.Tenant, error) {
	tenant, err := s.tenants.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant.IsActive {
		return s.Deactivate(ctx, id)
	}
	return s.Reactivate(ctx, id)
}

// MarkDepositRefunded records that the security deposit was returned.
func (s *TenantService) MarkDepositRefunded(ctx context.Context, id uint) error {
	if err := s.tenants.MarkDepositRefunded(ctx, id); err != nil {
		return err
	}
	s.log.Info("TenantService", "deposit refunded", map[string]interface{}{"tenant_id": id})
	return nil
}
