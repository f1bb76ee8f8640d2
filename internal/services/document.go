package services

import (
	"context"
	"strings"
	"time"

	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/models"
)

// DocumentInput is the content of the add document form.
type DocumentInput struct {
	TenantID   uint   `label:"Tenant" validate:"required"`
	DocType    string `label:"Document type" validate:"required,doctype"`
	SourcePath string `label:"File" validate:"required"`
	ExpiryDate *time.Time
}

// DocumentService stores tenant documents.
type DocumentService struct {
	docs    DocumentRepository
	tenants TenantRepository
	files   FileSaver
	log     logger.Logger
}

func NewDocumentService(docs DocumentRepository, tenants TenantRepository, files FileSaver, log logger.Logger) *DocumentService {
	if log == nil {
		log = logger.NewNop()
	}
	return &DocumentService{docs: docs, tenants: tenants, files: files, log: log}
}

// Add copies the selected file into document storage and records it against
// an active tenant.
func (s *DocumentService) Add(ctx context.Context, in DocumentInput) (*models.Document, error) {
	in.SourcePath = strings.TrimSpace(in.SourcePath)
	if err := Validate(&in); err != nil {
		return nil, err
	}

	tenant, err := s.tenants.Get(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return nil, ErrTenantInactive.Msg(tenant.FullName + " has moved out; documents can only be added for active tenants")
	}

	stored, err := s.files.SaveFile(in.SourcePath)
	if err != nil {
		return nil, err
	}

	var expiry *time.Time
	if in.ExpiryDate != nil {
		d := models.DateOnly(*in.ExpiryDate)
		expiry = &d
	}

	doc := &models.Document{
		TenantID:     tenant.ID,
		DocType:      in.DocType,
		FilePath:     stored.Path,
		OriginalName: stored.OriginalName,
		MimeType:     stored.MimeType,
		ExpiryDate:   expiry,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	doc.Tenant = tenant

	s.log.Info("DocumentService", "document added", map[string]interface{}{
		"document_id": doc.ID,
		"tenant_id":   tenant.ID,
		"type":        doc.DocType,
		"expiry":      models.FormatDate(doc.ExpiryDate, ""),
	})
	return doc, nil
}

// List returns every document ordered by expiry date.
func (s *DocumentService) List(ctx context.Context) ([]models.Document, error) {
	return s.docs.List(ctx)
}

func (s *DocumentService) ListByTenant(ctx context.Context, tenantID uint) ([]models.Document, error) {
	return s.docs.ListByTenant(ctx, tenantID)
}
