package services

import (
	"context"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/models"
)

// Snapshot is the YAML backup of the whole ledger.
type Snapshot struct {
	GeneratedAt string           `yaml:"generated_at"`
	Properties  []PropertyRecord `yaml:"properties"`
	Tenants     []TenantRecord   `yaml:"tenants"`
	Payments    []PaymentRecord  `yaml:"payments"`
	Documents   []DocumentRecord `yaml:"documents"`
}

type PropertyRecord struct {
	ID         uint   `yaml:"id"`
	Address    string `yaml:"address"`
	UnitNumber string `yaml:"unit_number,omitempty"`
	OwnerNotes string `yaml:"owner_notes,omitempty"`
}

type TenantRecord struct {
	ID              uint    `yaml:"id"`
	FullName        string  `yaml:"full_name"`
	Phone           string  `yaml:"phone"`
	Email           string  `yaml:"email,omitempty"`
	MoveInDate      string  `yaml:"move_in_date"`
	MoveOutDate     string  `yaml:"move_out_date,omitempty"`
	RentAmount      float64 `yaml:"rent_amount"`
	SecurityDeposit float64 `yaml:"security_deposit"`
	DepositRefunded bool    `yaml:"deposit_refunded"`
	Active          bool    `yaml:"active"`
	PropertyID      *uint   `yaml:"property_id,omitempty"`
	PhotoPath       string  `yaml:"photo_path,omitempty"`
	Notes           string  `yaml:"notes,omitempty"`
}

type PaymentRecord struct {
	ID          uint    `yaml:"id"`
	ReceiptNo   string  `yaml:"receipt_no"`
	TenantID    uint    `yaml:"tenant_id"`
	PaymentDate string  `yaml:"payment_date"`
	MonthYear   string  `yaml:"month_year"`
	Method      string  `yaml:"method"`
	Amount      float64 `yaml:"amount"`
	LateFee     float64 `yaml:"late_fee"`
	Notes       string  `yaml:"notes,omitempty"`
}

type DocumentRecord struct {
	ID           uint   `yaml:"id"`
	TenantID     uint   `yaml:"tenant_id"`
	DocType      string `yaml:"doc_type"`
	FilePath     string `yaml:"file_path"`
	OriginalName string `yaml:"original_name,omitempty"`
	MimeType     string `yaml:"mime_type,omitempty"`
	ExpiryDate   string `yaml:"expiry_date,omitempty"`
}

// Exporter writes the ledger out as YAML.
type Exporter struct {
	tenants    TenantRepository
	payments   PaymentRepository
	documents  DocumentRepository
	properties PropertyRepository
	log        logger.Logger
	now        Clock
}

func NewExporter(tenants TenantRepository, payments PaymentRepository, documents DocumentRepository,
	properties PropertyRepository, log logger.Logger, now Clock) *Exporter {
	if log == nil {
		log = logger.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Exporter{
		tenants:    tenants,
		payments:   payments,
		documents:  documents,
		properties: properties,
		log:        log,
		now:        now,
	}
}

// Snapshot collects every record in the ledger.
func (e *Exporter) Snapshot(ctx context.Context) (*Snapshot, error) {
	props, err := e.properties.List(ctx)
	if err != nil {
		return nil, err
	}
	tenants, err := e.tenants.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := e.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := e.documents.List(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		GeneratedAt: e.now().Format(time.RFC3339),
		Properties:  make([]PropertyRecord, 0, len(props)),
		Tenants:     make([]TenantRecord, 0, len(tenants)),
		Payments:    make([]PaymentRecord, 0, len(payments)),
		Documents:   make([]DocumentRecord, 0, len(docs)),
	}
	for _, p := range props {
		snap.Properties = append(snap.Properties, PropertyRecord{
			ID: p.ID, Address: p.Address, UnitNumber: p.UnitNumber, OwnerNotes: p.OwnerNotes,
		})
	}
	for _, t := range tenants {
		snap.Tenants = append(snap.Tenants, TenantRecord{
			ID:              t.ID,
			FullName:        t.FullName,
			Phone:           t.Phone,
			Email:           t.Email,
			MoveInDate:      t.MoveInDate.Format(models.DateLayout),
			MoveOutDate:     models.FormatDate(t.MoveOutDate, ""),
			RentAmount:      t.RentAmount,
			SecurityDeposit: t.SecurityDeposit,
			DepositRefunded: t.DepositRefunded,
			Active:          t.IsActive,
			PropertyID:      t.PropertyID,
			PhotoPath:       t.PhotoPath,
			Notes:           t.Notes,
		})
	}
	for _, p := range payments {
		snap.Payments = append(snap.Payments, PaymentRecord{
			ID:          p.ID,
			ReceiptNo:   p.ReceiptNo,
			TenantID:    p.TenantID,
			PaymentDate: p.PaymentDate.Format(models.DateLayout),
			MonthYear:   p.MonthYear,
			Method:      p.Method,
			Amount:      p.Amount,
			LateFee:     p.LateFee,
			Notes:       p.Notes,
		})
	}
	for _, d := range docs {
		snap.Documents = append(snap.Documents, DocumentRecord{
			ID:           d.ID,
			TenantID:     d.TenantID,
			DocType:      d.DocType,
			FilePath:     d.FilePath,
			OriginalName: d.OriginalName,
			MimeType:     d.MimeType,
			ExpiryDate:   models.FormatDate(d.ExpiryDate, ""),
		})
	}
	return snap, nil
}

// Export writes the snapshot to w.
func (e *Exporter) Export(ctx context.Context, w io.Writer) error {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return ErrExport.Err(err)
	}
	if err := enc.Close(); err != nil {
		return ErrExport.Err(err)
	}

	e.log.Info("Exporter", "ledger exported", map[string]interface{}{
		"tenants":   len(snap.Tenants),
		"payments":  len(snap.Payments),
		"documents": len(snap.Documents),
	})
	return nil
}
