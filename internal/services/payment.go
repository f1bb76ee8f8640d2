package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/models"
)

// PaymentInput is the content of the record payment form.
type PaymentInput struct {
	TenantID    uint      `label:"Tenant" validate:"required"`
	Amount      float64   `label:"Amount" validate:"gt=0"`
	PaymentDate time.Time `label:"Payment date" validate:"required"`
	MonthYear   string    `label:"For month" validate:"required,monthyear"`
	Method      string    `label:"Payment method" validate:"required,paymentmethod"`
	LateFee     float64   `label:"Late fee" validate:"gte=0"`
	Notes       string    `label:"Notes"`
}

// PaymentHistory is a tenant's payments with running totals.
type PaymentHistory struct {
	Tenant   *models.Tenant
	Payments []models.Payment
	Summary  models.PaymentSummary
}

// PaymentService records rent payments. Recorded payments are never edited.
type PaymentService struct {
	payments  PaymentRepository
	tenants   TenantRepository
	policy    models.LateFeePolicy
	currency  string
	log       logger.Logger
	now       Clock
	receiptNo func() (string, error)
}

func NewPaymentService(payments PaymentRepository, tenants TenantRepository, policy models.LateFeePolicy,
	currency string, log logger.Logger, now Clock) *PaymentService {
	if log == nil {
		log = logger.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &PaymentService{
		payments:  payments,
		tenants:   tenants,
		policy:    policy,
		currency:  currency,
		log:       log,
		now:       now,
		receiptNo: newReceiptNo,
	}
}

// newReceiptNo returns a time-ordered UUID so receipt numbers sort by issue.
func newReceiptNo() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Record stores a payment for an active tenant and assigns its receipt number.
func (s *PaymentService) Record(ctx context.Context, in PaymentInput) (*models.Payment, error) {
	in.MonthYear = strings.TrimSpace(in.MonthYear)
	in.Notes = strings.TrimSpace(in.Notes)
	if err := Validate(&in); err != nil {
		return nil, err
	}

	tenant, err := s.tenants.Get(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return nil, ErrTenantInactive.Msg(tenant.FullName + " has moved out; payments can only be recorded for active tenants")
	}

	receiptNo, err := s.receiptNo()
	if err != nil {
		return nil, ErrReceipt.Err(err)
	}

	payment := &models.Payment{
		TenantID:    tenant.ID,
		PropertyID:  tenant.PropertyID,
		Amount:      in.Amount,
		PaymentDate: models.DateOnly(in.PaymentDate),
		MonthYear:   in.MonthYear,
		Method:      in.Method,
		LateFee:     in.LateFee,
		Notes:       in.Notes,
		ReceiptNo:   receiptNo,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	payment.Tenant = tenant

	s.log.Info("PaymentService", "payment recorded", map[string]interface{}{
		"payment_id": payment.ID,
		"tenant_id":  tenant.ID,
		"month":      payment.MonthYear,
		"total":      payment.Total(),
		"receipt_no": payment.ReceiptNo,
	})
	return payment, nil
}

// List returns every payment, newest first.
func (s *PaymentService) List(ctx context.Context) ([]models.Payment, error) {
	return s.payments.List(ctx)
}

func (s *PaymentService) Get(ctx context.Context, id uint) (*models.Payment, error) {
	return s.payments.Get(ctx, id)
}

// History returns one tenant's payments and their totals.
func (s *PaymentService) History(ctx context.Context, tenantID uint) (*PaymentHistory, error) {
	tenant, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &PaymentHistory{
		Tenant:   tenant,
		Payments: payments,
		Summary:  models.Summarize(payments),
	}, nil
}

// SuggestLateFee applies the late fee policy to a payment for monthYear made on paidOn.
func (s *PaymentService) SuggestLateFee(monthYear string, paidOn time.Time) (float64, error) {
	fee, err := s.policy.Suggest(monthYear, paidOn)
	if err != nil {
		return 0, ErrValidation.Err(err)
	}
	return fee, nil
}

// Prefill returns the form defaults for a tenant paying today: their rent,
// the current month and the late fee the policy suggests.
func (s *PaymentService) Prefill(ctx context.Context, tenantID uint) (*PaymentInput, error) {
	tenant, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	today := models.DateOnly(s.now())
	month := models.MonthYearOf(today)
	fee, err := s.SuggestLateFee(month, today)
	if err != nil {
		return nil, err
	}

	return &PaymentInput{
		TenantID:    tenant.ID,
		Amount:      tenant.RentAmount,
		PaymentDate: today,
		MonthYear:   month,
		Method:      models.MethodCash,
		LateFee:     fee,
	}, nil
}

// Currency is the symbol amounts are formatted with.
func (s *PaymentService) Currency() string {
	return s.currency
}
