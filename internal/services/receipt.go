package services

import (
	"context"
	"strings"
	"text/template"
	"time"

	"tenant-ledger/internal/models"
)

const receiptText = `RENT RECEIPT
Receipt No : {{.Payment.ReceiptNo}}
Date       : {{date .Payment.PaymentDate}}
Tenant     : {{.Tenant.FullName}}
Phone      : {{.Tenant.Phone}}
{{- with .Property}}
Property   : {{.Label}}
{{- end}}
For month  : {{.Payment.MonthYear}}
Method     : {{.Payment.Method}}
Rent       : {{money .Payment.Amount}}
Late fee   : {{money .Payment.LateFee}}
Total paid : {{money .Payment.Total}}
{{- with .Payment.Notes}}
Notes      : {{.}}
{{- end}}
`

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"date":  func(t time.Time) string { return t.Format(models.DateLayout) },
	"money": func(float64) string { return "" }, // replaced per service currency
}).Parse(receiptText))

type receiptData struct {
	Payment  *models.Payment
	Tenant   *models.Tenant
	Property *models.Property
}

// Receipt renders a plain-text receipt for a recorded payment.
func (s *PaymentService) Receipt(ctx context.Context, paymentID uint) (string, error) {
	payment, err := s.payments.Get(ctx, paymentID)
	if err != nil {
		return "", err
	}
	tenant := payment.Tenant
	if tenant == nil {
		if tenant, err = s.tenants.Get(ctx, payment.TenantID); err != nil {
			return "", err
		}
	}

	tmpl, err := receiptTemplate.Clone()
	if err != nil {
		return "", ErrReceipt.Err(err)
	}
	tmpl.Funcs(template.FuncMap{
		"money": func(amount float64) string { return models.FormatCurrency(s.currency, amount) },
	})

	var b strings.Builder
	data := receiptData{Payment: payment, Tenant: tenant, Property: payment.Property}
	if err := tmpl.Execute(&b, data); err != nil {
		return "", ErrReceipt.Err(err)
	}

	s.log.Debug("PaymentService", "receipt rendered", map[string]interface{}{"payment_id": paymentID})
	return b.String(), nil
}
