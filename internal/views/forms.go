package views

import (
	"strconv"
	"strings"
	"time"

	"tenant-ledger/internal/apperrors"
	"tenant-ledger/internal/controllers"
	"tenant-ledger/internal/models"
	"tenant-ledger/internal/services"
)

// formParser converts entry text into typed form values, collecting a
// ValidationError for every field that cannot be parsed.
type formParser struct {
	errs apperrors.ValidationErrors
}

func (p *formParser) fail(label, value, msg string) {
	p.errs = append(p.errs, apperrors.ValidationError{Field: label, Value: value, ErrStr: msg})
}

// amount accepts grouping commas and a leading currency symbol. Empty text
// is zero so the service reports the missing value.
func (p *formParser) amount(label, text, symbol string) float64 {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, symbol)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(label, text, "must be a number")
		return 0
	}
	return v
}

// date parses YYYY-MM-DD. Empty text is the zero time.
func (p *formParser) date(label, text string) time.Time {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}
	}
	t, err := models.ParseDate(s)
	if err != nil {
		p.fail(label, text, "must be a date as YYYY-MM-DD")
		return time.Time{}
	}
	return t
}

func (p *formParser) optionalDate(label, text string) *time.Time {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	t := p.date(label, text)
	if t.IsZero() {
		return nil
	}
	return &t
}

// choice returns the ID of the selected picker entry, or 0.
func (p *formParser) choice(choices []controllers.Choice, selected string) uint {
	for _, c := range choices {
		if c.Label == selected {
			return c.ID
		}
	}
	return 0
}

func (p *formParser) err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return services.ErrValidation.Err(p.errs)
}

// tenantFormValues is the raw text of the tenant form.
type tenantFormValues struct {
	Name, Phone, Email, Rent, MoveIn, Notes, Photo, Property string
}

func parseTenantForm(v tenantFormValues, properties []controllers.Choice, symbol string) (services.TenantInput, error) {
	var p formParser
	in := services.TenantInput{
		FullName:   v.Name,
		Phone:      v.Phone,
		Email:      v.Email,
		RentAmount: p.amount("Monthly rent", v.Rent, symbol),
		MoveInDate: p.date("Move-in date", v.MoveIn),
		Notes:      v.Notes,
		PhotoFile:  v.Photo,
	}
	if id := p.choice(properties, v.Property); id != 0 {
		in.PropertyID = &id
	}
	return in, p.err()
}

// paymentFormValues is the raw text of the payment form.
type paymentFormValues struct {
	Tenant, Amount, Date, Month, Method, LateFee, Notes string
}

func parsePaymentForm(v paymentFormValues, tenants []controllers.Choice, symbol string) (services.PaymentInput, error) {
	var p formParser
	in := services.PaymentInput{
		TenantID:    p.choice(tenants, v.Tenant),
		Amount:      p.amount("Amount", v.Amount, symbol),
		PaymentDate: p.date("Payment date", v.Date),
		MonthYear:   strings.TrimSpace(v.Month),
		Method:      v.Method,
		LateFee:     p.amount("Late fee", v.LateFee, symbol),
		Notes:       v.Notes,
	}
	return in, p.err()
}

// documentFormValues is the raw text of the document form.
type documentFormValues struct {
	Tenant, Type, Expiry, File string
}

func parseDocumentForm(v documentFormValues, tenants []controllers.Choice) (services.DocumentInput, error) {
	var p formParser
	in := services.DocumentInput{
		TenantID:   p.choice(tenants, v.Tenant),
		DocType:    v.Type,
		SourcePath: v.File,
		ExpiryDate: p.optionalDate("Expiry date", v.Expiry),
	}
	return in, p.err()
}

// formatAmount renders a number for an entry without grouping.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func idText(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
