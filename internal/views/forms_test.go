package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenant-ledger/internal/controllers"
	"tenant-ledger/internal/services"
)

func TestParseTenantForm(t *testing.T) {
	props := []controllers.Choice{{ID: 3, Label: "2A, Lake Road"}}

	in, err := parseTenantForm(tenantFormValues{
		Name:     "Maya Das",
		Phone:    "9876543210",
		Rent:     "₹25,000.50",
		MoveIn:   "2024-07-01",
		Property: "2A, Lake Road",
	}, props, "₹")
	require.NoError(t, err)
	assert.Equal(t, 25000.5, in.RentAmount)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), in.MoveInDate)
	require.NotNil(t, in.PropertyID)
	assert.Equal(t, uint(3), *in.PropertyID)

	in, err = parseTenantForm(tenantFormValues{Name: "Maya Das", Rent: "", MoveIn: ""}, nil, "₹")
	require.NoError(t, err)
	assert.Zero(t, in.RentAmount)
	assert.True(t, in.MoveInDate.IsZero())
	assert.Nil(t, in.PropertyID)
}

func TestParseTenantFormErrors(t *testing.T) {
	_, err := parseTenantForm(tenantFormValues{Rent: "lots", MoveIn: "01/07/2024"}, nil, "₹")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Equal(t, []string{"Monthly rent", "Move-in date"}, services.FieldErrors(err).Fields())
}

func TestParsePaymentForm(t *testing.T) {
	tenants := []controllers.Choice{{ID: 7, Label: "Maya Das (#7)"}}

	in, err := parsePaymentForm(paymentFormValues{
		Tenant: "Maya Das (#7)", Amount: "12000", Date: "2025-03-04",
		Month: " 03-2025 ", Method: "UPI", LateFee: "",
	}, tenants, "₹")
	require.NoError(t, err)
	assert.Equal(t, uint(7), in.TenantID)
	assert.Equal(t, "03-2025", in.MonthYear)
	assert.Zero(t, in.LateFee)

	in, err = parsePaymentForm(paymentFormValues{Tenant: "Someone else", LateFee: "x"}, tenants, "₹")
	assert.Equal(t, []string{"Late fee"}, services.FieldErrors(err).Fields())
	assert.Zero(t, in.TenantID)
}

func TestParseDocumentForm(t *testing.T) {
	tenants := []controllers.Choice{{ID: 1, Label: "A (#1)"}}

	in, err := parseDocumentForm(documentFormValues{Tenant: "A (#1)", Type: "PAN Card", File: "/tmp/pan.pdf"}, tenants)
	require.NoError(t, err)
	assert.Nil(t, in.ExpiryDate)

	in, err = parseDocumentForm(documentFormValues{Tenant: "A (#1)", Expiry: "2026-02-30"}, tenants)
	assert.Equal(t, []string{"Expiry date"}, services.FieldErrors(err).Fields())
	assert.Nil(t, in.ExpiryDate)

	in, err = parseDocumentForm(documentFormValues{Expiry: "2026-02-28"}, tenants)
	require.NoError(t, err)
	require.NotNil(t, in.ExpiryDate)
	assert.Equal(t, "2026-02-28", in.ExpiryDate.Format("2006-01-02"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "25000.00", formatAmount(25000))
	assert.Equal(t, "0.50", formatAmount(0.5))
}
