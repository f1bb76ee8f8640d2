package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDepositIsTwiceRent(t *testing.T) {
	for _, rent := range []float64{0, 1, 8500, 12345.5} {
		assert.Equal(t, rent*2, DepositFor(rent))
	}
}

func TestTenantStatus(t *testing.T) {
	tenant := Tenant{IsActive: true}
	assert.Equal(t, "Active", tenant.Status())
	tenant.IsActive = false
	assert.Equal(t, "Inactive", tenant.Status())
	assert.False(t, tenant.HasPhoto())
}

func TestPaymentTotalIncludesLateFee(t *testing.T) {
	p := Payment{Amount: 15000, LateFee: 500}
	assert.Equal(t, 15500.0, p.Total())

	p.LateFee = 0
	assert.Equal(t, 15000.0, p.Total())
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Payment{
		{Amount: 10000, LateFee: 200},
		{Amount: 10000},
		{Amount: 9000, LateFee: 100},
	})
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 29000.0, s.TotalRent)
	assert.Equal(t, 300.0, s.TotalLateFee)
	assert.Equal(t, 29300.0, s.Total())

	assert.Equal(t, PaymentSummary{}, Summarize(nil))
}

func TestParseMonthYear(t *testing.T) {
	m, err := ParseMonthYear("03-2025")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 1), m)
	assert.Equal(t, "03-2025", MonthYearOf(date(2025, time.March, 17)))

	for _, bad := range []string{"2025-03", "13-2025", "3/2025", ""} {
		_, err := ParseMonthYear(bad)
		assert.Error(t, err, bad)
	}
}

func TestLateFeePolicy(t *testing.T) {
	policy := LateFeePolicy{GraceDays: 5, Amount: 500}

	due, err := policy.DueDate("03-2025")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 6), due)

	fee, err := policy.Suggest("03-2025", date(2025, time.March, 6))
	require.NoError(t, err)
	assert.Zero(t, fee)

	fee, err = policy.Suggest("03-2025", time.Date(2025, time.March, 7, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 500.0, fee)

	fee, err = policy.Suggest("03-2025", date(2025, time.February, 27))
	require.NoError(t, err)
	assert.Zero(t, fee)

	_, err = policy.Suggest("March", date(2025, time.March, 1))
	assert.Error(t, err)
}

func TestDocumentExpiry(t *testing.T) {
	now := time.Date(2025, time.June, 15, 18, 0, 0, 0, time.UTC)

	noExpiry := Document{}
	assert.False(t, noExpiry.IsExpired(now))
	assert.False(t, noExpiry.ExpiresWithin(now, 30))
	assert.Equal(t, "-", noExpiry.ExpiryStatus(now, 30))
	assert.Zero(t, noExpiry.DaysUntilExpiry(now))

	yesterday := date(2025, time.June, 14)
	expired := Document{ExpiryDate: &yesterday}
	assert.True(t, expired.IsExpired(now))
	assert.False(t, expired.ExpiresWithin(now, 30))
	assert.Equal(t, "Expired", expired.ExpiryStatus(now, 30))
	assert.Equal(t, -1, expired.DaysUntilExpiry(now))

	today := date(2025, time.June, 15)
	lastDay := Document{ExpiryDate: &today}
	assert.False(t, lastDay.IsExpired(now))
	assert.True(t, lastDay.ExpiresWithin(now, 0))

	soon := date(2025, time.July, 15)
	expiring := Document{ExpiryDate: &soon}
	assert.True(t, expiring.ExpiresWithin(now, 30))
	assert.False(t, expiring.ExpiresWithin(now, 29))
	assert.Equal(t, "Expiring soon", expiring.ExpiryStatus(now, 30))
	assert.Equal(t, 30, expiring.DaysUntilExpiry(now))

	later := date(2026, time.January, 1)
	valid := Document{ExpiryDate: &later}
	assert.Equal(t, "Valid", valid.ExpiryStatus(now, 30))
}

func TestCatalogues(t *testing.T) {
	assert.True(t, IsPaymentMethod("UPI"))
	assert.False(t, IsPaymentMethod("Bitcoin"))
	assert.True(t, IsDocumentType("Passport"))
	assert.False(t, IsDocumentType("passport"))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "₹25,000.00", FormatCurrency("₹", 25000))
	assert.Equal(t, "₹1,234,567.89", FormatCurrency("₹", 1234567.891))
	assert.Equal(t, "$0.50", FormatCurrency("$", 0.5))
	assert.Equal(t, "-₹100.00", FormatCurrency("₹", -100))
}

func TestDates(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(&d, "-"))
	assert.Equal(t, "-", FormatDate(nil, "-"))

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)

	local := time.Date(2024, time.May, 3, 23, 59, 0, 0, time.FixedZone("IST", 5*3600+1800))
	assert.Equal(t, date(2024, time.May, 3), DateOnly(local))
}

func TestPropertyLabel(t *testing.T) {
	p := Property{Address: "12 Park Street"}
	assert.Equal(t, "12 Park Street", p.Label())
	p.UnitNumber = "4B"
	assert.Equal(t, "4B, 12 Park Street", p.Label())
}
