package models

import (
	"fmt"
	"slices"
	"time"
)

// MonthYearLayout is the layout of Payment.MonthYear ("03-2025").
const MonthYearLayout = "01-2006"

// Payment methods accepted by the rent form.
const (
	MethodCash         = "Cash"
	MethodBankTransfer = "Bank Transfer"
	MethodUPI          = "UPI"
	MethodCheque       = "Cheque"
)

var PaymentMethods = []string{MethodCash, MethodBankTransfer, MethodUPI, MethodCheque}

// IsPaymentMethod reports whether method is one of PaymentMethods.
func IsPaymentMethod(method string) bool {
	return slices.Contains(PaymentMethods, method)
}

// Payment is one rent payment. Payments are immutable once recorded.
type Payment struct {
	ID          uint      `gorm:"primaryKey"`
	TenantID    uint      `gorm:"not null;index"`
	Tenant      *Tenant   `gorm:"foreignKey:TenantID;constraint:OnDelete:RESTRICT"`
	PropertyID  *uint     `gorm:"index"`
	Property    *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:SET NULL"`
	Amount      float64   `gorm:"not null"`
	PaymentDate time.Time `gorm:"type:date;not null;index"`
	MonthYear   string    `gorm:"size:7;not null"`
	Method      string    `gorm:"size:30;not null"`
	LateFee     float64   `gorm:"not null;default:0"`
	Notes       string
	ReceiptNo   string `gorm:"size:36;uniqueIndex"`
	CreatedAt   time.Time
}

func (Payment) TableName() string {
	return "rent_payments"
}

// Total is the rent amount plus any late fee.
func (p *Payment) Total() float64 {
	return p.Amount + p.LateFee
}

// ParseMonthYear parses "MM-YYYY" into the first day of that month.
func ParseMonthYear(s string) (time.Time, error) {
	t, err := time.Parse(MonthYearLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("month must look like MM-YYYY: %q", s)
	}
	return t, nil
}

// MonthYearOf formats the month containing t.
func MonthYearOf(t time.Time) string {
	return t.Format(MonthYearLayout)
}

// LateFeePolicy decides the late fee suggested for a payment. Rent for a
// month is due on its first day; payments later than GraceDays after that
// attract the flat Amount.
type LateFeePolicy struct {
	GraceDays int
	Amount    float64
}

// DueDate returns the last day rent for monthYear can be paid without a fee.
func (p LateFeePolicy) DueDate(monthYear string) (time.Time, error) {
	month, err := ParseMonthYear(monthYear)
	if err != nil {
		return time.Time{}, err
	}
	return month.AddDate(0, 0, p.GraceDays), nil
}

// Suggest returns the late fee for paying monthYear's rent on paidOn.
func (p LateFeePolicy) Suggest(monthYear string, paidOn time.Time) (float64, error) {
	due, err := p.DueDate(monthYear)
	if err != nil {
		return 0, err
	}
	if DateOnly(paidOn).After(due) {
		return p.Amount, nil
	}
	return 0, nil
}

// PaymentSummary aggregates a tenant's payment history.
type PaymentSummary struct {
	Count        int
	TotalRent    float64
	TotalLateFee float64
}

// Total is everything received, rent and late fees.
func (s PaymentSummary) Total() float64 {
	return s.TotalRent + s.TotalLateFee
}

// Summarize totals payments.
func Summarize(payments []Payment) PaymentSummary {
	var s PaymentSummary
	for i := range payments {
		s.Count++
		s.TotalRent += payments[i].Amount
		s.TotalLateFee += payments[i].LateFee
	}
	return s
}
