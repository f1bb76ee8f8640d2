package controllers

import (
	"strconv"
	"time"

	"tenant-ledger/internal/models"
	"tenant-ledger/internal/services"
)

// TenantRow is one line of the tenants table.
type TenantRow struct {
	ID     uint
	Name   string
	Phone  string
	Rent   string
	Status string
	Active bool
}

// PaymentRow is one line of the rent table.
type PaymentRow struct {
	ID      uint
	Date    string
	Tenant  string
	Amount  string
	Method  string
	Month   string
	LateFee string
	Total   string
}

// DocumentRow is one line of the documents table. Status is empty for
// documents that need no attention.
type DocumentRow struct {
	ID     uint
	Type   string
	Tenant string
	Expiry string
	Status string
	Path   string
}

type PropertyRow struct {
	ID      uint
	Address string
	Unit    string
	Notes   string
}

// Choice is an entry of a picker, such as the tenant select of the payment form.
type Choice struct {
	ID    uint
	Label string
}

// TenantDetails is the content of the tenant details dialog.
type TenantDetails struct {
	ID        uint
	Name      string
	Active    bool
	PhotoPath string
	Fields    [][2]string // label, value
	Notes     string
	Payments  []PaymentRow
	Summary   string
	Documents []DocumentRow
}

func (mc *MainController) money(amount float64) string {
	return models.FormatCurrency(mc.currency, amount)
}

func (mc *MainController) tenantRows(tenants []models.Tenant) []TenantRow {
	rows := make([]TenantRow, 0, len(tenants))
	for i := range tenants {
		t := &tenants[i]
		rows = append(rows, TenantRow{
			ID:     t.ID,
			Name:   t.FullName,
			Phone:  t.Phone,
			Rent:   mc.money(t.RentAmount),
			Status: t.Status(),
			Active: t.IsActive,
		})
	}
	return rows
}

func (mc *MainController) paymentRows(payments []models.Payment, tenantName string) []PaymentRow {
	rows := make([]PaymentRow, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		name := tenantName
		if p.Tenant != nil {
			name = p.Tenant.FullName
		}
		lateFee := "-"
		if p.LateFee > 0 {
			lateFee = mc.money(p.LateFee)
		}
		rows = append(rows, PaymentRow{
			ID:      p.ID,
			Date:    p.PaymentDate.Format(models.DateLayout),
			Tenant:  name,
			Amount:  mc.money(p.Amount),
			Method:  p.Method,
			Month:   p.MonthYear,
			LateFee: lateFee,
			Total:   mc.money(p.Total()),
		})
	}
	return rows
}

func (mc *MainController) documentRows(docs []models.Document, now time.Time) []DocumentRow {
	rows := make([]DocumentRow, 0, len(docs))
	for i := range docs {
		d := &docs[i]
		tenant := ""
		if d.Tenant != nil {
			tenant = d.Tenant.FullName
		}
		status := ""
		if d.IsExpired(now) || d.ExpiresWithin(now, mc.windowDays) {
			status = d.ExpiryStatus(now, mc.windowDays)
		}
		rows = append(rows, DocumentRow{
			ID:     d.ID,
			Type:   d.DocType,
			Tenant: tenant,
			Expiry: models.FormatDate(d.ExpiryDate, "N/A"),
			Status: status,
			Path:   d.FilePath,
		})
	}
	return rows
}

func propertyRows(props []models.Property) []PropertyRow {
	rows := make([]PropertyRow, 0, len(props))
	for _, p := range props {
		rows = append(rows, PropertyRow{ID: p.ID, Address: p.Address, Unit: p.UnitNumber, Notes: p.OwnerNotes})
	}
	return rows
}

func (mc *MainController) tenantDetails(t *models.Tenant, history *services.PaymentHistory, docs []models.Document) *TenantDetails {
	deposit := mc.money(t.SecurityDeposit)
	if t.DepositRefunded {
		deposit += " (refunded)"
	}
	property := "-"
	if t.Property != nil {
		property = t.Property.Label()
	}
	email := t.Email
	if email == "" {
		email = "-"
	}

	details := &TenantDetails{
		ID:        t.ID,
		Name:      t.FullName,
		Active:    t.IsActive,
		PhotoPath: t.PhotoPath,
		Fields: [][2]string{
			{"Phone", t.Phone},
			{"Email", email},
			{"Property", property},
			{"Monthly Rent", mc.money(t.RentAmount)},
			{"Deposit", deposit},
			{"Move-in Date", t.MoveInDate.Format(models.DateLayout)},
			{"Move-out Date", models.FormatDate(t.MoveOutDate, "-")},
			{"Status", t.Status()},
		},
		Notes:     t.Notes,
		Documents: mc.documentRows(docs, mc.now()),
	}
	if history != nil {
		details.Payments = mc.paymentRows(history.Payments, t.FullName)
		details.Summary = strconv.Itoa(history.Summary.Count) + " payments, " + mc.money(history.Summary.Total()) + " received"
	}
	return details
}
