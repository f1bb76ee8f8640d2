package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tenant-ledger/internal/filestore"
	"tenant-ledger/internal/models"
	"tenant-ledger/internal/storage"
)

var today = time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

type fixture struct {
	db        *storage.DB
	tenants   *TenantService
	payments  *PaymentService
	documents *DocumentService
	reminders *ReminderService
	props     *PropertyService
	exporter  *Exporter
	dir       string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := storage.Open(storage.Options{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dir := t.TempDir()
	clock := func() time.Time { return today }
	photos := filestore.New(filepath.Join(dir, "photos"), true, nil)
	docs := filestore.New(filepath.Join(dir, "docs"), false, nil)
	policy := models.LateFeePolicy{GraceDays: 5, Amount: 500}

	return &fixture{
		db:        db,
		tenants:   NewTenantService(db.Tenants(), photos, nil, clock),
		payments:  NewPaymentService(db.Payments(), db.Tenants(), policy, "₹", nil, clock),
		documents: NewDocumentService(db.Documents(), db.Tenants(), docs, nil),
		reminders: NewReminderService(db.Documents(), DefaultReminderWindow, nil),
		props:     NewPropertyService(db.Properties(), nil),
		exporter:  NewExporter(db.Tenants(), db.Payments(), db.Documents(), db.Properties(), nil, clock),
		dir:       dir,
	}
}

func tenantInput(name string, rent float64) TenantInput {
	return TenantInput{
		FullName:   name,
		Phone:      "9876543210",
		Email:      "tenant@example.com",
		RentAmount: rent,
		MoveInDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestAddTenantComputesDeposit(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, rent := range []float64{25000, 9999.5, 1} {
		tenant, err := f.tenants.Add(ctx, tenantInput("  Asha Verma ", rent))
		require.NoError(t, err)
		assert.Equal(t, rent*2, tenant.SecurityDeposit)
		assert.Equal(t, "Asha Verma", tenant.FullName)
		assert.True(t, tenant.IsActive)

		stored, err := f.tenants.Get(ctx, tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, rent*2, stored.SecurityDeposit)
	}
}

func TestAddTenantValidation(t *testing.T) {
	f := setup(t)

	in := TenantInput{Phone: "98765-4321", Email: "not-an-email", RentAmount: 0}
	_, err := f.tenants.Add(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	fields := FieldErrors(err)
	assert.ElementsMatch(t, []string{"Full name", "Phone", "Email", "Monthly rent", "Move-in date"}, fields.Fields())

	list, err := f.tenants.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPhoneRule(t *testing.T) {
	type form struct {
		Phone string `validate:"phone"`
	}
	assert.NoError(t, Validate(&form{Phone: "9876543210"}))
	assert.NoError(t, Validate(&form{Phone: "00919876543210"}))
	assert.Error(t, Validate(&form{Phone: "987654321"}))
	assert.Error(t, Validate(&form{Phone: "+919876543210"}))
	assert.Error(t, Validate(&form{Phone: "98765 43210"}))
}

func TestAddTenantWithPhoto(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{1}, 32)...)

	in := tenantInput("Photo Person", 8000)
	in.PhotoFile = writeFile(t, t.TempDir(), "id.png", png)
	tenant, err := f.tenants.Add(ctx, in)
	require.NoError(t, err)
	assert.True(t, tenant.HasPhoto())
	assert.True(t, filestore.Exists(tenant.PhotoPath))

	bad := tenantInput("Bad Photo", 8000)
	bad.PhotoFile = writeFile(t, t.TempDir(), "id.png", []byte("%PDF-1.4 not an image"))
	_, err = f.tenants.Add(ctx, bad)
	assert.ErrorIs(t, err, filestore.ErrNotImage)

	missing := tenantInput("Missing Photo", 8000)
	missing.PhotoFile = filepath.Join(t.TempDir(), "gone.png")
	_, err = f.tenants.Add(ctx, missing)
	assert.ErrorIs(t, err, filestore.ErrSourceMissing)
}

func TestUpdateKeepsDeposit(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tenant, err := f.tenants.Add(ctx, tenantInput("Dev Patel", 10000))
	require.NoError(t, err)

	in := tenantInput("Dev Patel", 15000)
	in.Notes = "rent revised"
	updated, err := f.tenants.Update(ctx, tenant.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, updated.RentAmount)
	assert.Equal(t, 20000.0, updated.SecurityDeposit)

	stored, err := f.tenants.Get(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 20000.0, stored.SecurityDeposit)
	assert.Equal(t, "rent revised", stored.Notes)

	_, err = f.tenants.Update(ctx, 999, in)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestToggleStatusKeepsHistory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tenant, err := f.tenants.Add(ctx, tenantInput("Lina Roy", 12000))
	require.NoError(t, err)

	_, err = f.payments.Record(ctx, PaymentInput{
		TenantID: tenant.ID, Amount: 12000, PaymentDate: today,
		MonthYear: "03-2025", Method: models.MethodBankTransfer,
	})
	require.NoError(t, err)

	docPath := writeFile(t, t.TempDir(), "lease.pdf", []byte("%PDF-1.4 lease"))
	_, err = f.documents.Add(ctx, DocumentInput{TenantID: tenant.ID, DocType: models.DocLease, SourcePath: docPath})
	require.NoError(t, err)

	off, err := f.tenants.ToggleStatus(ctx, tenant.ID)
	require.NoError(t, err)
	assert.False(t, off.IsActive)
	require.NotNil(t, off.MoveOutDate)
	assert.Equal(t, "2025-03-10", models.FormatDate(off.MoveOutDate, ""))

	history, err := f.payments.History(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Len(t, history.Payments, 1)
	docs, err := f.documents.ListByTenant(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	active, err := f.tenants.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	on, err := f.tenants.ToggleStatus(ctx, tenant.ID)
	require.NoError(t, err)
	assert.True(t, on.IsActive)
	stored, err := f.tenants.Get(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.MoveOutDate)
}

func TestRecordPayment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	prop, err := f.props.Add(ctx, PropertyInput{Address: "12 Park Street", UnitNumber: "4B"})
	require.NoError(t, err)

	in := tenantInput("Ira Sen", 18000)
	in.PropertyID = &prop.ID
	tenant, err := f.tenants.Add(ctx, in)
	require.NoError(t, err)

	payment, err := f.payments.Record(ctx, PaymentInput{
		TenantID: tenant.ID, Amount: 18000, PaymentDate: today,
		MonthYear: "03-2025", Method: models.MethodUPI, LateFee: 500, Notes: "late",
	})
	require.NoError(t, err)
	assert.Equal(t, 18500.0, payment.Total())
	require.NotNil(t, payment.PropertyID)
	assert.Equal(t, prop.ID, *payment.PropertyID)

	id, err := uuid.Parse(payment.ReceiptNo)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	history, err := f.payments.History(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, history.Summary.Count)
	assert.Equal(t, 18500.0, history.Summary.Total())

	receipt, err := f.payments.Receipt(ctx, payment.ID)
	require.NoError(t, err)
	assert.Contains(t, receipt, "Receipt No : "+payment.ReceiptNo)
	assert.Contains(t, receipt, "Tenant     : Ira Sen")
	assert.Contains(t, receipt, "Property   : 4B, 12 Park Street")
	assert.Contains(t, receipt, "Late fee   : ₹500.00")
	assert.Contains(t, receipt, "Total paid : ₹18,500.00")
	assert.Contains(t, receipt, "Notes      : late")
}

func TestRecordPaymentRejects(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tenant, err := f.tenants.Add(ctx, tenantInput("Moved Out", 5000))
	require.NoError(t, err)
	_, err = f.tenants.Deactivate(ctx, tenant.ID)
	require.NoError(t, err)

	valid := PaymentInput{TenantID: tenant.ID, Amount: 5000, PaymentDate: today, MonthYear: "03-2025", Method: models.MethodCash}

	_, err = f.payments.Record(ctx, valid)
	assert.ErrorIs(t, err, ErrTenantInactive)

	missing := valid
	missing.TenantID = 404
	_, err = f.payments.Record(ctx, missing)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	bad := PaymentInput{TenantID: tenant.ID, Amount: -1, PaymentDate: today, MonthYear: "2025-03", Method: "Bitcoin", LateFee: -5}
	_, err = f.payments.Record(ctx, bad)
	require.ErrorIs(t, err, ErrValidation)
	assert.ElementsMatch(t, []string{"Amount", "For month", "Payment method", "Late fee"}, FieldErrors(err).Fields())

	list, err := f.payments.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLateFeeSuggestions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	fee, err := f.payments.SuggestLateFee("03-2025", time.Date(2025, time.March, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, fee)

	fee, err = f.payments.SuggestLateFee("03-2025", time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 500.0, fee)

	_, err = f.payments.SuggestLateFee("March", today)
	assert.ErrorIs(t, err, ErrValidation)

	tenant, err := f.tenants.Add(ctx, tenantInput("Prefill", 7500))
	require.NoError(t, err)
	in, err := f.payments.Prefill(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 7500.0, in.Amount)
	assert.Equal(t, "03-2025", in.MonthYear)
	assert.Equal(t, 500.0, in.LateFee)
}

func TestAddDocument(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tenant, err := f.tenants.Add(ctx, tenantInput("Doc Holder", 9000))
	require.NoError(t, err)

	src := writeFile(t, t.TempDir(), "passport.pdf", []byte("%PDF-1.4 passport scan"))
	expiry := time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)
	doc, err := f.documents.Add(ctx, DocumentInput{
		TenantID: tenant.ID, DocType: models.DocPassport, SourcePath: src, ExpiryDate: &expiry,
	})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.MimeType)
	assert.Equal(t, "passport.pdf", doc.OriginalName)
	assert.Equal(t, filepath.Join(f.dir, "docs"), filepath.Dir(doc.FilePath))
	assert.Equal(t, "2026-01-15", models.FormatDate(doc.ExpiryDate, ""))

	_, err = f.documents.Add(ctx, DocumentInput{TenantID: tenant.ID, DocType: "Visa", SourcePath: src})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.documents.Add(ctx, DocumentInput{TenantID: tenant.ID, DocType: models.DocOther})
	assert.Equal(t, []string{"File"}, FieldErrors(err).Fields())
}

func TestReminders(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	current, err := f.tenants.Add(ctx, tenantInput("Current", 9000))
	require.NoError(t, err)
	former, err := f.tenants.Add(ctx, tenantInput("Former", 9000))
	require.NoError(t, err)

	add := func(tenantID uint, name string, expiry *time.Time) {
		src := writeFile(t, t.TempDir(), name, []byte("content of "+name))
		_, err := f.documents.Add(ctx, DocumentInput{TenantID: tenantID, DocType: models.DocOther, SourcePath: src, ExpiryDate: expiry})
		require.NoError(t, err)
	}
	date := func(m time.Month, d int) *time.Time {
		v := time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	add(current.ID, "expired.txt", date(time.March, 9))
	add(current.ID, "today.txt", date(time.March, 10))
	add(current.ID, "soon.txt", date(time.April, 9))
	add(current.ID, "later.txt", date(time.April, 10))
	add(current.ID, "none.txt", nil)
	add(former.ID, "former.txt", date(time.January, 1))
	_, err = f.tenants.Deactivate(ctx, former.ID)
	require.NoError(t, err)

	r, err := f.reminders.Check(ctx, today)
	require.NoError(t, err)
	require.Len(t, r.Expired, 1)
	assert.Equal(t, "expired.txt", r.Expired[0].OriginalName)
	require.Len(t, r.ExpiringSoon, 2)
	assert.Equal(t, "today.txt", r.ExpiringSoon[0].OriginalName)
	assert.Equal(t, "soon.txt", r.ExpiringSoon[1].OriginalName)
	assert.False(t, r.Empty())

	r, err = f.reminders.CheckWithin(ctx, today, 0)
	require.NoError(t, err)
	assert.Len(t, r.ExpiringSoon, 1)
}

func TestExport(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tenant, err := f.tenants.Add(ctx, tenantInput("Exported", 6000))
	require.NoError(t, err)
	_, err = f.payments.Record(ctx, PaymentInput{
		TenantID: tenant.ID, Amount: 6000, PaymentDate: today, MonthYear: "03-2025", Method: models.MethodCheque,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.exporter.Export(ctx, &buf))

	var snap Snapshot
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &snap))
	assert.Equal(t, "2025-03-10T14:30:00Z", snap.GeneratedAt)
	require.Len(t, snap.Tenants, 1)
	assert.Equal(t, 12000.0, snap.Tenants[0].SecurityDeposit)
	assert.Equal(t, "2024-06-01", snap.Tenants[0].MoveInDate)
	require.Len(t, snap.Payments, 1)
	assert.Equal(t, "03-2025", snap.Payments[0].MonthYear)
	assert.Empty(t, snap.Documents)
}

func TestProperties(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.props.Add(ctx, PropertyInput{Address: "   "})
	assert.True(t, errors.Is(err, ErrValidation))

	p, err := f.props.Add(ctx, PropertyInput{Address: "5 Hill View"})
	require.NoError(t, err)
	list, err := f.props.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
}
