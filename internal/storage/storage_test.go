package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tenant-ledger/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Options{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTenant(name string, rent float64) *models.Tenant {
	return &models.Tenant{
		FullName:        name,
		Phone:           "9876543210",
		MoveInDate:      day(2024, time.January, 1),
		RentAmount:      rent,
		SecurityDeposit: models.DepositFor(rent),
		IsActive:        true,
	}
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := setupTestDB(t)

	var record MigrationRecord
	err := db.gorm.Where("version = ?", "20250101000001").First(&record).Error
	require.NoError(t, err)
	assert.Equal(t, "create_ledger_tables", record.Name)

	for _, table := range []string{"tenants", "rent_payments", "documents", "properties"} {
		assert.True(t, db.gorm.Migrator().HasTable(table), table)
	}

	applied, err := db.Migrate()
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestMigratorDownAndUp(t *testing.T) {
	db := setupTestDB(t)
	m := db.Migrator()

	version, err := m.Down()
	require.NoError(t, err)
	assert.Equal(t, "20250101000001", version)
	assert.False(t, db.gorm.Migrator().HasTable("tenants"))

	version, err = m.Down()
	require.NoError(t, err)
	assert.Empty(t, version)

	applied, err := m.Up()
	require.NoError(t, err)
	assert.Equal(t, []string{"20250101000001"}, applied)
	assert.True(t, db.gorm.Migrator().HasTable("tenants"))
}

func TestMigratorOrdersAndReportsFailures(t *testing.T) {
	db := setupTestDB(t)
	m := NewMigrator(db.gorm)

	var order []string
	m.Register(
		&Migration{Version: "2", Name: "second", Up: func(tx *gorm.DB) error { order = append(order, "2"); return nil }},
		&Migration{Version: "1", Name: "first", Up: func(tx *gorm.DB) error { order = append(order, "1"); return nil }},
		&Migration{Version: "3", Name: "broken", Up: func(tx *gorm.DB) error { return tx.Exec("NOT SQL").Error }},
	)

	applied, err := m.Up()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMigration)
	assert.Equal(t, []string{"1", "2"}, applied)
	assert.Equal(t, []string{"1", "2"}, order)

	pending, err := m.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "3", pending[0].Version)
}

func TestTenantCreateGetList(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	tenants := db.Tenants()

	zara := newTenant("Zara Khan", 12000)
	amit := newTenant("Amit Shah", 9000)
	bela := newTenant("Bela Rao", 10000)
	for _, tn := range []*models.Tenant{zara, amit, bela} {
		require.NoError(t, tenants.Create(ctx, tn))
		assert.NotZero(t, tn.ID)
	}

	got, err := tenants.Get(ctx, zara.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zara Khan", got.FullName)
	assert.Equal(t, 24000.0, got.SecurityDeposit)
	assert.True(t, got.IsActive)
	assert.True(t, got.MoveInDate.Equal(day(2024, time.January, 1)))

	moveOut := day(2025, time.March, 31)
	require.NoError(t, tenants.SetActive(ctx, amit.ID, false, &moveOut))

	list, err := tenants.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Bela Rao", "Zara Khan", "Amit Shah"},
		[]string{list[0].FullName, list[1].FullName, list[2].FullName})
	require.NotNil(t, list[2].MoveOutDate)
	assert.True(t, list[2].MoveOutDate.Equal(moveOut))

	active, err := tenants.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	n, err := tenants.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = tenants.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrDatabase)
}

func TestTenantUpdateKeepsDeposit(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	tn := newTenant("Ravi Kumar", 10000)
	require.NoError(t, db.Tenants().Create(ctx, tn))

	tn.RentAmount = 11000
	tn.SecurityDeposit = 99999
	tn.Email = "ravi@example.com"
	require.NoError(t, db.Tenants().Update(ctx, tn))

	got, err := db.Tenants().Get(ctx, tn.ID)
	require.NoError(t, err)
	assert.Equal(t, 11000.0, got.RentAmount)
	assert.Equal(t, 20000.0, got.SecurityDeposit)
	assert.Equal(t, "ravi@example.com", got.Email)

	missing := newTenant("Ghost", 1)
	missing.ID = 404
	assert.ErrorIs(t, db.Tenants().Update(ctx, missing), ErrNotFound)
	assert.ErrorIs(t, db.Tenants().SetActive(ctx, 404, false, nil), ErrNotFound)
}

func TestMarkDepositRefunded(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	tn := newTenant("Meera Iyer", 8000)
	require.NoError(t, db.Tenants().Create(ctx, tn))

	require.NoError(t, db.Tenants().MarkDepositRefunded(ctx, tn.ID))
	got, err := db.Tenants().Get(ctx, tn.ID)
	require.NoError(t, err)
	assert.True(t, got.DepositRefunded)
}

func TestPaymentRequiresExistingTenant(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	err := db.Payments().Create(ctx, &models.Payment{
		TenantID:    42,
		Amount:      5000,
		PaymentDate: day(2025, time.March, 2),
		MonthYear:   "03-2025",
		Method:      models.MethodCash,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestPaymentsListNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	tn := newTenant("Kiran Das", 7000)
	require.NoError(t, db.Tenants().Create(ctx, tn))

	for i, d := range []time.Time{day(2025, time.January, 3), day(2025, time.March, 2), day(2025, time.February, 4)} {
		p := &models.Payment{
			TenantID:    tn.ID,
			Amount:      7000,
			PaymentDate: d,
			MonthYear:   models.MonthYearOf(d),
			Method:      models.MethodUPI,
			LateFee:     float64(i * 100),
			ReceiptNo:   "r-" + d.Format("0102"),
		}
		require.NoError(t, db.Payments().Create(ctx, p))
	}

	list, err := db.Payments().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "03-2025", list[0].MonthYear)
	assert.Equal(t, "02-2025", list[1].MonthYear)
	assert.Equal(t, "01-2025", list[2].MonthYear)
	require.NotNil(t, list[0].Tenant)
	assert.Equal(t, "Kiran Das", list[0].Tenant.FullName)

	got, err := db.Payments().Get(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 7200.0, got.Total())

	dup := &models.Payment{TenantID: tn.ID, Amount: 1, PaymentDate: day(2025, time.April, 1),
		MonthYear: "04-2025", Method: models.MethodCash, ReceiptNo: "r-0302"}
	assert.ErrorIs(t, db.Payments().Create(ctx, dup), ErrAlreadyExists)
}

func TestDeactivationKeepsHistory(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	tn := newTenant("Sana Mir", 6000)
	require.NoError(t, db.Tenants().Create(ctx, tn))

	require.NoError(t, db.Payments().Create(ctx, &models.Payment{
		TenantID: tn.ID, Amount: 6000, PaymentDate: day(2025, time.May, 1),
		MonthYear: "05-2025", Method: models.MethodCheque, ReceiptNo: "r1",
	}))
	require.NoError(t, db.Documents().Create(ctx, &models.Document{
		TenantID: tn.ID, DocType: models.DocLease, FilePath: "tenant_documents/abc.pdf",
	}))

	require.NoError(t, db.Tenants().SetActive(ctx, tn.ID, false, nil))

	payments, err := db.Payments().ListByTenant(ctx, tn.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	docs, err := db.Documents().ListByTenant(ctx, tn.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDocumentsOrderAndExpiry(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	tn := newTenant("Omar Ali", 5000)
	require.NoError(t, db.Tenants().Create(ctx, tn))

	expiries := []*time.Time{nil, ptr(day(2025, time.December, 31)), ptr(day(2025, time.June, 1))}
	for i, exp := range expiries {
		require.NoError(t, db.Documents().Create(ctx, &models.Document{
			TenantID:   tn.ID,
			DocType:    models.DocumentTypes[i],
			FilePath:   "doc" + string(rune('a'+i)),
			ExpiryDate: exp,
		}))
	}

	docs, err := db.Documents().List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, models.DocAadhaar, docs[0].DocType)
	assert.Equal(t, models.DocPAN, docs[1].DocType)
	assert.Nil(t, docs[2].ExpiryDate)
	require.NotNil(t, docs[0].Tenant)

	soon, err := db.Documents().ListExpiringBefore(ctx, day(2025, time.June, 1))
	require.NoError(t, err)
	require.Len(t, soon, 1)
	assert.Equal(t, models.DocAadhaar, soon[0].DocType)

	_, err = db.Documents().Get(ctx, 77)
	assert.ErrorIs(t, err, ErrNotFound)

	err = db.Documents().Create(ctx, &models.Document{TenantID: 77, DocType: models.DocOther, FilePath: "x"})
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestProperties(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	p := &models.Property{Address: "7 Lake Road", UnitNumber: "2A"}
	require.NoError(t, db.Properties().Create(ctx, p))

	tn := newTenant("Nisha Paul", 15000)
	tn.PropertyID = &p.ID
	require.NoError(t, db.Tenants().Create(ctx, tn))

	got, err := db.Tenants().Get(ctx, tn.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Property)
	assert.Equal(t, "2A, 7 Lake Road", got.Property.Label())

	list, err := db.Properties().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	bad := newTenant("Nobody", 1)
	missing := uint(55)
	bad.PropertyID = &missing
	assert.ErrorIs(t, db.Tenants().Create(ctx, bad), ErrForeignKey)
}

func TestPingAndShutdown(t *testing.T) {
	db, err := Open(Options{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Ping(context.Background()))
	db.Shutdown()
	assert.Error(t, db.Ping(context.Background()))
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_foreign_keys=on", dsn(":memory:"))
	assert.Equal(t, "ledger.db?_foreign_keys=on", dsn("ledger.db"))
	assert.Equal(t, "ledger.db?cache=shared&_foreign_keys=on", dsn("ledger.db?cache=shared"))
}

func ptr[T any](v T) *T {
	return &v
}
