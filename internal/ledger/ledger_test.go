package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenant-ledger/internal/config"
	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/services"
	"tenant-ledger/internal/shutdown"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.DBFile = config.MemoryDB
	cfg.LateFee.Amount = 250
	return cfg
}

func TestOpenWiresServices(t *testing.T) {
	cfg := testConfig(t)
	l, err := Open(cfg, logger.NewNop(), nil)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.DB.Ping(context.Background()))
	assert.DirExists(t, filepath.Join(cfg.DataDir, cfg.PhotoDir))
	assert.DirExists(t, filepath.Join(cfg.DataDir, cfg.DocsDir))
	assert.Equal(t, "₹", l.Services.Payments.Currency())
	assert.Equal(t, 30, l.Services.Reminders.WindowDays())

	ctx := context.Background()
	tenant, err := l.Services.Tenants.Add(ctx, services.TenantInput{
		FullName:   "Meera Iyer",
		Phone:      "9876543210",
		RentAmount: 12000,
		MoveInDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 24000.0, tenant.SecurityDeposit)

	fee, err := l.Services.Payments.SuggestLateFee("01-2025", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 250.0, fee)
}

func TestCloseShutsDownDatabase(t *testing.T) {
	sm := shutdown.NewManager(logger.NewNop())
	l, err := Open(testConfig(t), logger.NewNop(), sm)
	require.NoError(t, err)

	l.Close()
	<-sm.Done()
	assert.Error(t, l.DB.Ping(context.Background()))
}
