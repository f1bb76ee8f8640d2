// Package ledger opens the database and attachment stores named by the
// configuration and builds the services on top of them. The GUI and the
// command line both start from Open.
package ledger

import (
	"strings"

	"tenant-ledger/internal/config"
	"tenant-ledger/internal/controllers"
	"tenant-ledger/internal/filestore"
	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/models"
	"tenant-ledger/internal/services"
	"tenant-ledger/internal/shutdown"
	"tenant-ledger/internal/storage"
)

// Ledger is an opened ledger ready for use.
type Ledger struct {
	Config   *config.Config
	Log      logger.Logger
	DB       *storage.DB
	Services controllers.Services
	Shutdown *shutdown.Manager
}

// Open prepares the data directories, opens the database and registers it
// with sm, which closes it on shutdown.
func Open(cfg *config.Config, log logger.Logger, sm *shutdown.Manager) (*Ledger, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if sm == nil {
		sm = shutdown.NewManager(log)
	}

	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	db, err := storage.Open(storage.Options{
		Path:     cfg.DBPath(),
		Logger:   log,
		TraceSQL: strings.EqualFold(cfg.Log.Level, "trace"),
	})
	if err != nil {
		return nil, err
	}
	sm.Register("database", db)

	photos := filestore.New(cfg.PhotoPath(), true, log)
	docs := filestore.New(cfg.DocsPath(), false, log)
	policy := models.LateFeePolicy{
		GraceDays: cfg.LateFee.GraceDays,
		Amount:    cfg.LateFee.Amount,
	}

	l := &Ledger{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Shutdown: sm,
		Services: controllers.Services{
			Tenants:    services.NewTenantService(db.Tenants(), photos, log, nil),
			Payments:   services.NewPaymentService(db.Payments(), db.Tenants(), policy, cfg.CurrencySymbol, log, nil),
			Documents:  services.NewDocumentService(db.Documents(), db.Tenants(), docs, log),
			Properties: services.NewPropertyService(db.Properties(), log),
			Reminders:  services.NewReminderService(db.Documents(), cfg.Reminders.WindowDays, log),
			Exporter:   services.NewExporter(db.Tenants(), db.Payments(), db.Documents(), db.Properties(), log, nil),
		},
	}

	log.Info("Ledger", "ledger opened", map[string]interface{}{
		"db":        cfg.DBPath(),
		"photo_dir": cfg.PhotoPath(),
		"docs_dir":  cfg.DocsPath(),
	})
	return l, nil
}

// Close shuts down everything registered with the shutdown manager.
func (l *Ledger) Close() {
	l.Shutdown.Shutdown()
}
