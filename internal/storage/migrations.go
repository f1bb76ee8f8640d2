package storage

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"tenant-ledger/internal/models"
)

// Migration is one versioned schema change.
type Migration struct {
	Version string // sortable, e.g. "20250301000001"
	Name    string
	Up      func(tx *gorm.DB) error
	Down    func(tx *gorm.DB) error
}

// MigrationRecord marks a migration as applied.
type MigrationRecord struct {
	Version   string `gorm:"primaryKey;size:32"`
	Name      string `gorm:"size:200"`
	AppliedAt time.Time
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// Migrator applies registered migrations in version order and records them.
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
}

func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: make([]*Migration, 0),
	}
}

func (m *Migrator) Register(migrations ...*Migration) {
	m.migrations = append(m.migrations, migrations...)
	sort.SliceStable(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})
}

func (m *Migrator) ensureVersionTable() error {
	return m.db.AutoMigrate(&MigrationRecord{})
}

// Applied returns the set of applied versions.
func (m *Migrator) Applied() (map[string]bool, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Find(&records).Error; err != nil {
		return nil, err
	}

	versions := make(map[string]bool, len(records))
	for _, record := range records {
		versions[record.Version] = true
	}
	return versions, nil
}

// Pending lists migrations that have not been applied yet.
func (m *Migrator) Pending() ([]*Migration, error) {
	applied, err := m.Applied()
	if err != nil {
		return nil, err
	}
	var pending []*Migration
	for _, mr := range m.migrations {
		if !applied[mr.Version] {
			pending = append(pending, mr)
		}
	}
	return pending, nil
}

// Up applies every pending migration, each in its own transaction, and
// returns the versions applied.
func (m *Migrator) Up() ([]string, error) {
	pending, err := m.Pending()
	if err != nil {
		return nil, ErrMigration.Err(err)
	}

	var done []string
	for _, mr := range pending {
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := mr.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{
				Version:   mr.Version,
				Name:      mr.Name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			return done, ErrMigration.MsgErr("migration "+mr.Version+" "+mr.Name+" failed", err)
		}
		done = append(done, mr.Version)
	}
	return done, nil
}

// Down rolls back the most recently applied migration. It returns the
// version rolled back, or "" when nothing was applied.
func (m *Migrator) Down() (string, error) {
	if err := m.ensureVersionTable(); err != nil {
		return "", ErrMigration.Err(err)
	}

	var last MigrationRecord
	err := m.db.Order("version DESC").Limit(1).Find(&last).Error
	if err != nil {
		return "", ErrMigration.Err(err)
	}
	if last.Version == "" {
		return "", nil
	}

	var target *Migration
	for _, mr := range m.migrations {
		if mr.Version == last.Version {
			target = mr
			break
		}
	}
	if target == nil {
		return "", ErrMigration.Msg("no registered migration for applied version " + last.Version)
	}

	err = m.db.Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return err
		}
		return tx.Delete(&last).Error
	})
	if err != nil {
		return "", ErrMigration.Err(err)
	}
	return last.Version, nil
}

// LedgerMigrations is the schema history of the ledger database.
func LedgerMigrations() []*Migration {
	return []*Migration{
		{
			Version: "20250101000001",
			Name:    "create_ledger_tables",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Property{}, &models.Tenant{}, &models.Payment{}, &models.Document{})
			},
			Down: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.Document{}, &models.Payment{}, &models.Tenant{}, &models.Property{})
			},
		},
	}
}
