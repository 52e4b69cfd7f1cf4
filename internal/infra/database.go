package infra

import (
	"fmt"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, migrates the
// tables this service owns, then applies the SQL patches GORM cannot express.
//
// Only register_sessions, cash_movements, and z_reports are migrated here:
// orders, order_items, expenses, and users belong to the external sales and
// identity subsystems and are read through their existing tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Translate driver unique-violations into gorm.ErrDuplicatedKey so the
		// session repository can detect a lost open race.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates/updates the owned tables and applies schema patches.
// Also used by integration tests against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.RegisterSession{},
		&model.CashMovement{},
		&model.ZReport{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate cannot express.
// The partial unique index is the load-bearing one: it is what makes the
// single-open-session-per-register invariant a storage-layer guarantee
// instead of a racy application-level check.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"single open session per register", `
CREATE UNIQUE INDEX IF NOT EXISTS ux_register_sessions_open
    ON register_sessions (register_id)
    WHERE status = 'open'`},
		{"movement listing index", `
CREATE INDEX IF NOT EXISTS idx_cash_movements_session_created
    ON cash_movements (session_id, created_at)`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
