// Package db opens the relational store and keeps its schema up to date
package db

import (
	"bitwise74/job-portal/config"
	"bitwise74/job-portal/internal/model"
	"bitwise74/job-portal/pkg/util"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database described by c and applies migrations
func New(c config.Database) (*gorm.DB, error) {
	db, err := Open(c)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Open connects without touching the schema. Unique and foreign key
// violations come back as gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func Open(c config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch c.Driver {
	case "postgres":
		dialector = postgres.Open(c.DSN)
	case "sqlite":
		// If running in a docker container don't allow the sqlite file to be created.
		// The host should instead mount it using volumes
		if util.IsRunningInDocker() && !strings.Contains(c.DSN, "mode=memory") {
			if _, err := os.Stat(dsnPath(c.DSN)); errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("SQLite database file not mounted, please use docker volumes to mount it to /app/%s", dsnPath(c.DSN))
			}
		}

		dialector = sqlite.Open(withForeignKeys(c.DSN))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s database, %w", c.Driver, err)
	}

	return db, nil
}

// SQLite ignores foreign keys unless asked per connection
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk") {
		return dsn
	}

	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}

	return dsn + "?_foreign_keys=on"
}

func dsnPath(dsn string) string {
	p, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	return p
}

type step struct {
	name string
	run  func(tx *gorm.DB) error
}

// steps run once each, in order, after AutoMigrate. Applied names are kept in
// the migrations table.
var steps = []step{
	{
		name: "0001_jobs_listing_index",
		run: func(tx *gorm.DB) error {
			return tx.Exec("CREATE INDEX IF NOT EXISTS idx_jobs_active_created ON jobs (is_active, created_at)").Error
		},
	},
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("failed to automigrate tables, %w", err)
	}

	for _, s := range steps {
		var applied int64
		if err := db.Model(&model.Migration{}).
			Where("name = ?", s.name).
			Count(&applied).
			Error; err != nil {
			return fmt.Errorf("failed to check migration %s, %w", s.name, err)
		}

		if applied > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := s.run(tx); err != nil {
				return err
			}

			return tx.Create(&model.Migration{Name: s.name}).Error
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %s, %w", s.name, err)
		}

		zap.L().Info("Applied migration", zap.String("name", s.name))
	}

	return nil
}
