package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"homesight/server/config"
	"homesight/server/internal/models"
)

// Database wraps the gorm connection. All persistence goes through
// methods on this type; handlers never touch gorm directly.
type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewDatabase opens the Postgres connection described by cfg.
func NewDatabase(cfg *config.Config, logger *logrus.Logger) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &Database{db: db, logger: logger}, nil
}

// NewWithDB wraps an existing gorm connection. Tests use this with a
// temporary SQLite database.
func NewWithDB(db *gorm.DB, logger *logrus.Logger) *Database {
	return &Database{db: db, logger: logger}
}

// RunMigrations creates or updates the schema. The unique index on
// (user_id, address) comes from the model tags, so duplicate-analysis
// races are resolved by the database, not by a pre-insert check.
func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(
		&models.Property{},
		&models.PropertyImage{},
		&models.UserSettings{},
	)
}

// GetDB exposes the underlying connection for tests.
func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
