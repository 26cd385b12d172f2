package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/camden-git/articlesbackend/logging"
	"github.com/camden-git/articlesbackend/models"
)

// Builder is the squirrel statement builder for hand-written SQL run through GORM.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Options tunes InitGormDB.
type Options struct {
	Logger   *slog.Logger
	DebugSQL bool
}

// withForeignKeys turns on sqlite foreign key enforcement for every pooled connection.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// InitGormDB initializes and returns a GORM database instance
func InitGormDB(dataSourceName string, opts Options) (*gorm.DB, error) {
	base := opts.Logger
	if base == nil {
		base = slog.Default()
	}
	level := logger.Warn
	if opts.DebugSQL {
		level = logger.Info
	}
	gormLogger := logger.New(
		logging.StdLogger(base, slog.LevelInfo),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(withForeignKeys(dataSourceName)), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	// sqlite serializes writers; one connection keeps transactions from tripping over SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.Exec("PRAGMA journal_mode=WAL;").Error; err != nil {
		base.Warn("failed to set WAL mode", "err", err)
	}

	base.Info("GORM database initialized", "path", dataSourceName)
	return db, nil
}

// AutoMigrateModels creates or updates the schema for every model.
func AutoMigrateModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Author{},
		&models.Region{},
		&models.Article{},
		&models.ArticleRegion{},
	)
	if err != nil {
		return fmt.Errorf("GORM AutoMigrate failed: %w", err)
	}
	slog.Debug("GORM AutoMigrate completed")
	return nil
}

// Open initializes the database and migrates the schema.
func Open(dataSourceName string, opts Options) (*gorm.DB, error) {
	db, err := InitGormDB(dataSourceName, opts)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrateModels(db); err != nil {
		Close(db)
		return nil, err
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
