// Package db opens the Postgres pool and keeps the schema in sync with the models.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"TOURMAP_BACK-END/internal/config"
	"TOURMAP_BACK-END/internal/models"
)

// Open connects to Postgres through the pgx driver and verifies the connection.
func Open(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(int(cfg.Database.MaxConns))
	db.SetMaxIdleConns(int(cfg.Database.MinConns))
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// Models returns every table-backed model in dependency order.
func Models() []any {
	return []any{
		&models.User{},
		&models.Highlight{},
		&models.Tour{},
		&models.HighlightSuggester{},
		&models.TourHighlight{},
		&models.Feedback{},
	}
}

// Migrate creates or updates the tables for all models on an existing connection.
func Migrate(sqlDB *sql.DB) error {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("open gorm: %w", err)
	}

	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
