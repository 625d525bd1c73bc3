package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"consultation-history-service/internal/config"
	"consultation-history-service/internal/domain/entities"
)

// Connect opens the Postgres connection through the lib/pq driver, wraps it
// with gorm and migrates the schema. The handle is returned for explicit
// injection into the repositories; there is no package-level singleton.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing gorm: %w", err)
	}

	if err := db.AutoMigrate(
		&entities.Consultation{},
		&entities.ConsultationVersion{},
		&entities.FollowUp{},
	); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return db, nil
}
