package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lexihub/internal/config"
	"lexihub/internal/models"
)

func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection and configure the pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

func runMigrations(db *gorm.DB, logger *slog.Logger) error {
	// Extensions must exist before the trigram index below
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm").Error; err != nil {
		return fmt.Errorf("failed to create pg_trgm extension: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.VerificationCode{},
		&models.Source{},
		&models.Entry{},
		&models.Translation{},
		&models.TranslationVote{},
		&models.Comment{},
		&models.EntryRelationship{},
		&models.EntryHistory{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := migrateSearchVector(db); err != nil {
		return fmt.Errorf("failed to set up search vector: %w", err)
	}

	logger.Info("Database migrations applied successfully")
	return nil
}

// migrateSearchVector installs the derived full-text columns on entries and
// translations. Triggers recompute the weighted tsvectors on every
// insert/update so the columns always reflect the current text fields
// regardless of which code path writes the row.
func migrateSearchVector(db *gorm.DB) error {
	statements := []string{
		`ALTER TABLE entries ADD COLUMN IF NOT EXISTS search_vector tsvector`,
		`CREATE OR REPLACE FUNCTION entries_search_vector_update() RETURNS trigger AS $$
BEGIN
	NEW.search_vector :=
		setweight(to_tsvector('simple', coalesce(NEW.primary_name, '')), 'A') ||
		setweight(to_tsvector('simple', coalesce(NEW.etymology, '')), 'B') ||
		setweight(to_tsvector('simple', coalesce(NEW.definition, '')), 'B') ||
		setweight(to_tsvector('simple', coalesce(NEW.historical_context, '')), 'C');
	RETURN NEW;
END
$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS entries_search_vector_trigger ON entries`,
		`CREATE TRIGGER entries_search_vector_trigger
			BEFORE INSERT OR UPDATE ON entries
			FOR EACH ROW EXECUTE FUNCTION entries_search_vector_update()`,
		`CREATE INDEX IF NOT EXISTS idx_entries_search_vector ON entries USING gin (search_vector)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_primary_name_trgm ON entries USING gin (primary_name gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_other_language_codes ON entries USING gin (other_language_codes)`,
		`ALTER TABLE translations ADD COLUMN IF NOT EXISTS search_vector tsvector`,
		`CREATE OR REPLACE FUNCTION translations_search_vector_update() RETURNS trigger AS $$
BEGIN
	NEW.search_vector :=
		setweight(to_tsvector('simple', coalesce(NEW.translated_name, '')), 'A') ||
		setweight(to_tsvector('simple', coalesce(NEW.notes, '')), 'B');
	RETURN NEW;
END
$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS translations_search_vector_trigger ON translations`,
		`CREATE TRIGGER translations_search_vector_trigger
			BEFORE INSERT OR UPDATE ON translations
			FOR EACH ROW EXECUTE FUNCTION translations_search_vector_update()`,
		`CREATE INDEX IF NOT EXISTS idx_translations_search_vector ON translations USING gin (search_vector)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
