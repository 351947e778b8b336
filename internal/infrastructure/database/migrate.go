package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"atlas-cms/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes. Order matters: referenced
// tables migrate before the tables carrying their foreign keys.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	models := []any{
		&entities.Project{},
		&entities.Language{},
		&entities.File{},
		&entities.FileTranslation{},
		&entities.Area{},
		&entities.AreaTranslation{},
		&entities.AreaFile{},
	}
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return err
	}
	log.Info().Msg("applied content schema migrations")
	return nil
}
