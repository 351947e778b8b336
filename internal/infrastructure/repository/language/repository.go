package language

import (
	"context"

	"gorm.io/gorm"

	domain "atlas-cms/internal/domain/language"
	"atlas-cms/internal/infrastructure/database/entities"
	"atlas-cms/internal/utils/platformerrors"
)

// Repository handles language reads.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListByProject(ctx context.Context, projectID string) ([]domain.Language, error) {
	var rows []entities.Language
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("locale ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list languages", err,
			"74d09c2f-b6e1-4a85-93c7-0f28e51d46ba")
	}

	langs := make([]domain.Language, 0, len(rows))
	for _, row := range rows {
		langs = append(langs, domain.Language{
			ID:        row.ID,
			ProjectID: row.ProjectID,
			Locale:    row.Locale,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return langs, nil
}
