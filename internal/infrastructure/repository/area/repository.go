package area

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "atlas-cms/internal/domain/area"
	"atlas-cms/internal/infrastructure/database/entities"
	"atlas-cms/internal/utils/platformerrors"
	"atlas-cms/utils/filekey"
)

// Repository handles area persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, req domain.CreateRequest) (*domain.Area, error) {
	entity := entities.Area{
		ID:        filekey.ID(),
		ProjectID: req.ProjectID,
		ParentID:  req.ParentID,
		Weight:    req.Weight,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entity).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to create area", err,
				"68b2d4f9-30c7-4ea1-95b8-d07c3f61a2e5")
		}
		if err := r.writeTranslations(ctx, tx, entity.ID, req.ProjectID, req.Translations); err != nil {
			return err
		}
		return r.writeFileLinks(ctx, tx, entity.ID, req.ProjectID, req.FileIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, req.ProjectID, entity.ID)
}

func (r *Repository) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Area, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{}
		if req.ParentID != nil {
			updates["parent_id"] = *req.ParentID
		}
		if req.Weight != nil {
			updates["weight"] = *req.Weight
		}
		if len(updates) > 0 {
			res := tx.Model(&entities.Area{}).
				Where("id = ? AND project_id = ?", req.AreaID, req.ProjectID).
				Updates(updates)
			if res.Error != nil {
				return platformerrors.NewError(ctx, platformerrors.LayerRepository,
					platformerrors.ErrorTypeDatabaseError, "failed to update area", res.Error,
					"f30c61a8-92d5-4b47-8e09-1c7d5f42b8a6")
			}
			if res.RowsAffected == 0 {
				return areaNotFound(ctx, req.AreaID)
			}
		}

		if req.Translations != nil {
			if err := tx.Where("area_id = ?", req.AreaID).Delete(&entities.AreaTranslation{}).Error; err != nil {
				return platformerrors.NewError(ctx, platformerrors.LayerRepository,
					platformerrors.ErrorTypeDatabaseError, "failed to clear area translations", err,
					"05e98c47-b1d2-4a63-90f5-7e34a86d21cb")
			}
			if err := r.writeTranslations(ctx, tx, req.AreaID, req.ProjectID, req.Translations); err != nil {
				return err
			}
		}

		if req.FileIDs != nil {
			if err := tx.Where("area_id = ?", req.AreaID).Delete(&entities.AreaFile{}).Error; err != nil {
				return platformerrors.NewError(ctx, platformerrors.LayerRepository,
					platformerrors.ErrorTypeDatabaseError, "failed to clear area file links", err,
					"7d10b5e3-84cf-4926-a05b-3f68d29c04e7")
			}
			if err := r.writeFileLinks(ctx, tx, req.AreaID, req.ProjectID, *req.FileIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, req.ProjectID, req.AreaID)
}

func (r *Repository) writeTranslations(ctx context.Context, tx *gorm.DB, areaID, projectID string, translations map[string]domain.Translation) error {
	for locale, tr := range translations {
		var lang entities.Language
		err := tx.Where("project_id = ? AND locale = ?", projectID, locale).First(&lang).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository,
					platformerrors.ErrorTypeLanguageNotFound,
					fmt.Sprintf("language %q is not configured for this project", locale), err,
					"e58a03d7-6f21-4c94-b80e-29c6d41f75a3",
					map[string]any{"locale": locale})
			}
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to resolve language", err,
				"b94d17f0-2ce8-4a53-96b1-08e5c73a4d26")
		}
		row := entities.AreaTranslation{
			AreaID:      areaID,
			LanguageID:  lang.ID,
			Title:       tr.Title,
			Subtitle:    tr.Subtitle,
			Description: tr.Description,
		}
		if err := tx.Create(&row).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to create area translation", err,
				"31c7e0a5-d849-4f62-8b30-57a92e14c6d8")
		}
	}
	return nil
}

// writeFileLinks attaches files after checking they belong to the project.
func (r *Repository) writeFileLinks(ctx context.Context, tx *gorm.DB, areaID, projectID string, fileIDs []string) error {
	for _, fileID := range fileIDs {
		var count int64
		if err := tx.Model(&entities.File{}).
			Where("id = ? AND project_id = ?", fileID, projectID).
			Count(&count).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to check file ownership", err,
				"a27f90b4-15dc-4e83-b65a-c08d34e91f72")
		}
		if count == 0 {
			return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeValidation, "file does not exist in this project", nil,
				"49e05d13-c786-4ba2-9f40-6d21a83c57e9",
				map[string]any{"file_id": fileID})
		}
		if err := tx.Create(&entities.AreaFile{AreaID: areaID, FileID: fileID}).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to link file to area", err,
				"d80b35c6-41ea-4927-a5f8-3e09c17d64b2")
		}
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, projectID, id string) (*domain.Area, error) {
	var entity entities.Area
	err := r.db.WithContext(ctx).
		Preload("Translations").
		Preload("Translations.Language").
		Preload("Files").
		Preload("Files.File").
		Where("id = ? AND project_id = ?", id, projectID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, areaNotFound(ctx, id)
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to get area by id", err,
			"56d218f9-a03e-4c71-b486-90e5f2c3d7a1")
	}
	a := mapEntity(entity)
	return &a, nil
}

func (r *Repository) List(ctx context.Context, q domain.ListQuery) ([]*domain.Area, int64, error) {
	base := r.db.WithContext(ctx).Model(&entities.Area{}).Where("project_id = ?", q.ProjectID)
	if q.ParentID != nil {
		base = base.Where("parent_id = ?", *q.ParentID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to count areas", err,
			"c09e53d1-28b7-4fa4-8360-d17f4a95c2eb")
	}

	query := base.Session(&gorm.Session{}).
		Preload("Translations").
		Preload("Translations.Language").
		Preload("Files").
		Preload("Files.File").
		Order("weight ASC, created_at ASC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit).Offset((q.Page - 1) * q.Limit)
	}

	var rows []entities.Area
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list areas", err,
			"e74a19c0-5d38-4b62-a90f-8c25b61d30f4")
	}

	items := make([]*domain.Area, 0, len(rows))
	for _, row := range rows {
		a := mapEntity(row)
		items = append(items, &a)
	}
	return items, total, nil
}

func (r *Repository) Dropdown(ctx context.Context, projectID string) ([]domain.DropdownItem, error) {
	type row struct {
		ID    string
		Title string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("areas").
		Select("areas.id, COALESCE(MIN(area_translations.title), '') AS title").
		Joins("LEFT JOIN area_translations ON area_translations.area_id = areas.id").
		Where("areas.project_id = ?", projectID).
		Group("areas.id").
		Order("areas.id").
		Scan(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list areas for dropdown", err,
			"12b84f6d-e095-4a37-bc18-57d30e92a4f6")
	}

	items := make([]domain.DropdownItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.DropdownItem{ID: r.ID, Title: r.Title})
	}
	return items, nil
}

func (r *Repository) CountChildren(ctx context.Context, projectID, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Area{}).
		Where("project_id = ? AND parent_id = ?", projectID, id).
		Count(&count).Error
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to count child areas", err,
			"87c31de0-96b4-4f52-a07e-c48d15f62a90")
	}
	return count, nil
}

func (r *Repository) Delete(ctx context.Context, projectID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("area_id = ?", id).Delete(&entities.AreaTranslation{}).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to delete area translations", err,
				"40f7a2e8-d153-4c96-b80d-29e63c51f7a4")
		}
		if err := tx.Where("area_id = ?", id).Delete(&entities.AreaFile{}).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to delete area file links", err,
				"6b29c0d5-73f8-4e14-a5c6-08d41b92e3f7")
		}
		res := tx.Where("id = ? AND project_id = ?", id, projectID).Delete(&entities.Area{})
		if res.Error != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to delete area", res.Error,
				"93d60ae1-4b27-4f85-90c3-e71f52d8b046")
		}
		if res.RowsAffected == 0 {
			return areaNotFound(ctx, id)
		}
		return nil
	})
}

func areaNotFound(ctx context.Context, id string) error {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "area not found", nil,
		"25e81c47-f9d0-4b36-a278-61c094d5e3fb",
		map[string]any{"area_id": id})
}

func mapEntity(entity entities.Area) domain.Area {
	a := domain.Area{
		ID:        entity.ID,
		ProjectID: entity.ProjectID,
		ParentID:  entity.ParentID,
		Weight:    entity.Weight,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
	for _, tr := range entity.Translations {
		a.Translations = append(a.Translations, domain.Translation{
			Locale:      tr.Language.Locale,
			Title:       tr.Title,
			Subtitle:    tr.Subtitle,
			Description: tr.Description,
		})
	}
	for _, link := range entity.Files {
		a.Files = append(a.Files, domain.AttachedFile{
			ID:   link.File.ID,
			Name: link.File.OriginalName,
			Type: link.File.Type,
		})
	}
	return a
}
