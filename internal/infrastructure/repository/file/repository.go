package file

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "atlas-cms/internal/domain/file"
	"atlas-cms/internal/infrastructure/database/entities"
	"atlas-cms/internal/upload"
	"atlas-cms/internal/utils/platformerrors"
)

// Repository handles file metadata persistence. Writes that touch
// translations run inside a single transaction together with locale
// resolution; an unknown locale rolls everything back.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, f *domain.StoredFile, translations map[string]upload.Translation) (*domain.StoredFile, error) {
	entity := entities.File{
		ID:           f.ID,
		ProjectID:    f.ProjectID,
		Type:         f.Type,
		OriginalName: f.OriginalName,
		StorageKey:   f.StorageKey,
		ThumbnailKey: f.ThumbnailKey,
		MimeType:     f.MimeType,
		Bytes:        f.Bytes,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entity).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to create file record", err,
				"b3d50e27-9a48-4c16-8f7d-02e5c1a94b63")
		}
		return r.insertTranslations(ctx, tx, entity.ID, f.ProjectID, translations)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, f.ProjectID, entity.ID)
}

func (r *Repository) Update(ctx context.Context, f *domain.StoredFile, translations map[string]upload.Translation, replaceTranslations bool) (*domain.StoredFile, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"original_name": f.OriginalName,
			"storage_key":   f.StorageKey,
			"thumbnail_key": f.ThumbnailKey,
			"mime_type":     f.MimeType,
			"bytes":         f.Bytes,
		}
		res := tx.Model(&entities.File{}).
			Where("id = ? AND project_id = ?", f.ID, f.ProjectID).
			Updates(updates)
		if res.Error != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to update file record", res.Error,
				"07c95f82-4e1d-4ab3-9c60-f38a51d27e94")
		}
		if res.RowsAffected == 0 {
			return fileNotFound(ctx, f.ID)
		}

		if !replaceTranslations {
			return nil
		}

		// Replace wholesale: the submitted metadata is the full desired
		// translation set.
		if err := tx.Where("file_id = ?", f.ID).Delete(&entities.FileTranslation{}).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to clear file translations", err,
				"5a48d0c1-73bf-4e96-8d25-c19e60f4a378")
		}
		return r.insertTranslations(ctx, tx, f.ID, f.ProjectID, translations)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, f.ProjectID, f.ID)
}

// insertTranslations resolves each submitted locale against the project's
// languages and writes the translation rows.
func (r *Repository) insertTranslations(ctx context.Context, tx *gorm.DB, fileID, projectID string, translations map[string]upload.Translation) error {
	for locale, tr := range translations {
		lang, err := r.resolveLocale(ctx, tx, projectID, locale)
		if err != nil {
			return err
		}
		row := entities.FileTranslation{
			FileID:      fileID,
			LanguageID:  lang.ID,
			Title:       tr.Title,
			Subtitle:    tr.Subtitle,
			Description: tr.Description,
		}
		if err := tx.Create(&row).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to create file translation", err,
				"e92c07d5-1b84-4f3a-a6d0-58c3f917b2e6")
		}
	}
	return nil
}

func (r *Repository) resolveLocale(ctx context.Context, tx *gorm.DB, projectID, locale string) (*entities.Language, error) {
	var lang entities.Language
	err := tx.Where("project_id = ? AND locale = ?", projectID, locale).First(&lang).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeLanguageNotFound,
				fmt.Sprintf("language %q is not configured for this project", locale), err,
				"4f7b2a90-c51e-4d68-b3a7-90e82d61c5f4",
				map[string]any{"locale": locale})
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to resolve language", err,
			"a05c83f6-2d97-4b41-8e6a-71d9f42b80c3")
	}
	return &lang, nil
}

func (r *Repository) GetByID(ctx context.Context, projectID, id string) (*domain.StoredFile, error) {
	var entity entities.File
	err := r.db.WithContext(ctx).
		Preload("Translations").
		Preload("Translations.Language").
		Where("id = ? AND project_id = ?", id, projectID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fileNotFound(ctx, id)
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to get file by id", err,
			"6e30b89d-f147-4c52-a0b6-8d25c71f94ea")
	}
	f := mapEntity(entity)
	return &f, nil
}

func (r *Repository) List(ctx context.Context, q domain.ListQuery) ([]*domain.StoredFile, int64, error) {
	base := r.db.WithContext(ctx).Model(&entities.File{}).Where("project_id = ?", q.ProjectID)
	if q.Title != "" {
		base = base.Where(
			"id IN (SELECT file_id FROM file_translations WHERE title ILIKE ?) OR original_name ILIKE ?",
			"%"+q.Title+"%", "%"+q.Title+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to count files", err,
			"2b98e41a-0c57-4fd3-9e82-6a13d50c7b9f")
	}

	query := base.Session(&gorm.Session{}).
		Preload("Translations").
		Preload("Translations.Language").
		Order("created_at DESC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit).Offset((q.Page - 1) * q.Limit)
	}

	var rows []entities.File
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list files", err,
			"c7f09a35-8d16-4e2b-b940-35a7c82d61e0")
	}

	items := make([]*domain.StoredFile, 0, len(rows))
	for _, row := range rows {
		f := mapEntity(row)
		items = append(items, &f)
	}
	return items, total, nil
}

func (r *Repository) Dropdown(ctx context.Context, projectID string) ([]domain.DropdownItem, error) {
	var rows []entities.File
	err := r.db.WithContext(ctx).
		Select("id", "original_name", "type").
		Where("project_id = ?", projectID).
		Order("original_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list files for dropdown", err,
			"83d6f1c0-29ab-47e5-b1d8-f05c62a97e34")
	}

	items := make([]domain.DropdownItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.DropdownItem{
			ID:   row.ID,
			Name: row.OriginalName,
			Type: row.Type,
		})
	}
	return items, nil
}

// Delete removes the row and its translations, returning the deleted record
// so the caller can clean up blobs.
func (r *Repository) Delete(ctx context.Context, projectID, id string) (*domain.StoredFile, error) {
	deleted, err := r.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id = ?", id).Delete(&entities.FileTranslation{}).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to delete file translations", err,
				"f41a86d2-3e09-4c75-a2b8-90c5de178b4a")
		}
		if err := tx.Where("file_id = ?", id).Delete(&entities.AreaFile{}).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to detach file from areas", err,
				"0d27c94e-61f8-4b30-8a5d-c3e91f07b462")
		}
		if err := tx.Where("id = ? AND project_id = ?", id, projectID).Delete(&entities.File{}).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to delete file record", err,
				"1e85b3a7-d420-4f69-9c17-5b0a8d34c6f2")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// DeleteMany removes the given files, skipping ids that do not belong to
// the project, and returns the records actually deleted.
func (r *Repository) DeleteMany(ctx context.Context, projectID string, ids []string) ([]*domain.StoredFile, error) {
	var rows []entities.File
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND id IN ?", projectID, ids).
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to load files for deletion", err,
			"7c20e9b4-53af-4d18-b6c0-e48f91a25d73")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	owned := make([]string, 0, len(rows))
	for _, row := range rows {
		owned = append(owned, row.ID)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id IN ?", owned).Delete(&entities.FileTranslation{}).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to delete file translations", err,
				"92f05c81-64de-4a37-80b9-1c6e53d0a7b8")
		}
		if err := tx.Where("file_id IN ?", owned).Delete(&entities.AreaFile{}).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to detach files from areas", err,
				"ab61e72d-09c5-4f84-b3a0-67d218e9c405")
		}
		if err := tx.Where("id IN ?", owned).Delete(&entities.File{}).Error; err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError, "failed to delete file records", err,
				"c58a01f3-7b96-4e20-9d4c-f12e80b53a67")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	deleted := make([]*domain.StoredFile, 0, len(rows))
	for _, row := range rows {
		f := mapEntity(row)
		deleted = append(deleted, &f)
	}
	return deleted, nil
}

func fileNotFound(ctx context.Context, id string) error {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "file not found", nil,
		"3fa61d08-b295-4c7e-a803-d541f92c60b8",
		map[string]any{"file_id": id})
}

func mapEntity(entity entities.File) domain.StoredFile {
	f := domain.StoredFile{
		ID:           entity.ID,
		ProjectID:    entity.ProjectID,
		Type:         entity.Type,
		OriginalName: entity.OriginalName,
		StorageKey:   entity.StorageKey,
		ThumbnailKey: entity.ThumbnailKey,
		MimeType:     entity.MimeType,
		Bytes:        entity.Bytes,
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}
	for _, tr := range entity.Translations {
		f.Translations = append(f.Translations, domain.Translation{
			Locale:      tr.Language.Locale,
			Title:       tr.Title,
			Subtitle:    tr.Subtitle,
			Description: tr.Description,
		})
	}
	return f
}
