package file

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"atlas-cms/internal/config"
	"atlas-cms/internal/domain/saga"
	"atlas-cms/internal/imaging"
	"atlas-cms/internal/infrastructure/metrics"
	"atlas-cms/internal/infrastructure/observability"
	"atlas-cms/internal/upload"
	"atlas-cms/internal/utils/platformerrors"
	"atlas-cms/utils/filekey"
)

// Repository defines persistence operations needed by the service.
// Insert and Update run in one transaction, including locale resolution and
// translation writes; an unknown locale rolls the whole write back.
type Repository interface {
	Insert(ctx context.Context, f *StoredFile, translations map[string]upload.Translation) (*StoredFile, error)
	Update(ctx context.Context, f *StoredFile, translations map[string]upload.Translation, replaceTranslations bool) (*StoredFile, error)
	GetByID(ctx context.Context, projectID, id string) (*StoredFile, error)
	List(ctx context.Context, q ListQuery) ([]*StoredFile, int64, error)
	Dropdown(ctx context.Context, projectID string) ([]DropdownItem, error)
	Delete(ctx context.Context, projectID, id string) (*StoredFile, error)
	DeleteMany(ctx context.Context, projectID string, ids []string) ([]*StoredFile, error)
}

// Storage is the blob backend, already retry-wrapped by the caller.
type Storage interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Transcoder normalizes raster payloads before storage.
type Transcoder interface {
	Transcode(ctx context.Context, declaredType, mimeType string, data []byte) (*imaging.Result, error)
}

// Service runs the upload pipeline: validate, transcode, durable write.
type Service struct {
	cfg        *config.Config
	repo       Repository
	storage    Storage
	validator  *upload.Validator
	transcoder Transcoder
	log        zerolog.Logger
}

func NewService(cfg *config.Config, repo Repository, storage Storage, transcoder Transcoder, log zerolog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		repo:    repo,
		storage: storage,
		validator: upload.NewValidator(upload.Limits{
			MaxFileBytes:  cfg.MaxFileBytes,
			MaxBatchBytes: cfg.MaxBatchBytes,
			MaxFiles:      cfg.MaxFilesPerBatch,
			ImageMIMEs:    cfg.AllowedImageTypes,
			AudioMIMEs:    cfg.AllowedAudioTypes,
		}),
		transcoder: transcoder,
		log:        log.With().Str("component", "file-service").Logger(),
	}
}

// Upload validates, transcodes and durably stores a single file. The blob
// writes and the metadata transaction are tied together with compensations:
// if the database write fails, every blob written for this upload is
// removed again.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*StoredFile, error) {
	start := time.Now()

	if err := s.validator.ValidateType(ctx, req.DeclaredType); err != nil {
		return nil, err
	}
	if err := s.validator.ValidatePart(ctx, req.DeclaredType, req.Part); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateTranslations(ctx, req.DeclaredType, req.Metadata); err != nil {
		return nil, err
	}

	data, err := upload.Consume(ctx, req.Part.Source, s.cfg.MaxFileBytes)
	if err != nil {
		return nil, err
	}

	stored, err := s.store(ctx, req, data)
	if err != nil {
		metrics.RecordUpload(req.DeclaredType, "error", 0, time.Since(start).Seconds())
		return nil, err
	}
	metrics.RecordUpload(req.DeclaredType, "success", stored.Bytes, time.Since(start).Seconds())
	return stored, nil
}

// store runs transcode, blob writes and the metadata transaction for an
// already-consumed payload.
func (s *Service) store(ctx context.Context, req UploadRequest, data []byte) (_ *StoredFile, err error) {
	ctx, span := observability.StartUploadSpan(ctx, req.DeclaredType, req.Part.OriginalName)
	defer func() {
		observability.RecordError(span, err)
		span.End()
	}()

	mimeType := upload.EffectiveMimeType(req.Part.MimeType, data)

	transcodeCtx, cancel := context.WithTimeout(ctx, s.cfg.TranscodeTimeout)
	defer cancel()
	result, err := s.transcoder.Transcode(transcodeCtx, req.DeclaredType, mimeType, data)
	if err != nil {
		return nil, err
	}

	key := filekey.New(req.ProjectID, req.Part.OriginalName, extFor(result.MimeType, req.Part.OriginalName))

	sg := saga.New(s.log)
	url, thumbKey, thumbURL, err := s.saveBlobs(ctx, sg, key, result)
	if err != nil {
		s.rollback(ctx, sg)
		return nil, err
	}

	stored := &StoredFile{
		ID:           filekey.ID(),
		ProjectID:    req.ProjectID,
		Type:         req.DeclaredType,
		OriginalName: req.Part.OriginalName,
		StorageKey:   key,
		ThumbnailKey: thumbKey,
		MimeType:     result.MimeType,
		Bytes:        int64(len(result.Data)),
	}

	var translations map[string]upload.Translation
	if req.Metadata != nil {
		translations = req.Metadata.Translations
	}

	inserted, err := s.repo.Insert(ctx, stored, translations)
	if err != nil {
		s.rollback(ctx, sg)
		return nil, err
	}
	sg.Commit()

	inserted.URL = url
	inserted.ThumbnailURL = thumbURL
	return inserted, nil
}

// saveBlobs writes the main payload and, best effort, its thumbnail. Every
// successful write registers a compensating delete with the saga.
func (s *Service) saveBlobs(ctx context.Context, sg *saga.Saga, key string, result *imaging.Result) (url string, thumbKey *string, thumbURL *string, err error) {
	url, err = s.storage.Save(ctx, key, result.Data, result.MimeType)
	if err != nil {
		metrics.RecordStorageOperation("save", "error")
		return "", nil, nil, err
	}
	metrics.RecordStorageOperation("save", "success")
	sg.Push("delete blob "+key, func(ctx context.Context) error {
		return s.storage.Delete(ctx, key)
	})

	if result.Thumbnail == nil {
		return url, nil, nil, nil
	}

	tk := filekey.Thumbnail(key)
	tu, saveErr := s.storage.Save(ctx, tk, result.Thumbnail, "image/jpeg")
	if saveErr != nil {
		// The upload proceeds without a thumbnail.
		metrics.RecordStorageOperation("save", "error")
		s.log.Warn().Err(saveErr).Str("key", tk).Msg("thumbnail write failed, continuing without thumbnail")
		return url, nil, nil, nil
	}
	metrics.RecordStorageOperation("save", "success")
	sg.Push("delete blob "+tk, func(ctx context.Context) error {
		return s.storage.Delete(ctx, tk)
	})
	return url, &tk, &tu, nil
}

// UploadBatch stores many files with bounded concurrency. Each file stands
// alone: a failed file lands in the report, the rest continue. The returned
// error is reserved for whole-batch rejections.
func (s *Service) UploadBatch(ctx context.Context, req BatchRequest) (*BatchReport, error) {
	if err := s.validator.ValidateType(ctx, req.DeclaredType); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateBatch(ctx, req.Parts); err != nil {
		return nil, err
	}

	batchCtx, cancel := context.WithTimeout(ctx, s.cfg.BatchTimeout)
	defer cancel()

	report := &BatchReport{}
	for _, r := range req.Rejected {
		report.Failed = append(report.Failed, BatchFailure{Name: r.Name, Err: r.Err})
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.cfg.UploadConcurrency)

	for _, part := range req.Parts {
		part := part
		g.Go(func() error {
			stored, err := s.Upload(batchCtx, UploadRequest{
				ProjectID:    req.ProjectID,
				DeclaredType: req.DeclaredType,
				Part:         part,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.log.Warn().Err(err).Str("file", part.OriginalName).Msg("batch file failed")
				report.Failed = append(report.Failed, BatchFailure{Name: part.OriginalName, Err: err})
				return nil
			}
			report.Succeeded = append(report.Succeeded, stored)
			return nil
		})
	}
	_ = g.Wait()

	return report, nil
}

// Replace updates a stored file. The new blob is written before the
// metadata transaction; the old blob is deleted only after the transaction
// commits, so a failure at any point leaves the previous version intact.
func (s *Service) Replace(ctx context.Context, req ReplaceRequest) (*StoredFile, error) {
	existing, err := s.repo.GetByID(ctx, req.ProjectID, req.FileID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateTypeUnchanged(ctx, existing.Type, req.DeclaredType); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateTranslations(ctx, existing.Type, req.Metadata); err != nil {
		return nil, err
	}

	updated := *existing
	oldKeys := []string{}
	sg := saga.New(s.log)

	if req.Part != nil && req.Part.Source != nil {
		if err := s.validator.ValidatePart(ctx, existing.Type, *req.Part); err != nil {
			return nil, err
		}
		data, err := upload.Consume(ctx, req.Part.Source, s.cfg.MaxFileBytes)
		if err != nil {
			return nil, err
		}

		mimeType := upload.EffectiveMimeType(req.Part.MimeType, data)
		transcodeCtx, cancel := context.WithTimeout(ctx, s.cfg.TranscodeTimeout)
		defer cancel()
		result, err := s.transcoder.Transcode(transcodeCtx, existing.Type, mimeType, data)
		if err != nil {
			return nil, err
		}

		key := filekey.New(req.ProjectID, req.Part.OriginalName, extFor(result.MimeType, req.Part.OriginalName))
		url, thumbKey, thumbURL, err := s.saveBlobs(ctx, sg, key, result)
		if err != nil {
			s.rollback(ctx, sg)
			return nil, err
		}

		oldKeys = append(oldKeys, existing.StorageKey)
		if existing.ThumbnailKey != nil {
			oldKeys = append(oldKeys, *existing.ThumbnailKey)
		}

		updated.OriginalName = req.Part.OriginalName
		updated.StorageKey = key
		updated.ThumbnailKey = thumbKey
		updated.MimeType = result.MimeType
		updated.Bytes = int64(len(result.Data))
		updated.URL = url
		updated.ThumbnailURL = thumbURL
	}

	var translations map[string]upload.Translation
	replaceTranslations := false
	if req.Metadata != nil {
		translations = req.Metadata.Translations
		replaceTranslations = true
	}

	result, err := s.repo.Update(ctx, &updated, translations, replaceTranslations)
	if err != nil {
		s.rollback(ctx, sg)
		return nil, err
	}
	sg.Commit()

	s.deleteBlobs(ctx, oldKeys)

	result.URL = s.storage.URL(result.StorageKey)
	if result.ThumbnailKey != nil {
		u := s.storage.URL(*result.ThumbnailKey)
		result.ThumbnailURL = &u
	}
	return result, nil
}

// Get returns one file with translations and resolved URLs.
func (s *Service) Get(ctx context.Context, projectID, id string) (*StoredFile, error) {
	f, err := s.repo.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	s.resolveURLs(f)
	return f, nil
}

// List returns a page of files plus the total row count for the query.
func (s *Service) List(ctx context.Context, q ListQuery) ([]*StoredFile, int64, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for _, f := range items {
		s.resolveURLs(f)
	}
	return items, total, nil
}

// Dropdown returns the reduced picker listing.
func (s *Service) Dropdown(ctx context.Context, projectID string) ([]DropdownItem, error) {
	return s.repo.Dropdown(ctx, projectID)
}

// Delete removes the metadata row first, then the blobs. A blob that
// refuses to delete is logged and left for out-of-band cleanup; the row is
// already gone, so the file no longer exists as far as clients can tell.
func (s *Service) Delete(ctx context.Context, projectID, id string) error {
	deleted, err := s.repo.Delete(ctx, projectID, id)
	if err != nil {
		return err
	}

	keys := []string{deleted.StorageKey}
	if deleted.ThumbnailKey != nil {
		keys = append(keys, *deleted.ThumbnailKey)
	}
	s.deleteBlobs(ctx, keys)
	return nil
}

// DeleteMany removes a set of files owned by the project.
func (s *Service) DeleteMany(ctx context.Context, projectID string, ids []string) error {
	if len(ids) == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "no file ids given", nil,
			"6a1d93f7-28c4-4b05-9fe2-c70b84d15a36")
	}

	deleted, err := s.repo.DeleteMany(ctx, projectID, ids)
	if err != nil {
		return err
	}

	var keys []string
	for _, f := range deleted {
		keys = append(keys, f.StorageKey)
		if f.ThumbnailKey != nil {
			keys = append(keys, *f.ThumbnailKey)
		}
	}
	s.deleteBlobs(ctx, keys)
	return nil
}

// rollback undoes partial blob writes after a failed upload.
func (s *Service) rollback(ctx context.Context, sg *saga.Saga) {
	if sg.Len() == 0 {
		return
	}
	metrics.RecordCompensation()
	sg.Compensate(ctx)
}

func (s *Service) deleteBlobs(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			metrics.RecordStorageOperation("delete", "error")
			s.log.Error().Err(err).Str("key", key).Msg("blob delete failed, orphaned object left behind")
			continue
		}
		metrics.RecordStorageOperation("delete", "success")
	}
}

func (s *Service) resolveURLs(f *StoredFile) {
	f.URL = s.storage.URL(f.StorageKey)
	if f.ThumbnailKey != nil {
		u := s.storage.URL(*f.ThumbnailKey)
		f.ThumbnailURL = &u
	}
}

// extFor picks the stored extension: transcoded JPEG output dictates .jpg,
// everything else keeps the submitted name's extension.
func extFor(outputMime, originalName string) string {
	if outputMime == "image/jpeg" {
		return ".jpg"
	}
	return path.Ext(originalName)
}
