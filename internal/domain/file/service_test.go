package file_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"atlas-cms/internal/config"
	"atlas-cms/internal/domain/file"
	"atlas-cms/internal/imaging"
	"atlas-cms/internal/upload"
	"atlas-cms/internal/utils/platformerrors"
)

type mockRepository struct {
	InsertFunc     func(ctx context.Context, f *file.StoredFile, translations map[string]upload.Translation) (*file.StoredFile, error)
	UpdateFunc     func(ctx context.Context, f *file.StoredFile, translations map[string]upload.Translation, replaceTranslations bool) (*file.StoredFile, error)
	GetByIDFunc    func(ctx context.Context, projectID, id string) (*file.StoredFile, error)
	ListFunc       func(ctx context.Context, q file.ListQuery) ([]*file.StoredFile, int64, error)
	DropdownFunc   func(ctx context.Context, projectID string) ([]file.DropdownItem, error)
	DeleteFunc     func(ctx context.Context, projectID, id string) (*file.StoredFile, error)
	DeleteManyFunc func(ctx context.Context, projectID string, ids []string) ([]*file.StoredFile, error)
}

func (m *mockRepository) Insert(ctx context.Context, f *file.StoredFile, translations map[string]upload.Translation) (*file.StoredFile, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, f, translations)
	}
	return f, nil
}

func (m *mockRepository) Update(ctx context.Context, f *file.StoredFile, translations map[string]upload.Translation, replaceTranslations bool) (*file.StoredFile, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, f, translations, replaceTranslations)
	}
	return f, nil
}

func (m *mockRepository) GetByID(ctx context.Context, projectID, id string) (*file.StoredFile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, projectID, id)
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "file not found", nil,
		"3f18c2a5-70dc-4b96-8e41-d25a09c7f183")
}

func (m *mockRepository) List(ctx context.Context, q file.ListQuery) ([]*file.StoredFile, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return nil, 0, nil
}

func (m *mockRepository) Dropdown(ctx context.Context, projectID string) ([]file.DropdownItem, error) {
	if m.DropdownFunc != nil {
		return m.DropdownFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockRepository) Delete(ctx context.Context, projectID, id string) (*file.StoredFile, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, projectID, id)
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "file not found", nil,
		"5de07a31-c846-4f29-91b5-8a2f60c13d97")
}

func (m *mockRepository) DeleteMany(ctx context.Context, projectID string, ids []string) ([]*file.StoredFile, error) {
	if m.DeleteManyFunc != nil {
		return m.DeleteManyFunc(ctx, projectID, ids)
	}
	return nil, nil
}

// fakeStorage records every call; safe for concurrent batch workers.
type fakeStorage struct {
	mu       sync.Mutex
	saved    map[string][]byte
	deleted  []string
	SaveFunc func(key string, data []byte) error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string][]byte)}
}

func (f *fakeStorage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveFunc != nil {
		if err := f.SaveFunc(key, data); err != nil {
			return "", err
		}
	}
	f.saved[key] = data
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	delete(f.saved, key)
	return nil
}

func (f *fakeStorage) URL(key string) string {
	return "https://cdn.test/" + key
}

func (f *fakeStorage) savedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.saved))
	for k := range f.saved {
		keys = append(keys, k)
	}
	return keys
}

// passthroughTranscoder returns the payload unchanged, optionally attaching a
// canned thumbnail for images.
type passthroughTranscoder struct {
	thumbnail []byte
	err       error
}

func (p *passthroughTranscoder) Transcode(ctx context.Context, declaredType, mimeType string, data []byte) (*imaging.Result, error) {
	if p.err != nil {
		return nil, p.err
	}
	res := &imaging.Result{Data: data, MimeType: mimeType}
	if declaredType == upload.TypeImage && mimeType != upload.MimeSVG {
		res.MimeType = "image/jpeg"
		res.Thumbnail = p.thumbnail
	}
	return res, nil
}

func testConfig() *config.Config {
	return &config.Config{
		MaxFileBytes:      10 << 20,
		MaxBatchBytes:     100 << 20,
		MaxFilesPerBatch:  50,
		AllowedImageTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp", upload.MimeSVG},
		AllowedAudioTypes: []string{"audio/mpeg"},
		UploadConcurrency: 2,
		BatchTimeout:      time.Minute,
		TranscodeTimeout:  5 * time.Second,
	}
}

func bufferedPart(name, mimeType string, data []byte) upload.RawFilePart {
	return upload.RawFilePart{
		FieldName:    "file",
		OriginalName: name,
		MimeType:     mimeType,
		Size:         int64(len(data)),
		Source:       &upload.Buffered{Data: data},
	}
}

func newTestService(repo *mockRepository, store *fakeStorage, tc file.Transcoder) *file.Service {
	return file.NewService(testConfig(), repo, store, tc, zerolog.Nop())
}

func TestUpload_StoresBlobAndMetadata(t *testing.T) {
	store := newFakeStorage()
	var inserted *file.StoredFile
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, f *file.StoredFile, translations map[string]upload.Translation) (*file.StoredFile, error) {
			inserted = f
			return f, nil
		},
	}
	svc := newTestService(repo, store, &passthroughTranscoder{thumbnail: []byte("thumb")})

	stored, err := svc.Upload(context.Background(), file.UploadRequest{
		ProjectID:    "p1",
		DeclaredType: upload.TypeImage,
		Part:         bufferedPart("cover.png", "image/png", []byte("payload")),
		Metadata:     &upload.Metadata{Translations: map[string]upload.Translation{"en": {Title: "Cover"}}},
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if inserted == nil {
		t.Fatal("repository Insert was not called")
	}
	if !strings.HasPrefix(stored.StorageKey, "project-p1/") {
		t.Errorf("StorageKey = %q, want project-p1/ prefix", stored.StorageKey)
	}
	if !strings.HasSuffix(stored.StorageKey, ".jpg") {
		t.Errorf("StorageKey = %q, want .jpg extension after transcoding", stored.StorageKey)
	}
	if stored.MimeType != "image/jpeg" {
		t.Errorf("MimeType = %q, want image/jpeg", stored.MimeType)
	}
	if stored.ThumbnailKey == nil {
		t.Fatal("ThumbnailKey is nil, want thumbnail stored")
	}
	if stored.URL == "" || stored.ThumbnailURL == nil {
		t.Error("resolved URLs missing")
	}

	keys := store.savedKeys()
	if len(keys) != 2 {
		t.Errorf("stored %d blobs, want 2 (main + thumbnail): %v", len(keys), keys)
	}
	if len(store.deleted) != 0 {
		t.Errorf("unexpected deletes on success: %v", store.deleted)
	}
}

func TestUpload_RejectsUnsupportedMime(t *testing.T) {
	store := newFakeStorage()
	svc := newTestService(&mockRepository{}, store, &passthroughTranscoder{})

	_, err := svc.Upload(context.Background(), file.UploadRequest{
		ProjectID:    "p1",
		DeclaredType: upload.TypeImage,
		Part:         bufferedPart("scan.tiff", "image/tiff", []byte("x")),
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnsupportedMedia) {
		t.Fatalf("error = %v, want UNSUPPORTED_MEDIA_TYPE", err)
	}
	if len(store.savedKeys()) != 0 {
		t.Error("blob written for a rejected file")
	}
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	store := newFakeStorage()
	svc := newTestService(&mockRepository{}, store, &passthroughTranscoder{})

	part := bufferedPart("big.png", "image/png", []byte("x"))
	part.Size = 11 << 20

	_, err := svc.Upload(context.Background(), file.UploadRequest{
		ProjectID:    "p1",
		DeclaredType: upload.TypeImage,
		Part:         part,
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypePayloadTooLarge) {
		t.Fatalf("error = %v, want PAYLOAD_TOO_LARGE", err)
	}
}

func TestUpload_RejectsAudioWithMultipleTranslations(t *testing.T) {
	svc := newTestService(&mockRepository{}, newFakeStorage(), &passthroughTranscoder{})

	_, err := svc.Upload(context.Background(), file.UploadRequest{
		ProjectID:    "p1",
		DeclaredType: upload.TypeAudio,
		Part:         bufferedPart("song.mp3", "audio/mpeg", []byte("x")),
		Metadata: &upload.Metadata{Translations: map[string]upload.Translation{
			"en": {Title: "Song"},
			"de": {Title: "Lied"},
		}},
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("error = %v, want VALIDATION", err)
	}
}

func TestUpload_CompensatesBlobsWhenInsertFails(t *testing.T) {
	store := newFakeStorage()
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, f *file.StoredFile, translations map[string]upload.Translation) (*file.StoredFile, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeLanguageNotFound, "unknown locale xx", nil,
				"b1c94d06-27ae-4f83-9650-3d8a15c7e029")
		},
	}
	svc := newTestService(repo, store, &passthroughTranscoder{thumbnail: []byte("thumb")})

	_, err := svc.Upload(context.Background(), file.UploadRequest{
		ProjectID:    "p1",
		DeclaredType: upload.TypeImage,
		Part:         bufferedPart("cover.png", "image/png", []byte("payload")),
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeLanguageNotFound) {
		t.Fatalf("error = %v, want LANGUAGE_NOT_FOUND", err)
	}

	if len(store.savedKeys()) != 0 {
		t.Errorf("blobs left behind after failed insert: %v", store.savedKeys())
	}
	if len(store.deleted) != 2 {
		t.Errorf("compensated %d blobs, want 2 (main + thumbnail): %v", len(store.deleted), store.deleted)
	}
}

func TestUpload_ThumbnailWriteFailureIsNonFatal(t *testing.T) {
	store := newFakeStorage()
	store.SaveFunc = func(key string, data []byte) error {
		if strings.Contains(key, "thumb_") {
			return platformerrors.NewError(context.Background(), platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeStorageWrite, "s3 write failed", nil,
				"0d73e1a9-56cb-4f48-82d0-97b5c4a216fe")
		}
		return nil
	}
	svc := newTestService(&mockRepository{}, store, &passthroughTranscoder{thumbnail: []byte("thumb")})

	stored, err := svc.Upload(context.Background(), file.UploadRequest{
		ProjectID:    "p1",
		DeclaredType: upload.TypeImage,
		Part:         bufferedPart("cover.png", "image/png", []byte("payload")),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if stored.ThumbnailKey != nil {
		t.Error("ThumbnailKey set although the thumbnail write failed")
	}
	if stored.ThumbnailURL != nil {
		t.Error("ThumbnailURL set although the thumbnail write failed")
	}
	if len(store.savedKeys()) != 1 {
		t.Errorf("stored %d blobs, want 1", len(store.savedKeys()))
	}
}

func TestUpload_StorageFailurePropagates(t *testing.T) {
	store := newFakeStorage()
	store.SaveFunc = func(key string, data []byte) error {
		return platformerrors.NewError(context.Background(), platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeStorageWrite, "s3 write failed", nil,
			"ea50d182-c793-4b06-95f4-3a8d61c20b7e")
	}
	insertCalled := false
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, f *file.StoredFile, translations map[string]upload.Translation) (*file.StoredFile, error) {
			insertCalled = true
			return f, nil
		},
	}
	svc := newTestService(repo, store, &passthroughTranscoder{})

	_, err := svc.Upload(context.Background(), file.UploadRequest{
		ProjectID:    "p1",
		DeclaredType: upload.TypeImage,
		Part:         bufferedPart("cover.png", "image/png", []byte("payload")),
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeStorageWrite) {
		t.Fatalf("error = %v, want STORAGE_WRITE_FAILED", err)
	}
	if insertCalled {
		t.Error("metadata row written although the blob write failed")
	}
}

func TestUploadBatch_PartialFailure(t *testing.T) {
	store := newFakeStorage()
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, f *file.StoredFile, translations map[string]upload.Translation) (*file.StoredFile, error) {
			if f.OriginalName == "broken.png" {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
					platformerrors.ErrorTypeDatabaseError, "insert failed", nil,
					"7c04958d-a3f6-4e21-b870-d19e5c2a64f3")
			}
			return f, nil
		},
	}
	svc := newTestService(repo, store, &passthroughTranscoder{})

	report, err := svc.UploadBatch(context.Background(), file.BatchRequest{
		ProjectID:    "p1",
		DeclaredType: upload.TypeImage,
		Parts: []upload.RawFilePart{
			bufferedPart("ok-1.png", "image/png", []byte("a")),
			bufferedPart("broken.png", "image/png", []byte("b")),
			bufferedPart("ok-2.png", "image/png", []byte("c")),
		},
	})
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}

	if len(report.Succeeded) != 2 {
		t.Errorf("succeeded = %d, want 2", len(report.Succeeded))
	}
	if len(report.Failed) != 1 || report.Failed[0].Name != "broken.png" {
		t.Errorf("failed = %+v, want broken.png", report.Failed)
	}
	// The failed file's blob must have been compensated away.
	for _, key := range store.savedKeys() {
		if strings.Contains(key, "broken") {
			t.Errorf("orphaned blob for failed file: %s", key)
		}
	}
}

func TestUploadBatch_DistinctKeysForIdenticalNames(t *testing.T) {
	store := newFakeStorage()
	svc := newTestService(&mockRepository{}, store, &passthroughTranscoder{})

	report, err := svc.UploadBatch(context.Background(), file.BatchRequest{
		ProjectID:    "p1",
		DeclaredType: upload.TypeImage,
		Parts: []upload.RawFilePart{
			bufferedPart("photo.png", "image/png", []byte("a")),
			bufferedPart("photo.png", "image/png", []byte("b")),
			bufferedPart("photo.png", "image/png", []byte("c")),
		},
	})
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}
	if len(report.Succeeded) != 3 {
		t.Fatalf("succeeded = %d, want 3", len(report.Succeeded))
	}

	seen := make(map[string]struct{})
	for _, f := range report.Succeeded {
		if _, dup := seen[f.StorageKey]; dup {
			t.Fatalf("duplicate storage key: %s", f.StorageKey)
		}
		seen[f.StorageKey] = struct{}{}
	}
}

func TestUploadBatch_RejectsWholeBatchOverFileCount(t *testing.T) {
	cfg := testConfig()
	cfg.MaxFilesPerBatch = 2
	svc := file.NewService(cfg, &mockRepository{}, newFakeStorage(), &passthroughTranscoder{}, zerolog.Nop())

	_, err := svc.UploadBatch(context.Background(), file.BatchRequest{
		ProjectID:    "p1",
		DeclaredType: upload.TypeImage,
		Parts: []upload.RawFilePart{
			bufferedPart("a.png", "image/png", []byte("a")),
			bufferedPart("b.png", "image/png", []byte("b")),
			bufferedPart("c.png", "image/png", []byte("c")),
		},
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypePayloadTooLarge) {
		t.Fatalf("error = %v, want PAYLOAD_TOO_LARGE", err)
	}
}

func TestUploadBatch_CarriesDecoderRejections(t *testing.T) {
	svc := newTestService(&mockRepository{}, newFakeStorage(), &passthroughTranscoder{})

	rejErr := platformerrors.NewError(context.Background(), platformerrors.LayerHandler,
		platformerrors.ErrorTypePayloadTooLarge, "file exceeds the per-file size limit", nil,
		"48c7f9a2-0e51-4dbc-b386-72a9d05e13c4")

	report, err := svc.UploadBatch(context.Background(), file.BatchRequest{
		ProjectID:    "p1",
		DeclaredType: upload.TypeImage,
		Parts:        []upload.RawFilePart{bufferedPart("ok.png", "image/png", []byte("a"))},
		Rejected:     []upload.RejectedPart{{Name: "huge.png", Err: rejErr}},
	})
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}
	if len(report.Succeeded) != 1 {
		t.Errorf("succeeded = %d, want 1", len(report.Succeeded))
	}
	if len(report.Failed) != 1 || report.Failed[0].Name != "huge.png" {
		t.Errorf("failed = %+v, want huge.png", report.Failed)
	}
}

func TestReplace_TypeIsImmutable(t *testing.T) {
	existing := &file.StoredFile{
		ID: "f1", ProjectID: "p1", Type: upload.TypeImage,
		StorageKey: "project-p1/old_cover.jpg",
	}
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, projectID, id string) (*file.StoredFile, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo, newFakeStorage(), &passthroughTranscoder{})

	_, err := svc.Replace(context.Background(), file.ReplaceRequest{
		ProjectID:    "p1",
		FileID:       "f1",
		DeclaredType: upload.TypeAudio,
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("error = %v, want VALIDATION", err)
	}
}

func TestReplace_NewBlobSwapsOldAfterCommit(t *testing.T) {
	oldThumb := "project-p1/thumb_old_cover.jpg"
	existing := &file.StoredFile{
		ID: "f1", ProjectID: "p1", Type: upload.TypeImage,
		OriginalName: "old.png",
		StorageKey:   "project-p1/old_cover.jpg",
		ThumbnailKey: &oldThumb,
		MimeType:     "image/jpeg",
	}
	store := newFakeStorage()
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, projectID, id string) (*file.StoredFile, error) {
			cp := *existing
			return &cp, nil
		},
	}
	svc := newTestService(repo, store, &passthroughTranscoder{thumbnail: []byte("thumb")})

	part := bufferedPart("new.png", "image/png", []byte("new-payload"))
	updated, err := svc.Replace(context.Background(), file.ReplaceRequest{
		ProjectID: "p1",
		FileID:    "f1",
		Part:      &part,
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if updated.StorageKey == existing.StorageKey {
		t.Error("storage key unchanged after payload replacement")
	}
	wantDeleted := map[string]bool{existing.StorageKey: true, oldThumb: true}
	if len(store.deleted) != 2 || !wantDeleted[store.deleted[0]] || !wantDeleted[store.deleted[1]] {
		t.Errorf("deleted = %v, want old main + old thumbnail", store.deleted)
	}
}

func TestReplace_UpdateFailureRollsBackNewBlobs(t *testing.T) {
	existing := &file.StoredFile{
		ID: "f1", ProjectID: "p1", Type: upload.TypeImage,
		StorageKey: "project-p1/old_cover.jpg",
	}
	store := newFakeStorage()
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, projectID, id string) (*file.StoredFile, error) {
			cp := *existing
			return &cp, nil
		},
		UpdateFunc: func(ctx context.Context, f *file.StoredFile, translations map[string]upload.Translation, replaceTranslations bool) (*file.StoredFile, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeTransaction, "update failed", nil,
				"16b3e8d0-942c-4af7-85d1-c60f29a7b458")
		},
	}
	svc := newTestService(repo, store, &passthroughTranscoder{})

	part := bufferedPart("new.png", "image/png", []byte("new-payload"))
	_, err := svc.Replace(context.Background(), file.ReplaceRequest{
		ProjectID: "p1",
		FileID:    "f1",
		Part:      &part,
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeTransaction) {
		t.Fatalf("error = %v, want TRANSACTION_FAILED", err)
	}

	if len(store.savedKeys()) != 0 {
		t.Errorf("new blobs left behind after failed update: %v", store.savedKeys())
	}
	for _, key := range store.deleted {
		if key == existing.StorageKey {
			t.Error("old blob deleted although the update failed")
		}
	}
}

func TestReplace_MetadataOnlyTouchesNoBlobs(t *testing.T) {
	existing := &file.StoredFile{
		ID: "f1", ProjectID: "p1", Type: upload.TypeImage,
		StorageKey: "project-p1/old_cover.jpg",
	}
	store := newFakeStorage()
	var gotReplace bool
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, projectID, id string) (*file.StoredFile, error) {
			cp := *existing
			return &cp, nil
		},
		UpdateFunc: func(ctx context.Context, f *file.StoredFile, translations map[string]upload.Translation, replaceTranslations bool) (*file.StoredFile, error) {
			gotReplace = replaceTranslations
			return f, nil
		},
	}
	svc := newTestService(repo, store, &passthroughTranscoder{})

	_, err := svc.Replace(context.Background(), file.ReplaceRequest{
		ProjectID: "p1",
		FileID:    "f1",
		Metadata:  &upload.Metadata{Translations: map[string]upload.Translation{"en": {Title: "New title"}}},
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !gotReplace {
		t.Error("replaceTranslations = false, want true when metadata is submitted")
	}
	if len(store.savedKeys()) != 0 || len(store.deleted) != 0 {
		t.Error("metadata-only update touched blob storage")
	}
}

func TestDelete_RemovesRowThenBlobs(t *testing.T) {
	thumb := "project-p1/thumb_key.jpg"
	store := newFakeStorage()
	repo := &mockRepository{
		DeleteFunc: func(ctx context.Context, projectID, id string) (*file.StoredFile, error) {
			return &file.StoredFile{
				ID: id, ProjectID: projectID,
				StorageKey:   "project-p1/key.jpg",
				ThumbnailKey: &thumb,
			}, nil
		},
	}
	svc := newTestService(repo, store, &passthroughTranscoder{})

	if err := svc.Delete(context.Background(), "p1", "f1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.deleted) != 2 {
		t.Errorf("deleted %d blobs, want 2: %v", len(store.deleted), store.deleted)
	}
}

func TestDeleteMany_RequiresIDs(t *testing.T) {
	svc := newTestService(&mockRepository{}, newFakeStorage(), &passthroughTranscoder{})

	err := svc.DeleteMany(context.Background(), "p1", nil)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("error = %v, want VALIDATION", err)
	}
}

func TestGet_ResolvesURLs(t *testing.T) {
	thumb := "project-p1/thumb_key.jpg"
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, projectID, id string) (*file.StoredFile, error) {
			return &file.StoredFile{
				ID: id, ProjectID: projectID,
				StorageKey:   "project-p1/key.jpg",
				ThumbnailKey: &thumb,
			}, nil
		},
	}
	svc := newTestService(repo, newFakeStorage(), &passthroughTranscoder{})

	f, err := svc.Get(context.Background(), "p1", "f1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if f.URL != "https://cdn.test/project-p1/key.jpg" {
		t.Errorf("URL = %q", f.URL)
	}
	if f.ThumbnailURL == nil || *f.ThumbnailURL != "https://cdn.test/"+thumb {
		t.Errorf("ThumbnailURL = %v", f.ThumbnailURL)
	}
}
