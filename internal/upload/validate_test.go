package upload_test

import (
	"context"
	"testing"

	"atlas-cms/internal/upload"
	"atlas-cms/internal/utils/platformerrors"
)

func testValidator() *upload.Validator {
	return upload.NewValidator(upload.Limits{
		MaxFileBytes:  10 << 20,
		MaxBatchBytes: 100 << 20,
		MaxFiles:      50,
		ImageMIMEs:    []string{"image/jpeg", "image/png", "image/gif", "image/webp", upload.MimeSVG},
		AudioMIMEs:    []string{"audio/mpeg"},
	})
}

func TestValidator_ValidateType(t *testing.T) {
	v := testValidator()
	ctx := context.Background()

	for _, typ := range []string{upload.TypeImage, upload.TypeAudio, upload.TypeVideo, upload.TypeModel} {
		if err := v.ValidateType(ctx, typ); err != nil {
			t.Errorf("ValidateType(%q) = %v, want nil", typ, err)
		}
	}

	err := v.ValidateType(ctx, "document")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("ValidateType(document) = %v, want VALIDATION", err)
	}
}

func TestValidator_ValidatePart(t *testing.T) {
	v := testValidator()
	ctx := context.Background()

	tests := []struct {
		name         string
		declaredType string
		part         upload.RawFilePart
		wantErrType  platformerrors.ErrorType
	}{
		{
			name:         "accepted image",
			declaredType: upload.TypeImage,
			part:         upload.RawFilePart{OriginalName: "a.png", MimeType: "image/png", Size: 100},
		},
		{
			name:         "svg accepted as image",
			declaredType: upload.TypeImage,
			part:         upload.RawFilePart{OriginalName: "a.svg", MimeType: upload.MimeSVG, Size: 100},
		},
		{
			name:         "tiff rejected as image",
			declaredType: upload.TypeImage,
			part:         upload.RawFilePart{OriginalName: "a.tiff", MimeType: "image/tiff", Size: 100},
			wantErrType:  platformerrors.ErrorTypeUnsupportedMedia,
		},
		{
			name:         "mp3 accepted as audio",
			declaredType: upload.TypeAudio,
			part:         upload.RawFilePart{OriginalName: "a.mp3", MimeType: "audio/mpeg", Size: 100},
		},
		{
			name:         "wav rejected as audio",
			declaredType: upload.TypeAudio,
			part:         upload.RawFilePart{OriginalName: "a.wav", MimeType: "audio/wav", Size: 100},
			wantErrType:  platformerrors.ErrorTypeUnsupportedMedia,
		},
		{
			name:         "video accepts any mime",
			declaredType: upload.TypeVideo,
			part:         upload.RawFilePart{OriginalName: "a.mkv", MimeType: "video/x-matroska", Size: 100},
		},
		{
			name:         "oversized file rejected",
			declaredType: upload.TypeImage,
			part:         upload.RawFilePart{OriginalName: "a.png", MimeType: "image/png", Size: 11 << 20},
			wantErrType:  platformerrors.ErrorTypePayloadTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePart(ctx, tt.declaredType, tt.part)
			if tt.wantErrType == "" {
				if err != nil {
					t.Errorf("ValidatePart = %v, want nil", err)
				}
				return
			}
			if !platformerrors.IsErrorType(err, tt.wantErrType) {
				t.Errorf("ValidatePart = %v, want %s", err, tt.wantErrType)
			}
		})
	}
}

func TestValidator_ValidateBatch(t *testing.T) {
	v := upload.NewValidator(upload.Limits{
		MaxFileBytes:  100,
		MaxBatchBytes: 250,
		MaxFiles:      3,
	})
	ctx := context.Background()

	within := []upload.RawFilePart{{Size: 100}, {Size: 100}}
	if err := v.ValidateBatch(ctx, within); err != nil {
		t.Errorf("ValidateBatch(within limits) = %v, want nil", err)
	}

	tooMany := []upload.RawFilePart{{Size: 1}, {Size: 1}, {Size: 1}, {Size: 1}}
	if err := v.ValidateBatch(ctx, tooMany); !platformerrors.IsErrorType(err, platformerrors.ErrorTypePayloadTooLarge) {
		t.Errorf("ValidateBatch(too many files) = %v, want PAYLOAD_TOO_LARGE", err)
	}

	tooBig := []upload.RawFilePart{{Size: 100}, {Size: 100}, {Size: 100}}
	if err := v.ValidateBatch(ctx, tooBig); !platformerrors.IsErrorType(err, platformerrors.ErrorTypePayloadTooLarge) {
		t.Errorf("ValidateBatch(cumulative size) = %v, want PAYLOAD_TOO_LARGE", err)
	}
}

func TestValidator_ValidateTranslations(t *testing.T) {
	v := testValidator()
	ctx := context.Background()

	multi := &upload.Metadata{Translations: map[string]upload.Translation{
		"en": {Title: "One"},
		"de": {Title: "Eins"},
	}}

	if err := v.ValidateTranslations(ctx, upload.TypeImage, multi); err != nil {
		t.Errorf("image with two translations = %v, want nil", err)
	}
	if err := v.ValidateTranslations(ctx, upload.TypeAudio, multi); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("audio with two translations = %v, want VALIDATION", err)
	}

	single := &upload.Metadata{Translations: map[string]upload.Translation{"en": {Title: "One"}}}
	if err := v.ValidateTranslations(ctx, upload.TypeAudio, single); err != nil {
		t.Errorf("audio with one translation = %v, want nil", err)
	}
	if err := v.ValidateTranslations(ctx, upload.TypeAudio, nil); err != nil {
		t.Errorf("nil metadata = %v, want nil", err)
	}
}

func TestValidator_ValidateTypeUnchanged(t *testing.T) {
	v := testValidator()
	ctx := context.Background()

	if err := v.ValidateTypeUnchanged(ctx, upload.TypeImage, upload.TypeImage); err != nil {
		t.Errorf("same type = %v, want nil", err)
	}
	if err := v.ValidateTypeUnchanged(ctx, upload.TypeImage, ""); err != nil {
		t.Errorf("empty requested type = %v, want nil", err)
	}
	if err := v.ValidateTypeUnchanged(ctx, upload.TypeImage, upload.TypeAudio); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("type change = %v, want VALIDATION", err)
	}
}

func TestEffectiveMimeType(t *testing.T) {
	if got := upload.EffectiveMimeType("image/png", []byte("not-a-png")); got != "image/png" {
		t.Errorf("declared type ignored: got %q", got)
	}

	pngHeader := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if got := upload.EffectiveMimeType("", pngHeader); got != "image/png" {
		t.Errorf("sniffed type = %q, want image/png", got)
	}
	if got := upload.EffectiveMimeType("application/octet-stream", pngHeader); got != "image/png" {
		t.Errorf("octet-stream falls back to sniffing: got %q", got)
	}
}

func TestParseMetadata(t *testing.T) {
	ctx := context.Background()

	meta, err := upload.ParseMetadata(ctx, `{"translations":{"en":{"title":"Cover","subtitle":"s","description":"d"}}}`)
	if err != nil {
		t.Fatalf("ParseMetadata: %v", err)
	}
	tr, ok := meta.Translations["en"]
	if !ok || tr.Title != "Cover" || tr.Subtitle != "s" || tr.Description != "d" {
		t.Errorf("translations = %+v", meta.Translations)
	}

	meta, err = upload.ParseMetadata(ctx, "  ")
	if err != nil {
		t.Fatalf("ParseMetadata(blank): %v", err)
	}
	if len(meta.Translations) != 0 {
		t.Errorf("blank metadata should be empty, got %+v", meta.Translations)
	}

	_, err = upload.ParseMetadata(ctx, "{not json")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("malformed metadata = %v, want VALIDATION", err)
	}
}

func TestConsume_DoubleConsumeFails(t *testing.T) {
	ctx := context.Background()
	src := &upload.Buffered{Data: []byte("payload")}

	if _, err := upload.Consume(ctx, src, 0); err != nil {
		t.Fatalf("first Consume: %v", err)
	}
	if _, err := upload.Consume(ctx, src, 0); err == nil {
		t.Fatal("second Consume succeeded, want error")
	}
}

func TestConsume_BufferedLimit(t *testing.T) {
	ctx := context.Background()
	src := &upload.Buffered{Data: []byte("0123456789")}

	_, err := upload.Consume(ctx, src, 5)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypePayloadTooLarge) {
		t.Errorf("Consume over limit = %v, want PAYLOAD_TOO_LARGE", err)
	}
}
