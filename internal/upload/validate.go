package upload

import (
	"context"
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"atlas-cms/internal/utils/platformerrors"
)

// Declared content types accepted by the API.
const (
	TypeImage = "image"
	TypeAudio = "audio"
	TypeVideo = "video"
	TypeModel = "model"
)

// MimeSVG is exempt from raster transcoding; detection is by the declared
// MIME type, never by sniffing the payload.
const MimeSVG = "image/svg+xml"

// Limits are the acceptance ceilings enforced before any processing begins.
type Limits struct {
	MaxFileBytes  int64
	MaxBatchBytes int64
	MaxFiles      int
	ImageMIMEs    []string
	AudioMIMEs    []string
}

// Validator applies the per-type acceptance rules. Pure decision logic; no
// side effects.
type Validator struct {
	limits Limits
	image  map[string]bool
	audio  map[string]bool
}

func NewValidator(limits Limits) *Validator {
	v := &Validator{
		limits: limits,
		image:  make(map[string]bool, len(limits.ImageMIMEs)),
		audio:  make(map[string]bool, len(limits.AudioMIMEs)),
	}
	for _, m := range limits.ImageMIMEs {
		v.image[m] = true
	}
	for _, m := range limits.AudioMIMEs {
		v.audio[m] = true
	}
	return v
}

// Limits returns the configured ceilings.
func (v *Validator) Limits() Limits {
	return v.limits
}

// ValidateType checks the declared file type.
func (v *Validator) ValidateType(ctx context.Context, declaredType string) error {
	switch declaredType {
	case TypeImage, TypeAudio, TypeVideo, TypeModel:
		return nil
	default:
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown file type %q", declaredType), nil,
			"8e61d4a2-0f97-4c35-b8d0-39a5c27e61f4")
	}
}

// ValidatePart decides accept/reject for one file against the declared type.
func (v *Validator) ValidatePart(ctx context.Context, declaredType string, part RawFilePart) error {
	switch declaredType {
	case TypeImage:
		if !v.image[part.MimeType] {
			return unsupportedMedia(ctx, declaredType, part.MimeType)
		}
	case TypeAudio:
		if !v.audio[part.MimeType] {
			return unsupportedMedia(ctx, declaredType, part.MimeType)
		}
	}
	if v.limits.MaxFileBytes > 0 && part.Size > v.limits.MaxFileBytes {
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypePayloadTooLarge, "file exceeds the per-file size limit", nil,
			"d09b36f5-71ae-4c82-95d3-6e0c48a17fb2",
			map[string]any{"size": part.Size, "limit": v.limits.MaxFileBytes})
	}
	return nil
}

// ValidateBatch enforces the batch-level ceilings over already-decoded parts.
func (v *Validator) ValidateBatch(ctx context.Context, parts []RawFilePart) error {
	if v.limits.MaxFiles > 0 && len(parts) > v.limits.MaxFiles {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypePayloadTooLarge,
			fmt.Sprintf("batch exceeds the maximum of %d files", v.limits.MaxFiles), nil,
			"41f8a2c7-6d90-4be3-8a15-72d4f09c58e1")
	}
	var total int64
	for _, p := range parts {
		total += p.Size
	}
	if v.limits.MaxBatchBytes > 0 && total > v.limits.MaxBatchBytes {
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypePayloadTooLarge, "batch exceeds the cumulative size limit", nil,
			"9c25e80b-4f71-4da6-b3c8-07a9d61e24f5",
			map[string]any{"size": total, "limit": v.limits.MaxBatchBytes})
	}
	return nil
}

// ValidateTranslations enforces cross-field rules between the declared type
// and the submitted metadata. Audio is monolingual content: at most one
// translation entry.
func (v *Validator) ValidateTranslations(ctx context.Context, declaredType string, meta *Metadata) error {
	if meta == nil {
		return nil
	}
	if declaredType == TypeAudio && len(meta.Translations) > 1 {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"audio files accept at most one translation", nil,
			"eb4d07a9-3c16-4f82-95e0-21d8b6a40c73")
	}
	return nil
}

// ValidateTypeUnchanged rejects update requests that try to change a stored
// file's type. Runs before any upload work starts.
func (v *Validator) ValidateTypeUnchanged(ctx context.Context, existingType, requestedType string) error {
	if requestedType == "" || requestedType == existingType {
		return nil
	}
	return platformerrors.NewError(ctx, platformerrors.LayerDomain,
		platformerrors.ErrorTypeValidation,
		fmt.Sprintf("file type is immutable: cannot change %q to %q", existingType, requestedType), nil,
		"56a3f1d8-90cb-4e27-81f6-4d20c7b95ae3")
}

// EffectiveMimeType returns the declared MIME type, falling back to content
// sniffing when a client sent none.
func EffectiveMimeType(declared string, data []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(data).String()
}

func unsupportedMedia(ctx context.Context, declaredType, mime string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain,
		platformerrors.ErrorTypeUnsupportedMedia,
		fmt.Sprintf("%s uploads do not accept %s", declaredType, mime), nil,
		"30d96c5e-8a42-4f17-b09d-65e3a81c47d0")
}
