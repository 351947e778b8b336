package upload

import (
	"context"
	"encoding/json"
	"strings"

	"atlas-cms/internal/utils/platformerrors"
)

// Translation is the caption set submitted for one locale.
type Translation struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}

// Metadata is the JSON blob accompanying an upload, mapping locale codes to
// translations.
type Metadata struct {
	Translations map[string]Translation `json:"translations"`
}

// ParseMetadata decodes the metadata form field. An empty field yields empty
// metadata; malformed JSON is a validation error.
func ParseMetadata(ctx context.Context, raw string) (*Metadata, error) {
	meta := &Metadata{}
	if strings.TrimSpace(raw) == "" {
		return meta, nil
	}
	if err := json.Unmarshal([]byte(raw), meta); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation, "invalid metadata format", err,
			"2c7f90e4-5ba1-4d68-83c2-f1e6a49d07b5")
	}
	return meta, nil
}
