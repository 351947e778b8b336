package handlers

import (
	"github.com/rs/zerolog"

	"atlas-cms/internal/config"
	"atlas-cms/internal/domain/area"
	"atlas-cms/internal/domain/file"
	"atlas-cms/internal/domain/language"
)

// Provider wires HTTP handlers.
type Provider struct {
	Files     *FileHandler
	Areas     *AreaHandler
	Languages *LanguageHandler
}

func NewProvider(cfg *config.Config, files *file.Service, areas *area.Service, languages *language.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Files:     NewFileHandler(cfg, files, log),
		Areas:     NewAreaHandler(areas, log),
		Languages: NewLanguageHandler(languages, log),
	}
}
