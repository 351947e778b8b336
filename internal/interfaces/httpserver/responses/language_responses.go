package responses

import domain "atlas-cms/internal/domain/language"

// LanguageResponse is one locale enabled for the project.
type LanguageResponse struct {
	ID     string `json:"id"`
	Locale string `json:"locale"`
	Name   string `json:"name"`
}

// BuildLanguageListResponse maps the project's languages.
func BuildLanguageListResponse(langs []domain.Language) []LanguageResponse {
	resp := make([]LanguageResponse, 0, len(langs))
	for _, l := range langs {
		resp = append(resp, LanguageResponse{
			ID:     l.ID,
			Locale: l.Locale,
			Name:   l.Name,
		})
	}
	return resp
}
