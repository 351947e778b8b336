package responses

import (
	"time"

	domain "atlas-cms/internal/domain/area"
)

// AreaFileResponse is the reduced shape of a file attached to an area.
type AreaFileResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// AreaResponse is the public shape of an area.
type AreaResponse struct {
	ID           string                `json:"id"`
	ParentID     *string               `json:"parentId,omitempty"`
	Weight       int                   `json:"weight"`
	Translations []TranslationResponse `json:"translations"`
	Files        []AreaFileResponse    `json:"files"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// BuildAreaResponse maps a domain area to its response shape.
func BuildAreaResponse(a *domain.Area) AreaResponse {
	resp := AreaResponse{
		ID:           a.ID,
		ParentID:     a.ParentID,
		Weight:       a.Weight,
		Translations: []TranslationResponse{},
		Files:        []AreaFileResponse{},
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	for _, tr := range a.Translations {
		resp.Translations = append(resp.Translations, TranslationResponse{
			Locale:      tr.Locale,
			Title:       tr.Title,
			Subtitle:    tr.Subtitle,
			Description: tr.Description,
		})
	}
	for _, f := range a.Files {
		resp.Files = append(resp.Files, AreaFileResponse{
			ID:   f.ID,
			Name: f.Name,
			Type: f.Type,
		})
	}
	return resp
}

// AreaListResponse is the paginated listing envelope.
type AreaListResponse struct {
	Items []AreaResponse `json:"items"`
	Pagination
}

// BuildAreaListResponse maps a page of areas.
func BuildAreaListResponse(items []*domain.Area, p Pagination) AreaListResponse {
	resp := AreaListResponse{Items: []AreaResponse{}, Pagination: p}
	for _, a := range items {
		resp.Items = append(resp.Items, BuildAreaResponse(a))
	}
	return resp
}

// AreaDropdownItemResponse is the reduced listing for pickers.
type AreaDropdownItemResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
