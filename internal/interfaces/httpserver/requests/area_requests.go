package requests

import (
	domain "atlas-cms/internal/domain/area"
)

// AreaTranslationRequest is one localized caption set.
type AreaTranslationRequest struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}

// CreateAreaRequest is the body of POST /v1/areas.
type CreateAreaRequest struct {
	ParentID     *string                           `json:"parentId"`
	Weight       int                               `json:"weight"`
	Translations map[string]AreaTranslationRequest `json:"translations"`
	FileIDs      []string                          `json:"fileIds"`
}

// ToDomain converts the request to the domain model.
func (r *CreateAreaRequest) ToDomain(projectID string) domain.CreateRequest {
	return domain.CreateRequest{
		ProjectID:    projectID,
		ParentID:     r.ParentID,
		Weight:       r.Weight,
		Translations: toDomainTranslations(r.Translations),
		FileIDs:      r.FileIDs,
	}
}

// UpdateAreaRequest is the body of PUT /v1/areas/:id. Nil fields are left
// untouched.
type UpdateAreaRequest struct {
	ParentID     *string                           `json:"parentId"`
	Weight       *int                              `json:"weight"`
	Translations map[string]AreaTranslationRequest `json:"translations"`
	FileIDs      *[]string                         `json:"fileIds"`
}

// ToDomain converts the request to the domain model.
func (r *UpdateAreaRequest) ToDomain(projectID, areaID string) domain.UpdateRequest {
	req := domain.UpdateRequest{
		ProjectID: projectID,
		AreaID:    areaID,
		ParentID:  r.ParentID,
		Weight:    r.Weight,
		FileIDs:   r.FileIDs,
	}
	if r.Translations != nil {
		req.Translations = toDomainTranslations(r.Translations)
	}
	return req
}

func toDomainTranslations(in map[string]AreaTranslationRequest) map[string]domain.Translation {
	if in == nil {
		return nil
	}
	out := make(map[string]domain.Translation, len(in))
	for locale, tr := range in {
		out[locale] = domain.Translation{
			Locale:      locale,
			Title:       tr.Title,
			Subtitle:    tr.Subtitle,
			Description: tr.Description,
		}
	}
	return out
}
