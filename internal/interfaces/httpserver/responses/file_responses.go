package responses

import (
	"time"

	domain "atlas-cms/internal/domain/file"
	"atlas-cms/internal/utils/platformerrors"
)

// TranslationResponse is one localized caption set.
type TranslationResponse struct {
	Locale      string `json:"locale"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
}

// FileResponse is the public shape of a stored file.
type FileResponse struct {
	ID           string                `json:"id"`
	Type         string                `json:"type"`
	Name         string                `json:"name"`
	MimeType     string                `json:"mimeType"`
	Bytes        int64                 `json:"bytes"`
	URL          string                `json:"url"`
	ThumbnailURL *string               `json:"thumbnailUrl,omitempty"`
	Translations []TranslationResponse `json:"translations"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// BuildFileResponse maps a domain file to its response shape.
func BuildFileResponse(f *domain.StoredFile) FileResponse {
	resp := FileResponse{
		ID:           f.ID,
		Type:         f.Type,
		Name:         f.OriginalName,
		MimeType:     f.MimeType,
		Bytes:        f.Bytes,
		URL:          f.URL,
		ThumbnailURL: f.ThumbnailURL,
		Translations: []TranslationResponse{},
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
	for _, tr := range f.Translations {
		resp.Translations = append(resp.Translations, TranslationResponse{
			Locale:      tr.Locale,
			Title:       tr.Title,
			Subtitle:    tr.Subtitle,
			Description: tr.Description,
		})
	}
	return resp
}

// FileListResponse is the paginated listing envelope.
type FileListResponse struct {
	Items []FileResponse `json:"items"`
	Pagination
}

// BuildFileListResponse maps a page of files.
func BuildFileListResponse(items []*domain.StoredFile, p Pagination) FileListResponse {
	resp := FileListResponse{Items: []FileResponse{}, Pagination: p}
	for _, f := range items {
		resp.Items = append(resp.Items, BuildFileResponse(f))
	}
	return resp
}

// DropdownItemResponse is the reduced listing for pickers.
type DropdownItemResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// BatchFailureResponse names one file that did not make it.
type BatchFailureResponse struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// BatchReportResponse is the outcome of a batch upload. Returned with HTTP
// 200 even when some files failed.
type BatchReportResponse struct {
	Succeeded []FileResponse         `json:"succeeded"`
	Failed    []BatchFailureResponse `json:"failed"`
	Total     int                    `json:"total"`
}

// BuildBatchReportResponse maps a batch report.
func BuildBatchReportResponse(report *domain.BatchReport) BatchReportResponse {
	resp := BatchReportResponse{
		Succeeded: []FileResponse{},
		Failed:    []BatchFailureResponse{},
	}
	for _, f := range report.Succeeded {
		resp.Succeeded = append(resp.Succeeded, BuildFileResponse(f))
	}
	for _, failure := range report.Failed {
		msg := "upload failed"
		if pe := platformerrors.GetPlatformError(failure.Err); pe != nil {
			msg = pe.Message
		} else if failure.Err != nil {
			msg = failure.Err.Error()
		}
		resp.Failed = append(resp.Failed, BatchFailureResponse{
			Name:  failure.Name,
			Error: msg,
		})
	}
	resp.Total = len(resp.Succeeded) + len(resp.Failed)
	return resp
}
