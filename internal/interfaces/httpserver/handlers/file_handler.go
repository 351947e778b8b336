package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"atlas-cms/internal/config"
	domain "atlas-cms/internal/domain/file"
	"atlas-cms/internal/infrastructure/auth"
	"atlas-cms/internal/interfaces/httpserver/requests"
	"atlas-cms/internal/interfaces/httpserver/responses"
	"atlas-cms/internal/upload"
	"atlas-cms/internal/utils/platformerrors"
)

// FileHandler exposes the file upload and management endpoints.
type FileHandler struct {
	cfg     *config.Config
	service *domain.Service
	log     zerolog.Logger
}

func NewFileHandler(cfg *config.Config, service *domain.Service, log zerolog.Logger) *FileHandler {
	return &FileHandler{
		cfg:     cfg,
		service: service,
		log:     log.With().Str("component", "file-handler").Logger(),
	}
}

// Create godoc
// @Summary      Upload a file
// @Description  Accepts multipart form data with one file, its declared type and optional translation metadata.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true   "File payload"
// @Param        type      formData  string  true   "Declared type: image, audio, video or model"
// @Param        metadata  formData  string  false  "Translations JSON"
// @Success      200       {object}  responses.FileResponse
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      413       {object}  responses.ErrorResponse
// @Failure      415       {object}  responses.ErrorResponse
// @Router       /v1/files [post]
func (h *FileHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	form, err := upload.ParseForm(c.Request, upload.Options{
		MaxFileBytes: h.cfg.MaxFileBytes,
		MaxFiles:     1,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to decode upload")
		return
	}

	if len(form.Files) == 0 {
		if len(form.Rejected) > 0 {
			responses.HandleError(c, form.Rejected[0].Err, "failed to decode upload")
			return
		}
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"file field is required", "ba824f07-1d6c-4e93-8a50-f27c093d61e8")
		return
	}

	meta, err := upload.ParseMetadata(ctx, form.Fields[requests.FieldMetadata])
	if err != nil {
		responses.HandleError(c, err, "invalid metadata")
		return
	}

	stored, err := h.service.Upload(ctx, domain.UploadRequest{
		ProjectID:    auth.ProjectID(c),
		DeclaredType: form.Fields[requests.FieldType],
		Part:         form.Files[0],
		Metadata:     meta,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("upload failed")
		responses.HandleError(c, err, "upload failed")
		return
	}

	c.JSON(http.StatusOK, responses.BuildFileResponse(stored))
}

// CreateBatch godoc
// @Summary      Upload many files
// @Description  Accepts multipart form data with several files and one declared type. Files are processed with bounded concurrency; per-file failures land in the report while the rest proceed.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file    true  "File payloads"
// @Param        type   formData  string  true  "Declared type for all files"
// @Success      200    {object}  responses.BatchReportResponse
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      413    {object}  responses.ErrorResponse
// @Router       /v1/files/batch [post]
func (h *FileHandler) CreateBatch(c *gin.Context) {
	ctx := c.Request.Context()

	var parts []upload.RawFilePart
	form, err := upload.EachPart(c.Request, upload.Options{
		MaxFileBytes: h.cfg.MaxFileBytes,
		MaxFiles:     h.cfg.MaxFilesPerBatch,
	}, func(part upload.RawFilePart) error {
		data, err := upload.Consume(ctx, part.Source, h.cfg.MaxFileBytes)
		if err != nil {
			return err
		}
		part.Source = &upload.Buffered{Data: data}
		part.Size = int64(len(data))
		parts = append(parts, part)
		return nil
	})
	if err != nil {
		responses.HandleError(c, err, "failed to decode upload")
		return
	}

	report, err := h.service.UploadBatch(ctx, domain.BatchRequest{
		ProjectID:    auth.ProjectID(c),
		DeclaredType: form.Fields[requests.FieldType],
		Parts:        parts,
		Rejected:     form.Rejected,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("batch upload rejected")
		responses.HandleError(c, err, "batch upload rejected")
		return
	}

	c.JSON(http.StatusOK, responses.BuildBatchReportResponse(report))
}

// List godoc
// @Summary      List files
// @Tags         files
// @Produce      json
// @Param        title  query     string  false  "Filter by title or name"
// @Param        limit  query     int     false  "Page size, -1 for all"
// @Param        page   query     int     false  "Page number"
// @Success      200    {object}  responses.FileListResponse
// @Failure      400    {object}  responses.ErrorResponse
// @Router       /v1/files [get]
func (h *FileHandler) List(c *gin.Context) {
	q, err := requests.ParseListFilesQuery(c)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			err.Error(), "c71e05d9-4a38-4f26-b081-9d54c3ae62f7")
		return
	}

	items, total, err := h.service.List(c.Request.Context(), domain.ListQuery{
		ProjectID: auth.ProjectID(c),
		Title:     q.Title,
		Limit:     q.Limit,
		Page:      q.Page,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to list files")
		return
	}

	p := responses.NewPagination(q.Limit, q.Page, total)
	if q.Limit > 0 && total > 0 && q.Page > p.TotalPages {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"page is out of range", "e02d84b7-61cf-4953-a8d2-40f7c91b35e6")
		return
	}

	c.JSON(http.StatusOK, responses.BuildFileListResponse(items, p))
}

// Dropdown godoc
// @Summary      List files for pickers
// @Tags         files
// @Produce      json
// @Success      200  {array}  responses.DropdownItemResponse
// @Router       /v1/files/dropdown [get]
func (h *FileHandler) Dropdown(c *gin.Context) {
	items, err := h.service.Dropdown(c.Request.Context(), auth.ProjectID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to list files")
		return
	}

	resp := make([]responses.DropdownItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, responses.DropdownItemResponse{
			ID:   item.ID,
			Name: item.Name,
			Type: item.Type,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get one file
// @Tags         files
// @Produce      json
// @Param        id   path      string  true  "File id"
// @Success      200  {object}  responses.FileResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/files/{id} [get]
func (h *FileHandler) Get(c *gin.Context) {
	stored, err := h.service.Get(c.Request.Context(), auth.ProjectID(c), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get file")
		return
	}
	c.JSON(http.StatusOK, responses.BuildFileResponse(stored))
}

// Update godoc
// @Summary      Replace a file's payload and/or translations
// @Description  The declared type of a stored file is immutable; a type field that differs from the stored type is rejected before any upload work.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        id        path      string  true   "File id"
// @Param        file      formData  file    false  "Replacement payload"
// @Param        type      formData  string  false  "Declared type, must match"
// @Param        metadata  formData  string  false  "Translations JSON, replaces the stored set"
// @Success      200       {object}  responses.FileResponse
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      404       {object}  responses.ErrorResponse
// @Router       /v1/files/{id} [put]
func (h *FileHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	form, err := upload.ParseForm(c.Request, upload.Options{
		MaxFileBytes: h.cfg.MaxFileBytes,
		MaxFiles:     1,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to decode upload")
		return
	}
	if len(form.Rejected) > 0 {
		responses.HandleError(c, form.Rejected[0].Err, "failed to decode upload")
		return
	}

	req := domain.ReplaceRequest{
		ProjectID:    auth.ProjectID(c),
		FileID:       c.Param("id"),
		DeclaredType: form.Fields[requests.FieldType],
	}
	if len(form.Files) > 0 {
		req.Part = &form.Files[0]
	}
	if raw, ok := form.Fields[requests.FieldMetadata]; ok {
		meta, err := upload.ParseMetadata(ctx, raw)
		if err != nil {
			responses.HandleError(c, err, "invalid metadata")
			return
		}
		req.Metadata = meta
	}

	stored, err := h.service.Replace(ctx, req)
	if err != nil {
		h.log.Error().Err(err).Str("file_id", req.FileID).Msg("replace failed")
		responses.HandleError(c, err, "replace failed")
		return
	}

	c.JSON(http.StatusOK, responses.BuildFileResponse(stored))
}

// Delete godoc
// @Summary      Delete one file
// @Tags         files
// @Produce      json
// @Param        id   path  string  true  "File id"
// @Success      204  "deleted"
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/files/{id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), auth.ProjectID(c), c.Param("id")); err != nil {
		responses.HandleError(c, err, "failed to delete file")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteMany godoc
// @Summary      Delete several files
// @Tags         files
// @Accept       json
// @Produce      json
// @Param        request  body  requests.BulkDeleteRequest  true  "File ids"
// @Success      204      "deleted"
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /v1/files [delete]
func (h *FileHandler) DeleteMany(c *gin.Context) {
	var req requests.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"ids field is required", "539be0d4-a76f-4128-9c3d-08e52f417ba9")
		return
	}

	if err := h.service.DeleteMany(c.Request.Context(), auth.ProjectID(c), req.IDs); err != nil {
		responses.HandleError(c, err, "failed to delete files")
		return
	}
	c.Status(http.StatusNoContent)
}
