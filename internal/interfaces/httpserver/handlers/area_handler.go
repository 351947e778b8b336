package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "atlas-cms/internal/domain/area"
	"atlas-cms/internal/infrastructure/auth"
	"atlas-cms/internal/interfaces/httpserver/requests"
	"atlas-cms/internal/interfaces/httpserver/responses"
	"atlas-cms/internal/utils/platformerrors"
)

// AreaHandler exposes the area tree endpoints.
type AreaHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewAreaHandler(service *domain.Service, log zerolog.Logger) *AreaHandler {
	return &AreaHandler{
		service: service,
		log:     log.With().Str("component", "area-handler").Logger(),
	}
}

// Create godoc
// @Summary      Create an area
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        request  body      requests.CreateAreaRequest  true  "Area"
// @Success      200      {object}  responses.AreaResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /v1/areas [post]
func (h *AreaHandler) Create(c *gin.Context) {
	var req requests.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"invalid request body", "07a4d2c8-391e-4f65-b80a-c65d19e32f74")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.ToDomain(auth.ProjectID(c)))
	if err != nil {
		responses.HandleError(c, err, "failed to create area")
		return
	}
	c.JSON(http.StatusOK, responses.BuildAreaResponse(created))
}

// List godoc
// @Summary      List areas
// @Tags         areas
// @Produce      json
// @Param        parentId  query     string  false  "Filter by parent area"
// @Param        limit     query     int     false  "Page size, -1 for all"
// @Param        page      query     int     false  "Page number"
// @Success      200       {object}  responses.AreaListResponse
// @Failure      400       {object}  responses.ErrorResponse
// @Router       /v1/areas [get]
func (h *AreaHandler) List(c *gin.Context) {
	q := domain.ListQuery{
		ProjectID: auth.ProjectID(c),
		Limit:     25,
		Page:      1,
	}
	if raw := c.Query("parentId"); raw != "" {
		q.ParentID = &raw
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || (limit <= 0 && limit != -1) {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
				"invalid query parameter limit", "d84b05f1-26c9-4a73-9e08-53c7f21d40ae")
			return
		}
		q.Limit = limit
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
				"invalid query parameter page", "4f61c0e8-92ad-4357-b1f0-68d2e95c37ab")
			return
		}
		q.Page = page
	}

	items, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		responses.HandleError(c, err, "failed to list areas")
		return
	}

	p := responses.NewPagination(q.Limit, q.Page, total)
	if q.Limit > 0 && total > 0 && q.Page > p.TotalPages {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"page is out of range", "91c37ad0-5e82-4b64-af91-20d6c84e53f7")
		return
	}

	c.JSON(http.StatusOK, responses.BuildAreaListResponse(items, p))
}

// Dropdown godoc
// @Summary      List areas for pickers
// @Tags         areas
// @Produce      json
// @Success      200  {array}  responses.AreaDropdownItemResponse
// @Router       /v1/areas/dropdown [get]
func (h *AreaHandler) Dropdown(c *gin.Context) {
	items, err := h.service.Dropdown(c.Request.Context(), auth.ProjectID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to list areas")
		return
	}

	resp := make([]responses.AreaDropdownItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, responses.AreaDropdownItemResponse{
			ID:    item.ID,
			Title: item.Title,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get one area
// @Tags         areas
// @Produce      json
// @Param        id   path      string  true  "Area id"
// @Success      200  {object}  responses.AreaResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/areas/{id} [get]
func (h *AreaHandler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), auth.ProjectID(c), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get area")
		return
	}
	c.JSON(http.StatusOK, responses.BuildAreaResponse(a))
}

// Update godoc
// @Summary      Update an area
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Area id"
// @Param        request  body      requests.UpdateAreaRequest  true  "Changes"
// @Success      200      {object}  responses.AreaResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /v1/areas/{id} [put]
func (h *AreaHandler) Update(c *gin.Context) {
	var req requests.UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"invalid request body", "6b90e14d-c273-4fa8-85d1-39f0c62e57ab")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), req.ToDomain(auth.ProjectID(c), c.Param("id")))
	if err != nil {
		responses.HandleError(c, err, "failed to update area")
		return
	}
	c.JSON(http.StatusOK, responses.BuildAreaResponse(updated))
}

// Delete godoc
// @Summary      Delete a leaf area
// @Tags         areas
// @Produce      json
// @Param        id   path  string  true  "Area id"
// @Success      204  "deleted"
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/areas/{id} [delete]
func (h *AreaHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), auth.ProjectID(c), c.Param("id")); err != nil {
		responses.HandleError(c, err, "failed to delete area")
		return
	}
	c.Status(http.StatusNoContent)
}
