package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "atlas-cms/internal/domain/language"
	"atlas-cms/internal/infrastructure/auth"
	"atlas-cms/internal/interfaces/httpserver/responses"
)

// LanguageHandler exposes the read-only language listing.
type LanguageHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewLanguageHandler(service *domain.Service, log zerolog.Logger) *LanguageHandler {
	return &LanguageHandler{
		service: service,
		log:     log.With().Str("component", "language-handler").Logger(),
	}
}

// List godoc
// @Summary      List the project's languages
// @Tags         languages
// @Produce      json
// @Success      200  {array}  responses.LanguageResponse
// @Router       /v1/languages [get]
func (h *LanguageHandler) List(c *gin.Context) {
	langs, err := h.service.List(c.Request.Context(), auth.ProjectID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to list languages")
		return
	}
	c.JSON(http.StatusOK, responses.BuildLanguageListResponse(langs))
}
