package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atlas-cms/internal/utils/platformerrors"
)

// ErrorResponse is the error body for every endpoint. Error is the
// machine-stable category; Details is human-readable.
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Code      string `json:"code,omitempty"` // UUID from PlatformError
	RequestID string `json:"request_id,omitempty"`
}

// HandleError maps domain errors onto HTTP responses.
func HandleError(reqCtx *gin.Context, err error, message string) {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(platformErr.GetErrorType())

		details := platformErr.Message
		if details == "" {
			details = message
		}

		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Error:     string(platformErr.GetErrorType()),
			Details:   details,
			Code:      platformErr.GetUUID(),
			RequestID: platformErr.GetRequestID(),
		})
		return
	}

	// Non-platform errors stay opaque.
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   string(platformerrors.ErrorTypeInternal),
		Details: message,
	})
}

// HandleNewError creates a typed error at the route layer and handles it.
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	ctx := reqCtx.Request.Context()
	err := platformerrors.NewError(ctx, platformerrors.LayerRoute, errorType, message, nil, uuid)
	HandleError(reqCtx, err, message)
}
