package requests

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Multipart field names accepted by the upload endpoints.
const (
	FieldFile     = "file"
	FieldFiles    = "files"
	FieldType     = "type"
	FieldMetadata = "metadata"
)

// BulkDeleteRequest is the body of DELETE /v1/files.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// ListFilesQuery is the query string of GET /v1/files.
type ListFilesQuery struct {
	Title string
	Limit int
	Page  int
}

// ParseListFilesQuery reads pagination and filter parameters. Limit -1
// disables pagination; page defaults to 1.
func ParseListFilesQuery(c *gin.Context) (ListFilesQuery, error) {
	q := ListFilesQuery{
		Title: c.Query("title"),
		Limit: 25,
		Page:  1,
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || (limit <= 0 && limit != -1) {
			return q, errInvalidQuery("limit")
		}
		q.Limit = limit
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return q, errInvalidQuery("page")
		}
		q.Page = page
	}
	return q, nil
}

type queryError struct {
	param string
}

func (e queryError) Error() string {
	return "invalid query parameter " + e.param
}

func errInvalidQuery(param string) error {
	return queryError{param: param}
}
