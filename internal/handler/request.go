package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrBadRequest, "Invalid "+name)
	}
	return id, nil
}

// bindJSON decodes the request body into dest. Oversized bodies map to 413.
func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return appErrors.ErrTooLarge
		}
		return appErrors.Wrap(err, appErrors.ErrBadRequest.Code, http.StatusBadRequest, "Invalid JSON payload")
	}
	return nil
}
