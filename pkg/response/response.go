package response

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

var exposeCause atomic.Bool

// ExposeInternalErrors controls whether server error envelopes carry the
// wrapped cause in the "error" field. It is off unless enabled at startup.
func ExposeInternalErrors(enabled bool) {
	exposeCause.Store(enabled)
}

// Envelope represents the common response contract.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// dataEnvelope always serialises the data key, including explicit nulls
// returned by deletes.
type dataEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, message string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, dataEnvelope{Success: true, Message: message, Data: data})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data)
}

// Error sends an error response converting the error to the common structure.
// Server errors only carry the wrapped cause after ExposeInternalErrors(true).
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	envelope := Envelope{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Errors,
	}
	if appErr.Status >= http.StatusInternalServerError && exposeCause.Load() && appErr.Err != nil {
		envelope.Error = appErr.Err.Error()
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, envelope)
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
