package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
	"github.com/noah-isme/attendance-api/pkg/middleware/requestid"
	"github.com/noah-isme/attendance-api/pkg/response"
)

// Recovery turns a panic into the 500 error envelope and logs it.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Value(c)),
		)
		response.Abort(c, appErrors.Internal(fmt.Errorf("panic: %v", recovered), appErrors.ErrInternal.Message))
	})
}
