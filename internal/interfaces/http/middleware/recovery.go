package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/pkg/errors"
)

// Recovery converts a panic in a downstream handler into a 500 response and
// logs it at Error.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logging.ForContext(c.Request.Context(), logger).Error("panic recovered",
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.String("panic", fmt.Sprint(recovered)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"code":    errors.CodeInternal.String(),
			"message": errors.DefaultMessageForCode(errors.CodeInternal),
		})
	})
}
