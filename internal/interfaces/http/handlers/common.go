// Package handlers implements the gin handlers of the research HTTP API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/LegalSpend-Research/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// writeBindError reports a request that could not be bound.
func writeBindError(c *gin.Context, err error) {
	writeAppError(c, errors.Wrap(err, errors.CodeInvalidParam, "invalid request").WithDetail(err.Error()))
}

// writeAppError maps application-level errors to HTTP status codes.  Errors
// that carry no AppError are masked as internal errors.
func writeAppError(c *gin.Context, err error) {
	_ = c.Error(err)

	ae, ok := errors.AsAppError(err)
	if !ok {
		writeJSON(c, http.StatusInternalServerError, ErrorResponse{
			Code:    errors.CodeInternal.String(),
			Message: errors.DefaultMessageForCode(errors.CodeInternal),
		})
		return
	}

	status := errors.HTTPStatusForCode(ae.Code)
	resp := ErrorResponse{Code: ae.Code.String(), Message: ae.Message, Detail: ae.Detail}
	if status >= 500 && ae.Code == errors.CodeInternal {
		resp.Message = errors.DefaultMessageForCode(errors.CodeInternal)
		resp.Detail = ""
	}
	writeJSON(c, status, resp)
}
