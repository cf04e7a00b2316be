package appErrors

import (
	"github.com/gin-gonic/gin"

	"homelink_backend/internal/logger"
)

// ErrorResponse is the standard error envelope returned by the API.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes an AppError to the response. Server-class errors are
// logged with their wrapped cause; client errors are the caller's problem.
func HandleError(c *gin.Context, err *AppError) {
	if err.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", err, "code", string(err.Code))
	}
	c.JSON(err.HTTPCode, ErrorResponse{Error: err})
}

// HandleServiceError maps any error coming out of the service layer: known
// AppErrors pass through, anything else is wrapped as an internal error.
func HandleServiceError(c *gin.Context, err error) {
	var appErr *AppError
	if As(err, &appErr) {
		HandleError(c, appErr)
		return
	}
	HandleError(c, InternalError(err))
}
