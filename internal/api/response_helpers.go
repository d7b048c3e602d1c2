// internal/api/response_helpers.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the standard error body
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError for the response body
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// ResponseHelper writes API responses. Success bodies carry the payload
// directly (the full document or the section list, per the API contract);
// only error bodies are wrapped.
type ResponseHelper struct{}

// NewResponseHelper creates a response helper
func NewResponseHelper() *ResponseHelper {
	return &ResponseHelper{}
}

// Success writes the payload as the whole response body
func (rh *ResponseHelper) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error writes an error response
func (rh *ResponseHelper) Error(c *gin.Context, statusCode int, errorCode, message string) {
	c.JSON(statusCode, &ErrorResponse{
		Error: &APIError{
			Code:    errorCode,
			Message: message,
		},
	})
}

// BadRequest writes a 400 error response
func (rh *ResponseHelper) BadRequest(c *gin.Context, errorCode, message string) {
	rh.Error(c, http.StatusBadRequest, errorCode, message)
}

// NotFound writes a 404 error response
func (rh *ResponseHelper) NotFound(c *gin.Context, message string) {
	rh.Error(c, http.StatusNotFound, ErrorNotFound, message)
}

// InternalError writes a 500 error response. Internal detail (paths, wrapped
// causes) stays out of the body.
func (rh *ResponseHelper) InternalError(c *gin.Context, errorCode string) {
	rh.Error(c, http.StatusInternalServerError, errorCode, "unexpected server error")
}
