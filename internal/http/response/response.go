// Package response writes the JSON envelope shared by handlers and middleware.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/logger"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/utils"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Envelope struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message"`
	Data      any                `json:"data,omitempty"`
	Meta      *domain.Pagination `json:"meta,omitempty"`
	Errors    []FieldError       `json:"errors,omitempty"`
	RequestID string             `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	return utils.RequestIDFrom(c.Request.Context())
}

func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data, RequestID: requestID(c)})
}

// Page writes a list together with its pagination.
func Page(c *gin.Context, message string, data any, page domain.Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data, Meta: &page, RequestID: requestID(c)})
}

// Fail aborts the request with a failure envelope.
func Fail(c *gin.Context, status int, message string, errs ...FieldError) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message, Errors: errs, RequestID: requestID(c)})
}

// Error maps err onto a status code. Causes of 500s are logged, never returned.
func Error(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &verrs):
		Fail(c, http.StatusBadRequest, "validation failed", FieldErrors(verrs)...)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		Fail(c, http.StatusBadRequest, "invalid request body")
	case domain.IsValidation(err):
		var ve domain.ValidationError
		errors.As(err, &ve)
		var fields []FieldError
		if ve.Field != "" {
			fields = append(fields, FieldError{Field: ve.Field, Message: ve.Msg})
		}
		Fail(c, http.StatusBadRequest, err.Error(), fields...)
	case domain.IsUnauthorized(err):
		Fail(c, http.StatusUnauthorized, err.Error())
	case domain.IsForbidden(err):
		Fail(c, http.StatusForbidden, err.Error())
	case domain.IsNotFound(err):
		Fail(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		Fail(c, http.StatusConflict, err.Error())
	case domain.IsInternal(err):
		var ie domain.InternalError
		errors.As(err, &ie)
		logger.Error("request failed",
			"request_id", requestID(c), "method", c.Request.Method, "path", c.FullPath(), "error", err)
		Fail(c, http.StatusInternalServerError, ie.Error())
	default:
		logger.Error("request failed",
			"request_id", requestID(c), "method", c.Request.Method, "path", c.FullPath(), "error", err)
		Fail(c, http.StatusInternalServerError, "internal server error")
	}
}

// FieldErrors converts validator errors into field/message pairs. Field names
// follow the json/form tag when the validator has a tag name func registered.
func FieldErrors(verrs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}
