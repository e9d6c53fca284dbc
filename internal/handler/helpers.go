package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/EliasMeh/ExamenBDD/internal/apierror"
	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidJSON  = "Invalid JSON body"
	msgInvalidID    = "Invalid id"
	msgInvalidEmail = "Invalid email format"
	msgInvalidQuery = "Invalid query parameters"
)

// bindJSON decodes the body into req. An absent body or a field of the
// wrong type answers missingMsg; only a syntactically broken body gets
// msgInvalidJSON. Returns false once the 400 response has been written.
func bindJSON(c *gin.Context, req interface{}, missingMsg string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF), errors.As(err, &typeErr):
			c.JSON(http.StatusBadRequest, apierror.New(missingMsg))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(msgInvalidJSON))
		}
		return false
	}
	return true
}

// bindAndValidate is bindJSON followed by the validator tags. A failed tag
// answers missingMsg, except a malformed email.
func bindAndValidate(c *gin.Context, req interface{}, missingMsg string) bool {
	if !bindJSON(c, req, missingMsg) {
		return false
	}
	if err := dto.Validate(req); err != nil {
		msg := missingMsg
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "email" {
					msg = msgInvalidEmail
					break
				}
			}
		}
		c.JSON(http.StatusBadRequest, apierror.New(msg))
		return false
	}
	return true
}

// bindQuery binds and validates query string filters.
func bindQuery(c *gin.Context, f interface{}) bool {
	if err := c.ShouldBindQuery(f); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(msgInvalidQuery))
		return false
	}
	if err := dto.Validate(f); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(msgInvalidQuery))
		return false
	}
	return true
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New(msgInvalidID))
		return 0, false
	}
	return id, true
}

// statusOf maps a service error onto an HTTP status. 0 means "not a
// categorised error".
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrTransient):
		return http.StatusServiceUnavailable
	}
	return 0
}

// respondError writes the error response for err. Uncategorised errors are
// handed to the ErrorHandler middleware, which logs them and answers 500.
func respondError(c *gin.Context, err error) {
	respondErrorStatus(c, err, statusOf(err))
}

func respondErrorStatus(c *gin.Context, err error, status int) {
	if status == 0 {
		_ = c.Error(err)
		return
	}
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", "1")
	}
	c.JSON(status, apierror.New(service.Message(err, http.StatusText(status))))
}
