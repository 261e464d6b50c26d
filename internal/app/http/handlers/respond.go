package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/domain/repository"
	"mwd-interiors/quotedesk/internal/service"
)

const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeBadRequest    = "bad_request"
	ErrorTypeNotFound      = "not_found"
	ErrorTypeConflict      = "conflict"
	ErrorTypeUnprocessable = "unprocessable"
	ErrorTypeInternal      = "internal_error"
)

// APIError is the problem-details body of every error response.
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, APIError{
		Type:   errorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

func respondValidationError(w http.ResponseWriter, err error) {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = formatValidationError(fe)
		}
	}
	respondFieldErrors(w, fields)
}

func respondFieldErrors(w http.ResponseWriter, fields map[string]string) {
	respondJSON(w, http.StatusBadRequest, APIError{
		Type:   ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: fields,
	})
}

func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "url":
		return "Must be a valid URL"
	default:
		return fmt.Sprintf("Failed on %s", fe.Tag())
	}
}

func errorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrorTypeBadRequest
	case http.StatusNotFound:
		return ErrorTypeNotFound
	case http.StatusConflict:
		return ErrorTypeConflict
	case http.StatusUnprocessableEntity:
		return ErrorTypeUnprocessable
	default:
		return ErrorTypeInternal
	}
}

// respondServiceError maps domain errors to status codes. Anything
// unrecognised is logged and reported as a 500.
func (h *Handlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, quote.ErrDraftNotFound),
		errors.Is(err, quote.ErrRoomNotFound),
		errors.Is(err, quote.ErrItemNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrConflict):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, quote.ErrIncomplete):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrUnsupportedFormat):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get("X-Request-ID")),
			zap.Error(err),
		)
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decode reads a JSON body into dst and validates it. It writes the error
// response itself and reports whether the handler should continue.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	return decodeBody(w, r, dst, false)
}

// decodeOptional is decode for routes whose body may be left out entirely,
// whether or not the request declares a length.
func decodeOptional(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	return decodeBody(w, r, dst, true)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, optional bool) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if optional && errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		respondWithError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
