// Package respond holds the request decoding and error mapping shared by the
// API handlers.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spend/internal/expense"
)

// ErrBadRequest marks input that could not be read at all.
var ErrBadRequest = errors.New("bad request")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return expense.Category(fl.Field().String()).Valid()
	})

	return v
}

// Decode reads a JSON body into dst and runs its validate tags.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %w", ErrBadRequest, err)
	}

	return Validate(dst)
}

// Validate runs the struct's validate tags and reports the first failure as
// an expense.ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]

	return &expense.ValidationError{Field: fe.Field(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without_all":
		return "is required"
	case "category":
		return fmt.Sprintf("unknown category %q", fe.Value())
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must not be less than " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	}

	return "is invalid"
}

// ID parses the {id} URL parameter.
func ID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id", ErrBadRequest)
	}

	return id, nil
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error maps domain errors onto status codes. Storage and unexpected errors
// are logged and hidden behind a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, expense.ErrValidation):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, expense.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
