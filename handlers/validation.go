package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mapleleafu/spritedex/responses"
)

const maxBodyBytes = 1 << 20

// bcryptMaxBytes is the longest input bcrypt accepts, counted in bytes.
const bcryptMaxBytes = 72

type normalizer interface {
	Normalize()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= bcryptMaxBytes
	})
	return v
}

// decodeAndValidate strictly decodes a JSON body into dst and validates it.
// Unknown properties are rejected. All failures are BadRequestErrors whose
// message lists every problem.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return responses.BadRequestError{Msg: decodeErrorMessage(err)}
	}
	if dec.More() {
		return responses.BadRequestError{Msg: "Invalid request body."}
	}

	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			messages := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				messages = append(messages, fieldErrorMessage(fe))
			}
			return responses.BadRequestError{Msg: strings.Join(messages, ", ")}
		}
		return fmt.Errorf("validate request: %w", err)
	}
	return nil
}

func decodeErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return "Request body is required."
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.Kind())
	case errors.As(err, &maxBytesErr):
		return "Request body is too large."
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return fmt.Sprintf("property %s should not exist", field)
	default:
		return "Invalid request body."
	}
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s should not be empty", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be longer than or equal to %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", fe.Field(), fe.Param())
	case "bcryptmax":
		return fmt.Sprintf("%s must be shorter than or equal to %d bytes", fe.Field(), bcryptMaxBytes)
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
