package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/regexplorer/internal/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so clients see what they sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// progressRequest is the body of POST /api/progress.
type progressRequest struct {
	PuzzleID  *int64  `json:"puzzleId" validate:"required"`
	SessionID *string `json:"sessionId" validate:"required,min=1,max=128"`
	Completed *bool   `json:"completed"`
}

type previewRequest struct {
	Pattern string `json:"pattern" validate:"max=1024"`
}

type submitRequest struct {
	Pattern   string `json:"pattern" validate:"max=1024"`
	SessionID string `json:"sessionId" validate:"omitempty,max=128"`
}

// decodeRequest reads a JSON body into dst and validates it. Every problem is
// returned in a single VALIDATION_ERROR.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewValidationErrors([]errors.FieldError{decodeProblem(err)})
	}

	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.NewInternalError(err)
	}

	details := make([]errors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, errors.FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return errors.NewValidationErrors(details)
}

func decodeProblem(err error) errors.FieldError {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var sizeErr *http.MaxBytesError

	switch {
	case stderrors.As(err, &typeErr):
		return errors.FieldError{Field: typeErr.Field, Message: "must be a " + jsonKind(typeErr.Type)}
	case stderrors.As(err, &syntaxErr):
		return errors.FieldError{Field: "body", Message: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}
	case stderrors.As(err, &sizeErr):
		return errors.FieldError{Field: "body", Message: "too large"}
	case stderrors.Is(err, io.EOF):
		return errors.FieldError{Field: "body", Message: "is required"}
	default:
		return errors.FieldError{Field: "body", Message: err.Error()}
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	default:
		return "valid " + t.Kind().String()
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "failed " + fe.Tag()
	}
}
