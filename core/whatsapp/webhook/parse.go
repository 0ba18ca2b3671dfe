package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// RootField names the payload itself when the failure is not tied to a field.
const RootField = "$"

// ValidationError reports the first offending field of a malformed payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payload: %s: %s", e.Field, e.Message)
}

// Code implements the coded-error contract used by the log pipeline.
func (e *ValidationError) Code() string { return "invalid_payload" }

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func payloadValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Parse decodes and validates a raw webhook body.
func Parse(raw []byte) (Event, error) {
	var ev Event
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&ev); err != nil {
		return Event{}, decodeError(err)
	}
	if err := payloadValidator().Struct(ev); err != nil {
		return Event{}, validationError(err)
	}
	return ev, nil
}

// Normalize validates an already decoded payload such as map[string]any.
func Normalize(payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, &ValidationError{Field: RootField, Message: err.Error()}
	}
	return Parse(raw)
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = RootField
		}
		return &ValidationError{Field: field, Message: "expected " + typeErr.Type.String() + ", got " + typeErr.Value}
	}
	return &ValidationError{Field: RootField, Message: "malformed JSON: " + err.Error()}
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: RootField, Message: err.Error()}
	}
	fe := fieldErrs[0]
	// Namespace is "Event.senderData.chatId"; drop the root type name.
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	if field == "" {
		field = fe.Field()
	}
	msg := "is required"
	switch fe.Tag() {
	case "required":
	case "oneof":
		msg = fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	default:
		msg = "failed " + fe.Tag() + " check"
	}
	return &ValidationError{Field: field, Message: msg}
}
