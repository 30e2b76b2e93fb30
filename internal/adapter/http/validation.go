package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Problem is the title/detail error body every failed request gets.
type Problem struct {
	Title   string       `json:"title"`
	Detail  string       `json:"detail"`
	Status  int          `json:"status"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// Monetary fields arrive as json.Number so they never pass through
	// float64; dec2 = parseable decimal with at most 2 decimal places.
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return d.Exponent() >= -2
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "uuid":
			out = append(out, FieldError{Field: field, Message: "must be a valid uuid"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must be a number with at most 2 decimal places"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
