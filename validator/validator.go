package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// Messages for tags without a parameter. The field name is prepended.
var plainMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"alphanum": "must contain only alphanumeric characters",
	"numeric":  "must be numeric",
	"currency": "must be a three-letter currency code",
}

// Messages for tags whose parameter is a value.
var valueMessages = map[string]string{
	"min":   "must be at least %s",
	"max":   "must be at most %s",
	"len":   "must be exactly %s characters",
	"gt":    "must be greater than %s",
	"gte":   "must be greater than or equal to %s",
	"lt":    "must be less than %s",
	"lte":   "must be less than or equal to %s",
	"oneof": "must be one of [%s]",
}

// Messages for tags whose parameter names another struct field.
var fieldMessages = map[string]string{
	"excluded_with": "cannot be combined with %s",
	"required_with": "is required when %s is set",
}

type Validator struct {
	Validator *validator.Validate
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Message)
	}

	return strings.Join(msgs, "; ")
}

// DefaultRestValidator reports fields by their json name, compares decimals
// numerically and knows the currency tag.
func DefaultRestValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if amount, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := amount.Float64()

			return f
		}

		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return currencyPattern.MatchString(fl.Field().String())
	})

	return &Validator{Validator: v}
}

func (v *Validator) Validate(i any) error {
	err := v.Validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		field := fe.Field()
		if field == "" {
			field = fe.StructField()
		}

		out = append(out, ValidationError{
			Field:   field,
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
			Message: field + " " + describe(fe),
		})
	}

	return out
}

func describe(fe validator.FieldError) string {
	tag := fe.Tag()

	if msg, ok := plainMessages[tag]; ok {
		return msg
	}

	if format, ok := valueMessages[tag]; ok {
		return fmt.Sprintf(format, fe.Param())
	}

	if format, ok := fieldMessages[tag]; ok {
		return fmt.Sprintf(format, snakeCase(fe.Param()))
	}

	return fmt.Sprintf("failed validation on '%s'", tag)
}

// snakeCase turns a Go field name such as EndingBefore into ending_before.
func snakeCase(name string) string {
	var builder strings.Builder

	for idx, r := range name {
		if idx > 0 && r >= 'A' && r <= 'Z' {
			builder.WriteByte('_')
		}

		builder.WriteString(strings.ToLower(string(r)))
	}

	return builder.String()
}

func (v *Validator) RegisterCustomValidation(tag string, fn validator.Func) error {
	return v.Validator.RegisterValidation(tag, fn)
}

func (v *Validator) RegisterStructValidation(fn validator.StructLevelFunc, types ...any) {
	v.Validator.RegisterStructValidation(fn, types...)
}
