package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/restaurant-api/internal/models"
)

// Errors is a field-level validation report: field name -> messages.
// Field names follow the JSON body, e.g. "name" or "items[0].quantity".
type Errors map[string][]string

// Add appends a message for field
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsErrors extracts a validation report from err
func AsErrors(err error) (Errors, bool) {
	var verrs Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

// Validator checks request DTOs against their `validate` struct tags
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the domain-specific rules registered
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	// Decimals are validated through their exact string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	rules := map[string]validator.Func{
		"notblank": validators.NotBlank,
		"positive": isPositive,
		"money":    isMoney,
		"category": func(fl validator.FieldLevel) bool {
			return models.Category(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %q validation: %v", tag, err))
		}
	}

	return &Validator{validate: v}
}

// maxPrice is the first amount that no longer fits NUMERIC(10,2)
var maxPrice = decimal.New(1, 8)

func isPositive(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.IsPositive()
}

// isMoney accepts amounts with at most two decimal places below maxPrice
func isMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxPrice)
}

// Struct validates s and returns Errors when any rule fails
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	report := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		report.Add(fieldName(fe), message(fe))
	}
	return report
}

// fieldName drops the root struct name from the namespace
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be empty"
	case "min":
		if fe.Kind() == reflect.Slice {
			if fe.Param() == "1" {
				return "order must contain at least one item"
			}
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "positive":
		return "must be greater than 0"
	case "money":
		return "must have at most 2 decimal places and be less than " + maxPrice.String()
	case "category":
		return "invalid category, allowed: " + allowedCategories()
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

func allowedCategories() string {
	names := make([]string, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
