package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aldoetobex/hrms-backend/pkg/patterns"
)

var v *validator.Validate

func init() {
	v = validator.New()

	// Use JSON tag as the field name in error output
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// One tag per pattern, e.g. `validate:"omitempty,pan"`
	for _, p := range patterns.All() {
		p := p
		_ = v.RegisterValidation(p.Name, func(fl validator.FieldLevel) bool {
			val := strings.TrimSpace(fl.Field().String())
			if val == "" { // let omitempty / required handle empty
				return true
			}
			return p.Match(val)
		})
	}

	// Strict calendar date
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		val := strings.TrimSpace(fl.Field().String())
		if val == "" {
			return true
		}
		_, ok := ParseDate(val)
		return ok
	})

	// Client selection must name a client or a status placeholder
	_ = v.RegisterValidation("clientsel", func(fl validator.FieldLevel) bool {
		return ParseClientSelection(fl.Field().String()).Kind != SelectionNone
	})
}

// Validate returns map[field][]messages (Laravel-like). Keys are dot paths
// relative to s, e.g. "employeeSalaryDTO.allowances.0.amount".
func Validate(s any) (map[string][]string, error) {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, err
		}
		out := make(map[string][]string)
		for _, e := range ve {
			field := fieldKey(e.Namespace())

			if p, ok := patterns.ByName(e.Tag()); ok {
				out[field] = append(out[field], p.Message)
				continue
			}

			switch e.Tag() {
			case "required", "required_with", "required_without":
				out[field] = append(out[field], "This field is required")

			case "email":
				out[field] = append(out[field], patterns.Email.Message)

			case "min":
				// Show a string-specific message when the field is a string
				if e.Kind() == reflect.String {
					out[field] = append(out[field], fmt.Sprintf("Must be at least %s characters", e.Param()))
				} else if e.Kind() == reflect.Slice {
					out[field] = append(out[field], fmt.Sprintf("Must have at least %s items", e.Param()))
				} else {
					out[field] = append(out[field], fmt.Sprintf("Must be at least %s", e.Param()))
				}

			case "max":
				if e.Kind() == reflect.String {
					out[field] = append(out[field], fmt.Sprintf("Must be at most %s characters", e.Param()))
				} else {
					out[field] = append(out[field], fmt.Sprintf("Must be at most %s", e.Param()))
				}

			case "oneof":
				out[field] = append(out[field], "Value is not allowed")

			case "uuid", "uuid4":
				out[field] = append(out[field], "Invalid UUID format")

			case "gt":
				out[field] = append(out[field], fmt.Sprintf("Must be greater than %s", e.Param()))

			case "gte":
				if e.Kind() == reflect.String {
					out[field] = append(out[field], fmt.Sprintf("Must be at least %s characters", e.Param()))
				} else {
					out[field] = append(out[field], fmt.Sprintf("Must be greater than or equal to %s", e.Param()))
				}

			case "lte":
				if e.Kind() == reflect.String {
					out[field] = append(out[field], fmt.Sprintf("Must be at most %s characters", e.Param()))
				} else {
					out[field] = append(out[field], fmt.Sprintf("Must be less than or equal to %s", e.Param()))
				}

			case "isodate":
				out[field] = append(out[field], MsgInvalidDate)

			case "clientsel":
				out[field] = append(out[field], "Select a client or a status")

			default:
				// Fallback to original error text if we missed a tag
				out[field] = append(out[field], e.Error())
			}
		}
		return out, nil
	}
	return nil, nil
}

// fieldKey drops the root struct name and flattens indexes:
// "CreateEmployeeRequest.allowances[0].amount" -> "allowances.0.amount".
func fieldKey(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.Join(splitPath(ns), ".")
}
