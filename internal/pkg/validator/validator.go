package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"rentledger/internal/domain"
	"rentledger/internal/pkg/utils"
)

var validate *validator.Validate

// Issue describes one failed rule, keyed by the JSON field name.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// money fields compare numerically (gte=0 etc.)
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		d, ok := v.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		return d.InexactFloat64()
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseDate(fl.Field().String())
		return err == nil
	})

	// the custom type func above hands rules a float, so cents reads the raw field
	_ = validate.RegisterValidation("cents", func(fl validator.FieldLevel) bool {
		raw := reflect.Indirect(fl.Parent()).FieldByName(fl.StructFieldName())
		for raw.Kind() == reflect.Ptr {
			if raw.IsNil() {
				return true
			}
			raw = raw.Elem()
		}
		d, ok := raw.Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return d.Equal(d.Truncate(2))
	})

	_ = validate.RegisterValidation("assetstatus", func(fl validator.FieldLevel) bool {
		return domain.AssetStatus(fl.Field().String()).Valid()
	})

	_ = validate.RegisterValidation("locationstatus", func(fl validator.FieldLevel) bool {
		return domain.LocationStatus(fl.Field().String()).Valid()
	})
}

// Validate returns nil when v is valid, otherwise one issue per failed field.
func Validate(v interface{}) []Issue {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Issue{{Field: "", Rule: "invalid", Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return issues
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "date":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD or RFC3339)", fe.Field())
	case "cents":
		return fmt.Sprintf("%s must have at most two decimal places", fe.Field())
	case "assetstatus":
		return fmt.Sprintf("%s must be one of: AVAILABLE RENTED MAINTENANCE", fe.Field())
	case "locationstatus":
		return fmt.Sprintf("%s must be one of: PLANNED COMPLETED CANCELLED", fe.Field())
	}
	return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
}
