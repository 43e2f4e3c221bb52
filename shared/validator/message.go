package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be at most {param}",
		"min":      "{field} must be at least {param}",
		"email":    "{field} must be a valid email address",
		"slot":     "{field} must be a time in HH:MM format",
		"day":      "{field} must be a date in YYYY-MM-DD format",
		"role":     "{field} must be one of Customer RestaurantManager Admin",
		"url":      "{field} must be a valid URL",
		"dive":     "{field} contains an invalid value",
	}
)

// message renders the first failed rule that has a template; the rest are
// left to the validator's own text.
func message(err error) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	for _, fe := range fieldErrs {
		tmpl, ok := messages[fe.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fe.Field(), "{param}", fe.Param()).Replace(tmpl)
	}

	return fieldErrs.Error()
}
