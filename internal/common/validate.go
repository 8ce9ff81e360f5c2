package common

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	validatorv10 "github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validatorv10.Validate
)

// Validator returns the shared validator. Field names in reported errors use
// the json tag so clients see the names they sent.
func Validator() *validatorv10.Validate {
	validateOnce.Do(func() {
		validate = validatorv10.New(validatorv10.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateStruct runs struct validation and converts failures to a 400 with a
// field to tag map in the details.
func ValidateStruct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validatorv10.ValidationErrors
	if !errors.As(err, &verrs) {
		return BadRequest("invalid payload", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		fields[field] = fe.Tag()
	}
	return BadRequest("validation failed", err).WithDetails(map[string]any{"fields": fields})
}
