package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates s against its `validate` tags and reports failures as a
// single validation error listing every offending field.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Wrap(apperror.KindValidation, err, "invalid input")
	}

	fields := make(map[string]string, len(fieldErrs))
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		}
		fields[fe.Namespace()] = rule
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), rule))
	}

	return apperror.Validation("invalid input: %s", strings.Join(parts, "; ")).With("fields", fields)
}
