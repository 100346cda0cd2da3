package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/storefront/pkg/util/errorutil"
)

var validate = validator.New()

// firstFailure returns the first failed field, preferring missing fields so
// that "required" messages win over range messages.
func firstFailure(err error) (validator.FieldError, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return nil, false
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return fe, true
		}
	}
	return verrs[0], true
}

func invalid(message string) error {
	return apperrors.NewValidationError(message)
}
