package handler

import (
	"github.com/ecosort/ecosort-backend/pkg/validator"
)

func formatValidationError(err error) string {
	return validator.FormatValidationError(err)
}
