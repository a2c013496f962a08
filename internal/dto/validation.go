package dto

import (
	"errors"
	"fmt"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the domain-specific binding tags on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	if err := v.RegisterValidation("manualentrytype", func(fl validator.FieldLevel) bool {
		return domain.EntryType(fl.Field().String()).IsManual()
	}); err != nil {
		return fmt.Errorf("register manualentrytype: %w", err)
	}
	if err := v.RegisterValidation("projectstatus", func(fl validator.FieldLevel) bool {
		return domain.ProjectStatus(fl.Field().String()).IsValid()
	}); err != nil {
		return fmt.Errorf("register projectstatus: %w", err)
	}
	return nil
}

// ValidationDetails maps each failing field to the tag that rejected it.
// It returns nil when err is not a validation failure.
func ValidationDetails(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	details := make(map[string]string, len(ve))
	for _, fe := range ve {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
