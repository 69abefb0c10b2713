package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"validacpf/pkg/cpf"
	"validacpf/pkg/logger"
	"validacpf/pkg/model"
)

const TagCPF = "cpf"

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// HasTag reports whether any field failed on the given tag.
func (v ValidationErrors) HasTag(tag string) bool {
	for _, err := range v {
		if err.Tag == tag {
			return true
		}
	}
	return false
}

type CPFValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCPFValidator(log *logger.Logger) *CPFValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation(TagCPF, validateCPF); err != nil {
		log.Fatal("Failed to register 'cpf' validator", "error", err)
	}

	log.Info("CPF validator initialized successfully")

	return &CPFValidator{
		validate: v,
		logger:   log,
	}
}

func validateCPF(fl validator.FieldLevel) bool {
	return cpf.Validate(fl.Field().String())
}

func (v *CPFValidator) Validate(req *model.ValidationRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *CPFValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   strings.ToLower(err.Field()),
			Tag:     err.Tag(),
			Message: messageFor(err),
		})
	}

	return validationErrors
}

func messageFor(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case TagCPF:
		return "is not a valid CPF"
	default:
		return fmt.Sprintf("failed on '%s'", err.Tag())
	}
}
