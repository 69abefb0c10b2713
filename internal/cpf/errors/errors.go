package errors

import "errors"

var (
	ErrMissingCPF = errors.New("cpf is required")

	ErrInvalidCPF = errors.New("cpf failed validation")
)
