package model

// ValidationRequest is the inbound body. encoding/json matches the "cpf" key
// case-insensitively, so {"CPF": ...} and {"Cpf": ...} decode as well.
type ValidationRequest struct {
	CPF string `json:"cpf" validate:"required,cpf"`
}

type ValidationResult struct {
	Valid   bool   `json:"valid"`
	CPF     string `json:"cpf"`
	Message string `json:"message"`
}
