package service

import (
	"context"
	"errors"
	"strings"

	cpferrors "validacpf/internal/cpf/errors"
	"validacpf/internal/cpf/validator"
	"validacpf/pkg/cpf"
	apperrors "validacpf/pkg/errors"
	"validacpf/pkg/logger"
	"validacpf/pkg/model"
)

const MessageValidCPF = "CPF válido."

type CPFService interface {
	Validate(ctx context.Context, req *model.ValidationRequest) (*model.ValidationResult, error)
}

type cpfService struct {
	validator *validator.CPFValidator
	log       *logger.Logger
}

func NewCPFService(validator *validator.CPFValidator, log *logger.Logger) CPFService {
	return &cpfService{
		validator: validator,
		log:       log,
	}
}

func (s *cpfService) Validate(ctx context.Context, req *model.ValidationRequest) (*model.ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Timeout("Request cancelled")
	}
	if req == nil {
		return nil, apperrors.MissingCPF(cpferrors.ErrMissingCPF)
	}

	trimmed := &model.ValidationRequest{CPF: strings.TrimSpace(req.CPF)}

	if err := s.validator.Validate(trimmed); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, apperrors.Internal("CPF validation could not run", err)
		}

		if verrs.HasTag("required") {
			s.log.Debug("CPF missing from request")
			return nil, apperrors.MissingCPF(cpferrors.ErrMissingCPF)
		}

		s.log.Debug("CPF rejected",
			"cpf", cpf.Mask(trimmed.CPF),
			"reason", cpf.Check(trimmed.CPF).String(),
		)
		return nil, apperrors.InvalidCPF(cpferrors.ErrInvalidCPF)
	}

	s.log.Debug("CPF accepted", "cpf", cpf.Mask(trimmed.CPF))

	return &model.ValidationResult{
		Valid:   true,
		CPF:     cpf.Format(trimmed.CPF),
		Message: MessageValidCPF,
	}, nil
}
