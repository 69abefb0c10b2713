package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cpferrors "validacpf/internal/cpf/errors"
	"validacpf/internal/cpf/validator"
	apperrors "validacpf/pkg/errors"
	"validacpf/pkg/logger"
	"validacpf/pkg/model"
)

func newTestService(log *logger.Logger) CPFService {
	return NewCPFService(validator.NewCPFValidator(log), log)
}

func TestValidate_Valid(t *testing.T) {
	svc := newTestService(logger.Discard())

	res, err := svc.Validate(context.Background(), &model.ValidationRequest{CPF: " 52998224725 "})

	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "529.982.247-25", res.CPF)
	assert.Equal(t, MessageValidCPF, res.Message)
	assert.NotContains(t, res.Message, "fraude")
}

func TestValidate_LeavesRequestUntouched(t *testing.T) {
	svc := newTestService(logger.Discard())

	for _, input := range []string{" 52998224725 ", "  11144477736\t", "   "} {
		req := &model.ValidationRequest{CPF: input}
		_, _ = svc.Validate(context.Background(), req)
		assert.Equal(t, input, req.CPF)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.ValidationRequest
		wantCode string
		wantMsg  string
		wantIs   error
	}{
		{name: "nil request", req: nil, wantCode: apperrors.CodeMissingCPF, wantMsg: apperrors.MessageMissingCPF, wantIs: cpferrors.ErrMissingCPF},
		{name: "empty", req: &model.ValidationRequest{}, wantCode: apperrors.CodeMissingCPF, wantMsg: apperrors.MessageMissingCPF, wantIs: cpferrors.ErrMissingCPF},
		{name: "whitespace only", req: &model.ValidationRequest{CPF: " \t\n "}, wantCode: apperrors.CodeMissingCPF, wantMsg: apperrors.MessageMissingCPF, wantIs: cpferrors.ErrMissingCPF},
		{name: "bad checksum", req: &model.ValidationRequest{CPF: "11144477736"}, wantCode: apperrors.CodeInvalidCPF, wantMsg: apperrors.MessageInvalidCPF, wantIs: cpferrors.ErrInvalidCPF},
		{name: "wrong length", req: &model.ValidationRequest{CPF: "1234"}, wantCode: apperrors.CodeInvalidCPF, wantMsg: apperrors.MessageInvalidCPF, wantIs: cpferrors.ErrInvalidCPF},
		{name: "garbage", req: &model.ValidationRequest{CPF: "abc"}, wantCode: apperrors.CodeInvalidCPF, wantMsg: apperrors.MessageInvalidCPF, wantIs: cpferrors.ErrInvalidCPF},
	}

	svc := newTestService(logger.Discard())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Validate(context.Background(), tt.req)

			require.Error(t, err)
			assert.Nil(t, res)
			appErr := apperrors.AsAppError(err)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantMsg, appErr.Message)
			assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
			assert.ErrorIs(t, err, tt.wantIs)
		})
	}
}

func TestValidate_CancelledContext(t *testing.T) {
	svc := newTestService(logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Validate(ctx, &model.ValidationRequest{CPF: "11144477735"})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeTimeout, apperrors.AsAppError(err).Code)
}

func TestValidate_LogsMaskedCPF(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Output: &buf, Level: logger.DEBUG})
	svc := newTestService(log)

	_, err := svc.Validate(context.Background(), &model.ValidationRequest{CPF: "11144477736"})
	require.Error(t, err)

	assert.Contains(t, buf.String(), `"reason":"second_check_digit"`)
	assert.Contains(t, buf.String(), "111.***.***-36")
	assert.NotContains(t, buf.String(), "11144477736")
}
