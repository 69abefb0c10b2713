package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"validacpf/internal/cpf/service"
	httputil "validacpf/pkg/http"
	"validacpf/pkg/logger"
	"validacpf/pkg/model"
)

type CPFHandler struct {
	service service.CPFService
	log     *logger.Logger
}

func NewCPFHandler(service service.CPFService, log *logger.Logger) *CPFHandler {
	return &CPFHandler{
		service: service,
		log:     log,
	}
}

func (h *CPFHandler) Validate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ValidationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Validate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	result, err := h.service.Validate(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Validate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Validate", "operation", "WriteSuccess", "error", err)
	}
}
