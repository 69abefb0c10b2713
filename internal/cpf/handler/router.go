package handler

import "github.com/julienschmidt/httprouter"

const (
	RouteValidate       = "/api/v1/cpf/validate"
	RouteLegacyValidate = "/api/fnvalidacpf"
)

func (h *CPFHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(RouteValidate, h.Validate)
	router.POST(RouteLegacyValidate, h.Validate)
}
