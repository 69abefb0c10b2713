package main

import (
	"validacpf/internal/cpf/handler"
	"validacpf/internal/cpf/service"
	"validacpf/internal/cpf/validator"
	"validacpf/pkg/app"
	"validacpf/pkg/config"
)

const ServiceName = "validacpf"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting CPF validation service")
	cpfService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewCPFHandler(cpfService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.CPFService {
	cpfValidator := validator.NewCPFValidator(cfg.Log)
	cpfService := service.NewCPFService(cpfValidator, cfg.Log)

	cfg.Log.Info("CPF service initialized")
	return cpfService
}
