package config

import (
	"time"

	"validacpf/pkg/logger"
)

const (
	DefaultPort      = "8080"
	DefaultLogLevel  = logger.INFO
	DefaultLogFormat = logger.JSON

	DefaultRequestTimeout = 5 * time.Second
	DefaultMaxRequestSize = 4 * 1024 // a CPF body is a few dozen bytes

	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
)
