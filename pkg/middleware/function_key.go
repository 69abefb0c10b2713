package middleware

import (
	"crypto/subtle"
	"net/http"

	apperrors "validacpf/pkg/errors"
	httputil "validacpf/pkg/http"
	"validacpf/pkg/logger"
)

const (
	FunctionKeyHeader = "x-functions-key"
	FunctionKeyQuery  = "code"
)

// FunctionKey requires every request to present key, either in the
// x-functions-key header or the code query parameter.
func FunctionKey(key string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := extractFunctionKey(r)

			if presented == "" {
				rejectUnauthorized(w, log, r, "Missing function key")
				return
			}
			if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
				rejectUnauthorized(w, log, r, "Invalid function key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractFunctionKey(r *http.Request) string {
	if key := r.Header.Get(FunctionKeyHeader); key != "" {
		return key
	}
	return r.URL.Query().Get(FunctionKeyQuery)
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Function key verification failed",
		"request_id", RequestID(r.Context()),
		"reason", reason,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
	)

	_ = httputil.WriteError(w, apperrors.Unauthorized("Unauthorized"))
}
