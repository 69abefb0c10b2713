package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "validacpf/pkg/errors"
)

var errTrailingData = errors.New("unexpected data after JSON value")

// DecodeJSON decodes exactly one JSON value from the request body into v;
// anything but whitespace after it is rejected. An oversized body yields a
// RequestTooLarge AppError; any other failure, including an empty body, yields
// an InvalidCPF AppError.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return apperrors.InvalidCPF(io.EOF)
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return classifyDecodeError(err)
	}

	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return classifyDecodeError(err)
	default:
		return apperrors.InvalidCPF(errTrailingData)
	}
}

func classifyDecodeError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.RequestTooLarge(maxErr.Limit)
	}
	return apperrors.InvalidCPF(err)
}
