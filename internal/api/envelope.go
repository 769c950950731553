package api

import (
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// SuccessEnvelope wraps every successful response body.
type SuccessEnvelope struct {
	Info any `json:"info"`
}

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps response bodies: {"info": ...} on success and
// {"error": ..., "code": ...} on failure.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch body := v.(type) {
	case SuccessEnvelope, ErrorEnvelope:
		return v, nil
	case *APIError:
		return ErrorEnvelope{Error: body.Message, Code: body.Code, Details: body.Details}, nil
	case error:
		var apiErr *APIError
		if errors.As(body, &apiErr) {
			return ErrorEnvelope{Error: apiErr.Message, Code: apiErr.Code, Details: apiErr.Details}, nil
		}
		return ErrorEnvelope{Error: body.Error()}, nil
	}

	if !strings.HasPrefix(status, "2") {
		return v, nil
	}
	if v == nil {
		return SuccessEnvelope{Info: struct{}{}}, nil
	}
	return SuccessEnvelope{Info: v}, nil
}
