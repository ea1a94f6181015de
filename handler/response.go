package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"genki-chat/internal/usecase"
)

const headerCorrelationID = "X-Correlation-Id"

// corsHeaders returns a fresh header map; responses mutate it.
func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, DELETE, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization",
		"Content-Type":                 "application/json",
	}
}

// correlationID echoes the caller's id when present (any header casing)
// or mints one so every response is traceable.
func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, headerCorrelationID) && v != "" {
			return v
		}
	}
	return uuid.NewString()
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func respond(status int, corrID string, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"INTERNAL_ERROR"}`)
	}
	headers := corsHeaders()
	headers[headerCorrelationID] = corrID
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}
}

// respondError maps the usecase taxonomy onto status codes. Anything
// unrecognized is a generic internal error so callers never see an
// unhandled fault.
func respondError(err error, corrID string) events.APIGatewayProxyResponse {
	status := http.StatusInternalServerError
	code := usecase.ErrorInternal
	detail := ""

	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		code = ucErr.Code
		detail = ucErr.Reason
		switch ucErr.Code {
		case usecase.ErrorInvalidInput:
			status = http.StatusBadRequest
		case usecase.ErrorUnauthenticated:
			status = http.StatusUnauthorized
		case usecase.ErrorUpstream:
			status = http.StatusBadGateway
		}
	}
	return respond(status, corrID, errorResponse{Error: string(code), Detail: detail})
}

func respondOptions(corrID string) events.APIGatewayProxyResponse {
	return respond(http.StatusOK, corrID, map[string]string{"message": "OK"})
}

func respondMethodNotAllowed(method, corrID string) events.APIGatewayProxyResponse {
	return respond(http.StatusMethodNotAllowed, corrID, errorResponse{
		Error:  string(usecase.ErrorInvalidInput),
		Detail: "unsupported method " + method,
	})
}

func unauthenticated(err error) *usecase.Error {
	return &usecase.Error{Code: usecase.ErrorUnauthenticated, Reason: "invalid_token", Err: err}
}
