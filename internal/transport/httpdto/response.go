// Package httpdto defines the request and response shapes of the HTTP API.
package httpdto

// Response is the envelope every endpoint answers with. Auth errors carry
// the machine-readable codes of the error taxonomy (DUPLICATE_ACCOUNT,
// INVALID_CREDENTIALS, INVALID_TOKEN) in Code.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func NewSuccessResponse[T any](data T) Response[T] {
	return Response[T]{
		Success: true,
		Data:    data,
	}
}

func NewErrorResponse(err string, code string) Response[any] {
	return Response[any]{
		Success: false,
		Error:   err,
		Code:    code,
	}
}
