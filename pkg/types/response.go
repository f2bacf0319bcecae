package types

// ApiResponse is the envelope every endpoint answers with. Exactly one of
// Data and Error is set, matching Success.
type ApiResponse[T any] struct {
	Success bool    `json:"success"`
	Data    *T      `json:"data,omitempty"`
	Error   *string `json:"error,omitempty"`
}

func NewSuccessResponse[T any](data T) *ApiResponse[T] {
	return &ApiResponse[T]{Success: true, Data: &data}
}

func NewErrorResponse(message string) *ApiResponse[struct{}] {
	return &ApiResponse[struct{}]{Success: false, Error: &message}
}
