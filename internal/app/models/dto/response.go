package dto

// ErrorResponse is the standard error body for every endpoint.
type ErrorResponse struct {
	Error string `json:"error" example:"club not found"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// MessageResponse represents a standard success response for API endpoints
type MessageResponse struct {
	Message string `json:"message" example:"operation completed"`
}

// PaginationInfo carries page metadata for list responses
type PaginationInfo struct {
	CurrentPage int   `json:"page" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"limit" example:"20"`
	TotalItems  int64 `json:"total" example:"93"`
}
