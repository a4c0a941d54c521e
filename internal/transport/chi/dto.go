package chi

// ErrorCode is a machine-readable error code in error responses.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest        ErrorCode = "bad_request"
	CodeInvalidParameters ErrorCode = "invalid_parameters"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// EntityMappingResponse is the body of GET|POST /entity-mapping.
type EntityMappingResponse struct {
	HasMatch bool              `json:"has_match"`
	Doc      map[string]string `json:"doc,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
