package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Authentication/Authorization errors
const (
	// ErrCodeNoToken indicates the Authorization header is missing or malformed.
	ErrCodeNoToken ErrorCode = "NO_TOKEN"
	// ErrCodeInvalidToken indicates the identity token failed verification.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeOwnershipMismatch indicates the declared owner does not match the verified identity.
	ErrCodeOwnershipMismatch ErrorCode = "OWNERSHIP_MISMATCH"
)

// Validation errors
const (
	// ErrCodeMissingFile indicates the multipart body carried no file part.
	ErrCodeMissingFile ErrorCode = "MISSING_FILE"
	// ErrCodeInvalidInput indicates the request body could not be parsed or validated.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMethodNotAllowed indicates the HTTP method is not supported on the route.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// ErrCodeNotFound indicates no route matched the request path.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Upstream/internal errors
const (
	// ErrCodeUpstreamRejected indicates the remote document API reported a failure.
	ErrCodeUpstreamRejected ErrorCode = "UPSTREAM_REJECTED"
	// ErrCodeInternal indicates an unexpected error inside the relay.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
