package printing

import "fmt"

// RenderError represents a failure in the rendering pipeline outside the
// composer itself, which never fails. Archival and serialization report
// through this type.
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for pipeline failures
const (
	ErrCodeArchiveFailed  = "ARCHIVE_FAILED"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
