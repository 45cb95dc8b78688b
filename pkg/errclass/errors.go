package errclass

import "fmt"

// Error is a stable, machine-readable error class.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// WithMessage returns a new Error with the same Code but a specific message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg}
}

// WithMessagef returns a new Error with a formatted message.
func (e *Error) WithMessagef(format string, args ...any) *Error {
	return &Error{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// Stable error classes.
var (
	ErrDatasetCorrupt    = &Error{Code: "E_DATASET_CORRUPT"}
	ErrPlatformUnknown   = &Error{Code: "E_PLATFORM_UNKNOWN"}
	ErrPathUnrecognized  = &Error{Code: "E_PATH_UNRECOGNIZED"}
	ErrDecompressFailed  = &Error{Code: "E_DECOMPRESS_FAILED"}
	ErrConfigInvalid     = &Error{Code: "E_CONFIG_INVALID"}
	ErrFormatUnsupported = &Error{Code: "E_FORMAT_UNSUPPORTED"}
)
