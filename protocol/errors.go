package protocol

import "fmt"

// errorMessages maps the server's symbolic failure vocabulary to
// human-readable descriptions. The table is the full closed set of failure
// types the server can report.
var errorMessages = map[string]string{
	"ERROR_GENERIC":               "Generic error.",
	"ERROR_TYPE":                  "Malformed request: the message type is incorrect.",
	"TOO_MANY_CLIENTS":            "Too many clients connected to the server.",
	"IMAGE_DATA_TOO_BIG":          "Image data size too big.",
	"IMAGE_NOT_INDEXED":           "Image not indexed.",
	"IMAGE_NOT_DECODED":           "The query image could not be decoded.",
	"IMAGE_SIZE_TOO_SMALL":        "Image size too small.",
	"IMAGE_NOT_FOUND":             "Image not found.",
	"IMAGE_TAG_NOT_FOUND":         "Image tag not found.",
	"INDEX_NOT_FOUND":             "Index not found.",
	"INDEX_TAGS_NOT_FOUND":        "Index tags not found.",
	"INDEX_NOT_WRITTEN":           "Index not written.",
	"INDEX_TAGS_NOT_WRITTEN":      "Index tags not written.",
	"IMAGE_DOWNLOADER_HTTP_ERROR": "An HTTP error occurred when downloading the image.",
}

// ErrorMessage returns the description for a symbolic failure type. Types
// outside the known vocabulary, including an empty one, fall back to an
// undefined-error message embedding the raw code.
func ErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	if code == "" {
		code = "(null)"
	}
	return fmt.Sprintf("Undefined error (%s)", code)
}

// DomainError reports a failure the server expressed through its own type
// vocabulary rather than an HTTP status.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError builds a DomainError for a server-reported failure type.
func NewDomainError(code string) *DomainError {
	return &DomainError{Code: code, Message: ErrorMessage(code)}
}

// DecodeError reports a response body that could not be interpreted under
// the wire contract: invalid JSON, a missing discriminant, or a verified
// reply lacking a mandatory field.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Verify checks a reply's discriminant against the success type expected by
// the operation. On mismatch the actual type doubles as the taxonomy key
// for the returned DomainError.
func Verify(expected string, env Envelope) error {
	if env.Type == expected {
		return nil
	}
	return NewDomainError(env.Type)
}
