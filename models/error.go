package models

import "fmt"

// ErrorKind is the discriminated union of failure modes the core can
// surface. Every operation either succeeds or fails with exactly one
// of these kinds.
type ErrorKind string

const (
	KindInvalidArgument     ErrorKind = "InvalidArgument"
	KindRunOutOfFreeSpace   ErrorKind = "RunOutOfFreeSpace"
	KindNotEmbeddedBySystem ErrorKind = "NotEmbeddedBySystem"
	KindRequirePassword     ErrorKind = "RequirePassword"
	KindWrongPassword       ErrorKind = "WrongPassword"
	KindDataCorrupted       ErrorKind = "DataCorrupted"
	KindInternal            ErrorKind = "Internal"
)

// Response codes, stable two-digit ASCII strings surfaced across the
// HTTP boundary. Code 05 and 08 are intentionally distinct: the Python
// source collided REQUIRE_PASSWORD and INVALID_REQUEST_DATA on "05".
const (
	CodeSuccess             = "00"
	CodeRunOutOfFreeSpace   = "01"
	CodeNotEmbeddedBySystem = "02"
	CodeAlreadyEmbedded     = "03"
	CodeInternal            = "04"
	CodeInvalidRequest      = "05"
	CodeWrongPassword       = "06"
	CodeDataCorrupted       = "07"
	CodeRequirePassword     = "08"
)

var defaultMessages = map[ErrorKind]string{
	KindInvalidArgument:     "invalid argument",
	KindRunOutOfFreeSpace:   "not enough room in the carrier for this payload",
	KindNotEmbeddedBySystem: "no embedded payload was found in this carrier",
	KindRequirePassword:     "a passphrase is required to extract this payload",
	KindWrongPassword:       "the supplied passphrase does not match",
	KindDataCorrupted:       "embedded data is corrupted or has been tampered with",
	KindInternal:            "internal error",
}

var kindToCode = map[ErrorKind]string{
	KindInvalidArgument:     CodeInvalidRequest,
	KindRunOutOfFreeSpace:   CodeRunOutOfFreeSpace,
	KindNotEmbeddedBySystem: CodeNotEmbeddedBySystem,
	KindRequirePassword:     CodeRequirePassword,
	KindWrongPassword:       CodeWrongPassword,
	KindDataCorrupted:       CodeDataCorrupted,
	KindInternal:            CodeInternal,
}

// StegoError is the single error type threaded from the core packages
// up to the HTTP edge. It carries a stable code alongside the kind so
// handlers never need to re-derive one from the other.
type StegoError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *StegoError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds a StegoError for kind, using the default message
// unless msg is supplied.
func NewError(kind ErrorKind, msg string) *StegoError {
	if msg == "" {
		msg = defaultMessages[kind]
	}
	return &StegoError{Kind: kind, Code: kindToCode[kind], Message: msg}
}

func NewErrorf(kind ErrorKind, format string, args ...interface{}) *StegoError {
	return NewError(kind, fmt.Sprintf(format, args...))
}

// AsStegoError unwraps err into a *StegoError, wrapping unknown errors
// as KindInternal so callers always have a code to report.
func AsStegoError(err error) *StegoError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*StegoError); ok {
		return se
	}
	return NewError(KindInternal, err.Error())
}
