package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure independently of its message.
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrCancelled    ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Module errors
	ErrModuleParse       ErrorCode = "MODULE_PARSE"
	ErrModuleInvalid     ErrorCode = "MODULE_INVALID"
	ErrInvalidConstraint ErrorCode = "INVALID_CONSTRAINT"
	ErrOverlappingRule   ErrorCode = "OVERLAPPING_RULE"
	ErrModuleExists      ErrorCode = "MODULE_EXISTS"
	ErrModuleNotFound    ErrorCode = "MODULE_NOT_FOUND"

	// Scan errors
	ErrDirectoryUnreadable ErrorCode = "DIRECTORY_UNREADABLE"

	// Operation errors
	ErrPreflight    ErrorCode = "PREFLIGHT"
	ErrMoveConflict ErrorCode = "MOVE_CONFLICT"
	ErrArchive      ErrorCode = "ARCHIVE"

	// Contribution errors
	ErrNoManualTags ErrorCode = "NO_MANUAL_TAGS"
	ErrSubmit       ErrorCode = "SUBMIT"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrFileRemove   ErrorCode = "FILE_REMOVE"
	ErrFileMove     ErrorCode = "FILE_MOVE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// LodestoneError carries a stable code next to the human message so
// callers and tests can branch on the code alone.
type LodestoneError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *LodestoneError) Error() string {
	msg := "[" + string(e.Code) + "] " + e.Message
	if e.Wrapped == nil {
		return msg
	}
	return msg + ": " + e.Wrapped.Error()
}

func (e *LodestoneError) Unwrap() error { return e.Wrapped }

// Is reports whether target is a LodestoneError with the same code.
func (e *LodestoneError) Is(target error) bool {
	other, ok := as(target)
	return ok && other.Code == e.Code
}

func build(code ErrorCode, message string, wrapped error) *LodestoneError {
	return &LodestoneError{Code: code, Message: message, Details: map[string]interface{}{}, Wrapped: wrapped}
}

func New(code ErrorCode, message string) *LodestoneError {
	return build(code, message, nil)
}

func Newf(code ErrorCode, format string, args ...interface{}) *LodestoneError {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches a code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *LodestoneError {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LodestoneError {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

func (e *LodestoneError) WithDetail(key string, value interface{}) *LodestoneError {
	return e.WithDetails(map[string]interface{}{key: value})
}

func (e *LodestoneError) WithDetails(details map[string]interface{}) *LodestoneError {
	if e.Details == nil {
		e.Details = make(map[string]interface{}, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

func as(err error) (*LodestoneError, bool) {
	var le *LodestoneError
	ok := errors.As(err, &le)
	return le, ok
}

// IsErrorCode reports whether the outermost LodestoneError in err's chain
// has code.
func IsErrorCode(err error, code ErrorCode) bool {
	le, ok := as(err)
	return ok && le.Code == code
}

// GetErrorCode returns ErrUnknown for errors without a code.
func GetErrorCode(err error) ErrorCode {
	if le, ok := as(err); ok {
		return le.Code
	}
	return ErrUnknown
}

func GetErrorDetails(err error) map[string]interface{} {
	if le, ok := as(err); ok {
		return le.Details
	}
	return nil
}

var families = map[string][]ErrorCode{
	"module": {ErrModuleParse, ErrModuleInvalid, ErrInvalidConstraint,
		ErrOverlappingRule, ErrModuleExists, ErrModuleNotFound},
	"scan": {ErrDirectoryUnreadable},
	"operation": {ErrPreflight, ErrMoveConflict, ErrArchive, ErrCancelled,
		ErrFileNotFound, ErrFileAccess, ErrFileCreate, ErrFileWrite,
		ErrFileRemove, ErrFileMove, ErrDirCreate},
	"contribution": {ErrNoManualTags, ErrSubmit},
	"config":       {ErrConfigLoad, ErrConfigParse, ErrConfigValid},
}

var familyOf = func() map[ErrorCode]string {
	m := make(map[ErrorCode]string)
	for family, codes := range families {
		for _, c := range codes {
			m[c] = family
		}
	}
	return m
}()

// Family groups codes into module, scan, operation, contribution and
// config problems. Anything else is "general".
func Family(code ErrorCode) string {
	if f, ok := familyOf[code]; ok {
		return f
	}
	return "general"
}
