package fic

import (
	"errors"
	"fmt"
)

// Application error codes returned by the API inside an otherwise
// well-formed JSON body.
const (
	ErrorCodeUnauthorized              = 1000
	ErrorCodeMandatoryParameterMissing = 1001
	ErrorCodeBadRequest                = 1100
	ErrorCodeLicenseExpired            = 2000
	ErrorCodeRateLimitExceeded         = 2002
	ErrorCodeBlocked                   = 2004
	ErrorCodeLicensePlanInsufficient   = 2005
	ErrorCodeForbidden                 = 2006
	ErrorCodeNotFound                  = 4000
	ErrorCodeLimitExceeded             = 4001
	ErrorCodeIncorrectData             = 5000
)

// ErrorKind classifies an application-level API error.
type ErrorKind string

// Error kinds produced by ClassifyCode.
const (
	KindUnauthorized              ErrorKind = "unauthorized"
	KindMandatoryParameterMissing ErrorKind = "mandatory parameter missing"
	KindBadRequest                ErrorKind = "bad request"
	KindLicenseExpired            ErrorKind = "license expired"
	KindRateLimitExceeded         ErrorKind = "rate limit exceeded"
	KindBlocked                   ErrorKind = "blocked"
	KindLicensePlanInsufficient   ErrorKind = "license plan insufficient"
	KindForbidden                 ErrorKind = "forbidden"
	KindNotFound                  ErrorKind = "not found"
	KindLimitExceeded             ErrorKind = "limit exceeded"
	KindIncorrectData             ErrorKind = "incorrect data"
	KindRequestError              ErrorKind = "request error"
)

var errorKinds = map[int]ErrorKind{
	ErrorCodeUnauthorized:              KindUnauthorized,
	ErrorCodeMandatoryParameterMissing: KindMandatoryParameterMissing,
	ErrorCodeBadRequest:                KindBadRequest,
	ErrorCodeLicenseExpired:            KindLicenseExpired,
	ErrorCodeRateLimitExceeded:         KindRateLimitExceeded,
	ErrorCodeBlocked:                   KindBlocked,
	ErrorCodeLicensePlanInsufficient:   KindLicensePlanInsufficient,
	ErrorCodeForbidden:                 KindForbidden,
	ErrorCodeNotFound:                  KindNotFound,
	ErrorCodeLimitExceeded:             KindLimitExceeded,
	ErrorCodeIncorrectData:             KindIncorrectData,
}

// ClassifyCode maps an application error code to its kind. Unknown codes
// map to the generic KindRequestError.
func ClassifyCode(code int) ErrorKind {
	if kind, ok := errorKinds[code]; ok {
		return kind
	}

	return KindRequestError
}

// RequestError represents an application-level failure: the transport
// succeeded (HTTP 200, JSON body) but the body carried an error marker.
type RequestError struct {
	Code    int
	Kind    ErrorKind
	Message string
	Method  string
	Path    string
}

// NewRequestError builds a classified RequestError from an error response.
func NewRequestError(code int, message, method, path string) *RequestError {
	if message == "" {
		message = "unknown error"
	}

	return &RequestError{
		Code:    code,
		Kind:    ClassifyCode(code),
		Message: message,
		Method:  method,
		Path:    path,
	}
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("error while executing request: %s (code: %d)", e.Message, e.Code)
}

// BadResponseError represents a transport-level failure: a non-200 status,
// a missing application/json content type, or an undecodable body.
type BadResponseError struct {
	Method      string
	Path        string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Error implements the error interface.
func (e *BadResponseError) Error() string {
	return fmt.Sprintf("bad response for %s %s: status %d, content type %q", e.Method, e.Path, e.StatusCode, e.ContentType)
}

// NotFoundError is raised locally when a fetch-by-id returns an empty
// result set. It is distinct from the server-classified not found error
// (code 4000), which surfaces as a RequestError.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource id #%s has not been found", e.ID)
}

// ValidationError is raised locally, before any network call, when an
// entity or operand fails a serialization precondition.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Common validation errors.
var (
	ErrSubjectNotDefined      = NewValidationError("subject is not defined")
	ErrNoProductsAdded        = NewValidationError("no products added")
	ErrCurrencyMismatch       = NewValidationError("currencies must be identical")
	ErrDivisionByZero         = NewValidationError("division by zero")
	ErrAmountNotNumeric       = NewValidationError("amount must be a numeric value")
	ErrOperandNotNumeric      = NewValidationError("operand must be a numeric value")
	ErrEmptyRatios            = NewValidationError("cannot allocate to none, ratios cannot be an empty array")
	ErrNegativeRatio          = NewValidationError("cannot allocate to none, ratio must be zero or positive")
	ErrNonPositiveRatioSum    = NewValidationError("cannot allocate to none, sum of ratios must be greater than zero")
	ErrNonPositiveTargetCount = NewValidationError("cannot allocate to none, target must be greater than zero")
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrCredentialsRequired = errors.New("API uid and key are required")
	ErrNoMoreItems         = errors.New("no more items")
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrInvalidJSON         = errors.New("cannot decode JSON")
)

// IsNotFound checks whether the error is a not found condition, either the
// local empty-result error or the server-classified one.
func IsNotFound(err error) bool {
	notFound := &NotFoundError{}
	if errors.As(err, &notFound) {
		return true
	}

	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.Kind == KindNotFound
	}

	return false
}

// IsUnauthorized checks whether the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.Kind == KindUnauthorized
	}

	return false
}

// IsForbidden checks whether the error is a forbidden error.
func IsForbidden(err error) bool {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.Kind == KindForbidden
	}

	return false
}

// IsRateLimited checks whether the error is a rate limit error.
func IsRateLimited(err error) bool {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.Kind == KindRateLimitExceeded
	}

	return false
}

// IsValidation checks whether the error is a local validation error.
func IsValidation(err error) bool {
	validation := &ValidationError{}

	return errors.As(err, &validation)
}
