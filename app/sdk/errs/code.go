package errs

import "net/http"

// ErrCode represents an error code in the system.
type ErrCode struct {
	value int
}

// Value returns the integer value of the error code.
func (ec ErrCode) Value() int {
	return ec.value
}

// String returns the string representation of the error code.
func (ec ErrCode) String() string {
	return codeNames[ec]
}

// MarshalText implement the marshal interface for JSON conversions.
func (ec ErrCode) MarshalText() ([]byte, error) {
	return []byte(ec.String()), nil
}

// Equal provides support for the go-cmp package and testing.
func (ec ErrCode) Equal(ec2 ErrCode) bool {
	return ec.value == ec2.value
}

// The set of error codes that can be used.
var (
	OK                 = ErrCode{value: 0}
	Canceled           = ErrCode{value: 1}
	Unknown            = ErrCode{value: 2}
	InvalidArgument    = ErrCode{value: 3}
	DeadlineExceeded   = ErrCode{value: 4}
	NotFound           = ErrCode{value: 5}
	AlreadyExists      = ErrCode{value: 6}
	PermissionDenied   = ErrCode{value: 7}
	ResourceExhausted  = ErrCode{value: 8}
	FailedPrecondition = ErrCode{value: 9}
	Aborted            = ErrCode{value: 10}
	OutOfRange         = ErrCode{value: 11}
	Unimplemented      = ErrCode{value: 12}
	Internal           = ErrCode{value: 13}
	Unavailable        = ErrCode{value: 14}
	DataLoss           = ErrCode{value: 15}
	Unauthenticated    = ErrCode{value: 16}
	InternalOnlyLog    = ErrCode{value: 17}
)

var codeNames = map[ErrCode]string{
	OK:                 "ok",
	Canceled:           "canceled",
	Unknown:            "unknown",
	InvalidArgument:    "invalid_argument",
	DeadlineExceeded:   "deadline_exceeded",
	NotFound:           "not_found",
	AlreadyExists:      "already_exists",
	PermissionDenied:   "permission_denied",
	ResourceExhausted:  "resource_exhausted",
	FailedPrecondition: "failed_precondition",
	Aborted:            "aborted",
	OutOfRange:         "out_of_range",
	Unimplemented:      "unimplemented",
	Internal:           "internal",
	Unavailable:        "unavailable",
	DataLoss:           "data_loss",
	Unauthenticated:    "unauthenticated",
	InternalOnlyLog:    "internal_only_log",
}

var httpStatus = map[ErrCode]int{
	OK:                 http.StatusOK,
	Canceled:           http.StatusGatewayTimeout,
	Unknown:            http.StatusInternalServerError,
	InvalidArgument:    http.StatusBadRequest,
	DeadlineExceeded:   http.StatusGatewayTimeout,
	NotFound:           http.StatusNotFound,
	AlreadyExists:      http.StatusConflict,
	PermissionDenied:   http.StatusForbidden,
	ResourceExhausted:  http.StatusTooManyRequests,
	FailedPrecondition: http.StatusBadRequest,
	Aborted:            http.StatusConflict,
	OutOfRange:         http.StatusBadRequest,
	Unimplemented:      http.StatusNotImplemented,
	Internal:           http.StatusInternalServerError,
	Unavailable:        http.StatusServiceUnavailable,
	DataLoss:           http.StatusInternalServerError,
	Unauthenticated:    http.StatusUnauthorized,
	InternalOnlyLog:    http.StatusInternalServerError,
}
