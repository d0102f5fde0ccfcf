// Package errs provides types and support related to web error functionality.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
)

// Error represents an error in the system. APICode and Friendly are what the
// client sees besides the message.
type Error struct {
	Code     ErrCode `json:"code"`
	APICode  string  `json:"apiCode"`
	Message  string  `json:"message"`
	Friendly string  `json:"friendlyMessage"`
	ErrorID  string  `json:"errorId,omitempty"`
	Fields   any     `json:"fields,omitempty"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
}

// New constructs an error based on an app error. An error that already is an
// *Error is returned unchanged so its API code survives wrapping layers.
func New(code ErrCode, err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		APICode:  defaultAPICodes[code],
		Message:  err.Error(),
		Friendly: defaultFriendly[code],
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Errorf constructs an error based on a error message.
func Errorf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		APICode:  defaultAPICodes[code],
		Message:  fmt.Sprintf(format, v...),
		Friendly: defaultFriendly[code],
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// NewAPI constructs an error carrying a machine readable API code and a
// message meant for end users.
func NewAPI(code ErrCode, apiCode string, friendly string, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		APICode:  apiCode,
		Message:  err.Error(),
		Friendly: friendly,
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Encode implements the encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

// HTTPStatus implements the web package httpStatus interface so the
// web framework can use the correct http status.
func (e *Error) HTTPStatus() int {
	return httpStatus[e.Code]
}

// Equal provides support for the go-cmp package and testing.
func (e *Error) Equal(e2 *Error) bool {
	return e.Code == e2.Code && e.APICode == e2.APICode && e.Message == e2.Message
}

// =============================================================================

// IsError tests the concrete error is of the Error type.
func IsError(err error) bool {
	var er *Error
	return errors.As(err, &er)
}

// GetError returns a copy of the Error pointer.
func GetError(err error) *Error {
	var er *Error
	if !errors.As(err, &er) {
		return nil
	}
	return er
}
