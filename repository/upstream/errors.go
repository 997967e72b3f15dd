package upstream

import "errors"

// error taxonomy shared by every backend wrapper

type ErrCode string

const (
	ErrNetwork    ErrCode = "NETWORK_ERROR"
	ErrProtocol   ErrCode = "PROTOCOL_ERROR"
	ErrValidation ErrCode = "VALIDATION_ERROR"
	ErrNotFound   ErrCode = "NOT_FOUND"
)

type codedError struct {
	code  ErrCode
	msg   string
	cause error
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }
func (e codedError) Unwrap() error { return e.cause }

func NewError(code ErrCode, msg string) error {
	return codedError{code: code, msg: msg}
}

func WrapError(code ErrCode, msg string, cause error) error {
	return codedError{code: code, msg: msg, cause: cause}
}

// Code extracts the error code, "" when err carries none.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
