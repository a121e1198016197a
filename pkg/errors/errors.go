package errors

import (
	stderrors "errors"
	"fmt"

	"marginflow/pkg/errors/ecode"
)

// 携带错误码的错误，响应层通过DecodeErr还原出code和message

type Err struct {
	Code    int
	Message string
	Cause   error
}

func (e *Err) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Err) Unwrap() error {
	return e.Cause
}

// WithCode 创建一个带错误码的错误
func WithCode(code int, format string, args ...interface{}) error {
	return &Err{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 为已有错误附加错误码和提示信息
func Wrap(err error, code int, message string) error {
	if err == nil {
		return nil
	}
	return &Err{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// DecodeErr 从错误中解出错误码和提示信息，nil表示成功
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, "OK"
	}
	var e *Err
	if stderrors.As(err, &e) {
		return e.Code, e.Message
	}
	return ecode.Unknown, err.Error()
}

// IsCode 判断错误是否携带指定错误码
func IsCode(err error, code int) bool {
	c, _ := DecodeErr(err)
	return c == code
}
