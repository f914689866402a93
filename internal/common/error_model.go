package common

import "errors"

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeForbidden    ErrorCode = "forbidden"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeInternal     ErrorCode = "internal"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewServiceError(code ErrorCode, message string) error {
	return &ServiceError{Code: code, Message: message}
}

// NewValidationError 参数不合法
func NewValidationError(message string) error {
	return NewServiceError(ErrorCodeValidation, message)
}

// NewUnauthorizedError 未登录
func NewUnauthorizedError(message string) error {
	return NewServiceError(ErrorCodeUnauthorized, message)
}

// NewForbiddenError 已登录但无权操作
func NewForbiddenError(message string) error {
	return NewServiceError(ErrorCodeForbidden, message)
}

// NewNotFoundError 目标不存在
func NewNotFoundError(message string) error {
	return NewServiceError(ErrorCodeNotFound, message)
}

// NewInternalError 持久化或其它系统故障
func NewInternalError(message string) error {
	return NewServiceError(ErrorCodeInternal, message)
}

func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

// IsCode 判断 err 是否为指定错误码的业务错误
func IsCode(err error, code ErrorCode) bool {
	serviceErr, ok := AsServiceError(err)
	return ok && serviceErr.Code == code
}
