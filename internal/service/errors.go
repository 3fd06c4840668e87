package service

import "errors"

// 服务层错误哨兵，handler 层映射为对应 HTTP 状态码
var (
	ErrNotFound          = errors.New("resource not found")
	ErrValidation        = errors.New("validation failed")
	ErrDuplicate         = errors.New("resource already exists")
	ErrLastSuperAdmin    = errors.New("cannot remove the last super admin")
	ErrUploadTooLarge    = errors.New("upload exceeds size limit")
	ErrUploadUnsupported = errors.New("unsupported file type")
	ErrSignatureInvalid  = errors.New("invalid or expired signature")
)

// ValidationError 带字段说明的校验错误，Is(ErrValidation) 成立
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError 创建校验错误
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
