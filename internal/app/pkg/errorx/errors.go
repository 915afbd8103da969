package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

// 业务哨兵错误
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidImage       = errors.New("image must be a data URL or an http(s) URL")
	ErrEmptyItems         = errors.New("order must contain at least one item")
	ErrAmountTooSmall     = errors.New("amount must be at least 0.50")
	ErrPaymentNotEnabled  = errors.New("payment gateway not configured")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
)

// BusinessError 业务错误结构
type BusinessError struct {
	Code    int
	Message string
	Details []ErrorDetail
	// DevDetails 仅在非生产环境返回给客户端
	DevDetails string
	cause      error
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string
	Info string
}

// Error 实现 error 接口
func (e *BusinessError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap 支持 errors.Is / errors.As
func (e *BusinessError) Unwrap() error {
	return e.cause
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}

// BadRequest 创建 400 业务错误
func BadRequest(message string, details ...ErrorDetail) *BusinessError {
	return &BusinessError{
		Code:    http.StatusBadRequest,
		Message: message,
		Details: details,
	}
}

// Internal 包装意外错误为 500，对外只暴露通用信息
func Internal(message string, cause error) *BusinessError {
	e := &BusinessError{
		Code:    http.StatusInternalServerError,
		Message: message,
		cause:   cause,
	}
	if cause != nil {
		e.DevDetails = fmt.Sprintf("%+v", cause)
	}
	return e
}

// Wrap 将任意错误归类为 BusinessError
func Wrap(err error) *BusinessError {
	if err == nil {
		return nil
	}

	var be *BusinessError
	if errors.As(err, &be) {
		return be
	}

	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		return Internal("internal server error", err)
	}
	return &BusinessError{
		Code:       code,
		Message:    publicMessage(err),
		DevDetails: err.Error(),
		cause:      err,
	}
}

// StatusCode 根据哨兵错误推断 HTTP 状态码
func StatusCode(err error) int {
	var be *BusinessError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &be):
		return be.Code
	case errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrAdminNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidImage),
		errors.Is(err, ErrEmptyItems),
		errors.Is(err, ErrAmountTooSmall),
		errors.Is(err, ErrInvalidSignature):
		return http.StatusBadRequest
	case errors.Is(err, ErrPaymentNotEnabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage 对外信息取匹配到的哨兵错误文本，不暴露包装链
func publicMessage(err error) string {
	for _, s := range []error{
		ErrOrderNotFound, ErrProductNotFound, ErrAdminNotFound,
		ErrInvalidCredentials, ErrUnauthorized, ErrInvalidStatus,
		ErrInvalidImage, ErrEmptyItems, ErrAmountTooSmall,
		ErrPaymentNotEnabled, ErrInvalidSignature,
	} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}
