package ginx

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"kcstudio/storefront/internal/app/pkg/errorx"
)

// Response 统一响应结构
type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data,omitempty"`
}

// Meta 元数据
type Meta struct {
	Code       int           `json:"code" example:"200"`
	Message    string        `json:"message" example:"OK"`
	Details    []ErrorDetail `json:"details,omitempty"`
	DevDetails string        `json:"dev_details,omitempty"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string `json:"path" example:"customer.whatsapp"`
	Info string `json:"info" example:"whatsapp is required"`
}

const devDetailsKey = "ginx.dev_details"

// EnableDevDetails 标记当前请求允许返回 dev_details
func EnableDevDetails(c *gin.Context) {
	c.Set(devDetailsKey, true)
}

func devDetailsEnabled(c *gin.Context) bool {
	return c.GetBool(devDetailsKey)
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Meta: Meta{
			Code:    200,
			Message: "OK",
		},
		Data: data,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Meta: Meta{
			Code:    201,
			Message: "Created",
		},
		Data: data,
	})
}

// Error 错误响应（400/500）
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, Response{
		Meta: Meta{
			Code:    httpCode,
			Message: message,
		},
	})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpCode int, message string, details []ErrorDetail) {
	c.JSON(httpCode, Response{
		Meta: Meta{
			Code:    httpCode,
			Message: message,
			Details: details,
		},
	})
}

// Fail 按错误类型渲染响应，dev_details 只在允许时附带
func Fail(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		BadRequestWithValidation(c, verrs)
		return
	}

	be := errorx.Wrap(err)
	meta := Meta{
		Code:    be.Code,
		Message: be.Message,
	}
	for _, d := range be.Details {
		meta.Details = append(meta.Details, ErrorDetail{Path: d.Path, Info: d.Info})
	}
	if devDetailsEnabled(c) {
		meta.DevDetails = be.DevDetails
	}
	c.AbortWithStatusJSON(be.Code, Response{Meta: meta})
}

// BadRequest 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// BadRequestWithValidation 400 错误（带验证详情）
func BadRequestWithValidation(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]ErrorDetail, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details = append(details, ErrorDetail{
				Path: fieldPath(fieldErr),
				Info: getValidationErrorMessage(fieldErr),
			})
		}
		ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", details)
		return
	}

	BadRequest(c, err.Error())
}

// Unauthorized 401 错误
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
		Meta: Meta{
			Code:    http.StatusUnauthorized,
			Message: message,
		},
	})
}

// NotFound 404 错误
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500 错误
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// UseJSONFieldNames 让校验错误使用 json 标签名，启动时调用一次
func UseJSONFieldNames() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	}
}

// fieldPath 去掉顶层请求结构体名，如 CreateOrderRequest.customer.whatsapp -> customer.whatsapp
func fieldPath(fieldErr validator.FieldError) string {
	ns := fieldErr.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fieldErr.Field()
}

// getValidationErrorMessage 根据验证错误类型返回友好的错误消息
func getValidationErrorMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "email":
		return fieldErr.Field() + " must be a valid email address"
	case "min":
		return fieldErr.Field() + " must be at least " + fieldErr.Param()
	case "max":
		return fieldErr.Field() + " must be at most " + fieldErr.Param()
	case "gte":
		return fieldErr.Field() + " must be greater than or equal to " + fieldErr.Param()
	case "gt":
		return fieldErr.Field() + " must be greater than " + fieldErr.Param()
	case "oneof":
		return fieldErr.Field() + " must be one of [" + fieldErr.Param() + "]"
	default:
		return fieldErr.Field() + " is invalid"
	}
}
