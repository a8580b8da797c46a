package response

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = http.StatusOK
	Created             = http.StatusCreated
	BadRequest          = http.StatusBadRequest
	Unauthorized        = http.StatusUnauthorized
	Forbidden           = http.StatusForbidden
	NotFound            = http.StatusNotFound
	TooLarge            = http.StatusRequestEntityTooLarge
	InternalServerError = http.StatusInternalServerError
)

// Success 成功返回封装
func Success(c *gin.Context, data interface{}) {
	SuccessMsg(c, "success", data)
}

// SuccessMsg 带提示信息的成功返回
func SuccessMsg(c *gin.Context, message string, data interface{}) {
	c.JSON(Ok, dto.Response{
		Code:    Ok,
		Message: message,
		Data:    data,
	})
}

// CreatedMsg 资源创建成功
func CreatedMsg(c *gin.Context, message string, data interface{}) {
	c.JSON(Created, dto.Response{
		Code:    Created,
		Message: message,
		Data:    data,
	})
}

// Fail 失败返回封装，HTTP 状态码与业务码一致
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, dto.Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// Abort 失败返回并中断后续处理
func Abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, dto.Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var pe *service.ParamError
	if errors.As(err, &pe) {
		Fail(c, BadRequest, pe.Msg)
		return
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, service.ErrParamInvalid.Error())
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		Fail(c, TooLarge, "Request body too large")
		return
	}

	if isJSONError(err) {
		Fail(c, BadRequest, "Invalid JSON body")
		return
	}

	for target, code := range service.ErrorMap {
		if errors.Is(err, target) {
			Fail(c, code, target.Error())
			return
		}
	}

	log.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "err", err)
	Fail(c, InternalServerError, service.UnExpectedError.Error())
}

func isJSONError(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var stdTypeErr *stdjson.UnmarshalTypeError
	var stdSyntaxErr *stdjson.SyntaxError
	return errors.As(err, &typeErr) || errors.As(err, &syntaxErr) ||
		errors.As(err, &stdTypeErr) || errors.As(err, &stdSyntaxErr)
}
