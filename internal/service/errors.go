package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("Invalid request parameters")
	ErrInvalidID          = errors.New("Invalid id")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUserExist          = errors.New("User already exists")
	ErrUserNotFound       = errors.New("User not found")
	ErrUserFollowSelf     = errors.New("You cannot follow yourself")
	ErrPostNotFound       = errors.New("Post not found")
	ErrCommentParent      = errors.New("Parent comment not found")
	ErrImageNotFound      = errors.New("Image not found")
	ErrImageKeyMissing    = errors.New("Image key is required")
	ErrImageKeyForbidden  = errors.New("Access denied")
	ErrFileNotSupported   = errors.New("Only image files are allowed")
	ErrFileTooLarge       = errors.New("Image must be 10MB or smaller")
	ErrFileEmpty          = errors.New("Image is empty")
	ErrSVGNotSupported    = errors.New("SVG images are not supported")
	UnauthorizedError     = errors.New("Unauthorized")
	ForbiddenError        = errors.New("Forbidden")
	UnExpectedError       = errors.New("Internal server error")
)

// ErrAdminPasswordMissing 配置了管理员邮箱但缺少密码，仅在启动时出现
var ErrAdminPasswordMissing = errors.New("admin password is required when admin email is set")

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrInvalidID:          BadRequest,
	ErrInvalidCredentials: Unauthorized,
	ErrUserExist:          BadRequest,
	ErrUserNotFound:       NotFound,
	ErrUserFollowSelf:     BadRequest,
	ErrPostNotFound:       NotFound,
	ErrCommentParent:      BadRequest,
	ErrImageNotFound:      NotFound,
	ErrImageKeyMissing:    BadRequest,
	ErrImageKeyForbidden:  Forbidden,
	ErrFileNotSupported:   BadRequest,
	ErrFileTooLarge:       BadRequest,
	ErrFileEmpty:          BadRequest,
	ErrSVGNotSupported:    BadRequest,
	UnauthorizedError:     Unauthorized,
	ForbiddenError:        Forbidden,
	UnExpectedError:       InternalServerError,
}

// ParamError 带具体原因的参数错误，errors.Is 可匹配 ErrParamInvalid
type ParamError struct {
	Msg string
}

func (e *ParamError) Error() string {
	return e.Msg
}

func (e *ParamError) Unwrap() error {
	return ErrParamInvalid
}

func paramError(err error) error {
	return &ParamError{Msg: err.Error()}
}
