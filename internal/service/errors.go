package service

import (
	"errors"
	"fmt"
)

// Kind 业务错误分类，handler 据此映射 HTTP 状态码
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindConflict
	KindUnauthenticated
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error 带分类的业务错误
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validationf 构造参数校验错误
func Validationf(format string, args ...interface{}) error {
	return newError(KindValidation, fmt.Sprintf(format, args...))
}

// KindOf 返回错误分类，非业务错误一律视为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	ErrInvalidCredential = newError(KindValidation, "邮箱或密码错误")
	ErrEmailTaken        = newError(KindConflict, "该邮箱已被注册")
	ErrUserNotFound      = newError(KindNotFound, "用户不存在")
	ErrUnauthenticated   = newError(KindUnauthenticated, "请先登录")

	ErrChannelNotFound  = newError(KindNotFound, "频道不存在")
	ErrChannelNameTaken = newError(KindConflict, "频道名已被占用")

	ErrVideoNotFound   = newError(KindNotFound, "视频不存在")
	ErrCommentNotFound = newError(KindNotFound, "评论不存在")

	ErrNotOwner           = newError(KindForbidden, "没有权限操作该资源")
	ErrNoFieldsToUpdate   = newError(KindValidation, "没有需要更新的字段")
	ErrInvalidReaction    = newError(KindValidation, "无效的态度类型")
	ErrEmptySearchQuery   = newError(KindValidation, "搜索关键词不能为空")
	ErrEmptyCategory      = newError(KindValidation, "分类不能为空")
	ErrUnsupportedImage   = newError(KindValidation, "不支持的图片格式，支持: jpeg, png, gif")
	ErrImageTooLarge      = newError(KindValidation, "图片过大")
	ErrInvalidImageKind   = newError(KindValidation, "无效的图片用途")
	ErrStorageUnavailable = newError(KindUnavailable, "存储服务不可用")
)
