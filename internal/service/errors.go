package service

import "errors"

// 错误种类在边界层统一映射成 HTTP 状态码
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicateAccount
	KindDuplicateEmail
	KindUserNotFound
	KindInvalidCredentials
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "service error"
}

func (e *Error) Unwrap() error { return e.Err }

func fail(k Kind, msg string) error { return &Error{Kind: k, Msg: msg} }

func internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf 非 *Error 一律按 Internal 处理
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
