package errs

import (
	stderr "errors"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// CodeError is the error shape handlers serialize back to clients:
// a stable numeric code, a short message and an optional detail string.
type CodeError struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Detail string `json:"detail,omitempty"`
}

func NewCodeError(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

func (e *CodeError) Error() string {
	s := strconv.Itoa(e.Code) + " " + e.Msg
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	return s
}

func (e *CodeError) WithDetail(detail string) *CodeError {
	d := detail
	if e.Detail != "" {
		d = e.Detail + ", " + detail
	}
	return &CodeError{Code: e.Code, Msg: e.Msg, Detail: d}
}

// WrapMsg attaches key/value detail and a stack to a copy of the error.
func (e *CodeError) WrapMsg(msg string, kv ...any) error {
	out := &CodeError{Code: e.Code, Msg: e.Msg, Detail: e.Detail}
	if msg != "" || len(kv) > 0 {
		detail := toString(msg, kv)
		if out.Detail == "" {
			out.Detail = detail
		} else {
			out.Detail += ", " + detail
		}
	}
	return errors.WithStack(out)
}

func (e *CodeError) Is(target error) bool {
	var ce *CodeError
	if !stderr.As(target, &ce) {
		return false
	}
	return ce.Code == e.Code
}

// Unwrap digs through pkg/errors wrapping back to the CodeError, if any.
func Unwrap(err error) *CodeError {
	var ce *CodeError
	if stderr.As(err, &ce) {
		return ce
	}
	return nil
}

func New(msg string) error { return errors.New(msg) }

func WrapMsg(err error, msg string, kv ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, toString(msg, kv))
}

func toString(msg string, kv []any) string {
	s := msg
	for i := 0; i+1 < len(kv); i += 2 {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("%v=%v", kv[i], kv[i+1])
	}
	if len(kv)%2 == 1 {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("%v", kv[len(kv)-1])
	}
	return s
}
