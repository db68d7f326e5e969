package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ===== Error model =====
//
// ハンドラ層で HTTP ステータスへ変換する共通エラー。
// ドメイン層は常に *Error を返し、生のerrorをレスポンスに流さない。

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func Invalid(msg string) *Error  { return &Error{Code: CodeInvalidArgument, Message: msg} }
func NotFound(msg string) *Error { return &Error{Code: CodeNotFound, Message: msg} }
func Conflict(msg string) *Error { return &Error{Code: CodeConflict, Message: msg} }
func Internal(msg string) *Error { return &Error{Code: CodeInternal, Message: msg} }

func ToHTTPStatus(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		switch ae.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict:
			return http.StatusConflict
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// ===== Response DTO =====

type ErrDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func Body(code Code, msg string) ErrDTO {
	var e ErrDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func From(err error) ErrDTO {
	var ae *Error
	if errors.As(err, &ae) {
		return Body(ae.Code, ae.Message)
	}
	return Body(CodeInternal, err.Error())
}
