package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// handlerはStatusとMessageをそのまま返す
type HTTPError struct {
	Status  int
	Message string
	// ログ用の元エラー（レスポンスには出さない）
	Err error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// カートが空のcheckout
var ErrEmptyCart = &HTTPError{Status: http.StatusNotFound, Message: "empty cart"}

func IsEmptyCart(err error) bool {
	he, ok := AsHTTPError(err)
	return ok && he.Status == ErrEmptyCart.Status && he.Message == ErrEmptyCart.Message
}

func errNotFound(what string) error {
	return NewHTTPError(http.StatusNotFound, what+" not found")
}

func errInvalid(msg string) error {
	return NewHTTPError(http.StatusBadRequest, msg)
}

func errForbidden(msg string) error {
	return NewHTTPError(http.StatusForbidden, msg)
}

func errConflict(msg string) error {
	return NewHTTPError(http.StatusConflict, msg)
}

func dbError(err error) error {
	return &HTTPError{Status: http.StatusInternalServerError, Message: "db error", Err: err}
}

func internalError(err error) error {
	return &HTTPError{Status: http.StatusInternalServerError, Message: "internal error", Err: err}
}
