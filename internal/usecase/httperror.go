package usecase

import (
	"errors"
	"fmt"
)

// クライアントに返すステータスとメッセージを持つエラー。
// 400 validation / 403 forbidden / 404 not found / 409 insufficient stock
// のように業務エラーはすべてこの形で返す。
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
