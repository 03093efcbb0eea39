package model

import (
	"errors"
	"net/http"
)

var (
	ErrPostNotFound = errors.New("post not found")
	// ErrNotAuthor: chỉ tác giả mới được sửa post. Handler không trả 403 mà
	// redirect về profile của người đang đăng nhập.
	ErrNotAuthor    = errors.New("only the author can edit this post")
	ErrInvalidGroup = errors.New("group does not exist")
)

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotAuthor):
		return http.StatusFound
	case errors.Is(err, ErrInvalidGroup):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
