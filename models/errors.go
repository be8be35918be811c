package models

import "errors"

// Phân loại lỗi dùng chung cho store, services và controllers.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotification = errors.New("notification error")
)
