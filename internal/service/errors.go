package service

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrForbidden     = errors.New("access denied")
	ErrEventNotFound = errors.New("event not found")
	ErrEmptyTitle    = errors.New("title must not be empty")
	ErrTitleTooLong  = errors.New("title is too long")
	ErrHolidayExists = errors.New("holiday already exists")
)
