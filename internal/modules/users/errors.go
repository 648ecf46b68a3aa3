package users

import "errors"

var (
	ErrEmailExists     = errors.New("email already exists")
	ErrInvalidPassword = errors.New("current password is incorrect")
	ErrUserNotFound    = errors.New("user not found")
)
