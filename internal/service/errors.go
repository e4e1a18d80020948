package service

import "errors"

var (
	ErrTodoNotFound       = errors.New("todo not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrAssignmentNotFound = errors.New("assignment not found")

	ErrEmailExists     = errors.New("email already exists")
	ErrAlreadyAssigned = errors.New("user is already assigned to this todo")
)
