package room

import "errors"

var (
	ErrDuplicateRoom  = errors.New("room already exists")
	ErrNotFound       = errors.New("not found")
	ErrNotAuthorized  = errors.New("not authorized")
	ErrInvalidState   = errors.New("command not allowed in current state")
	ErrMissingField   = errors.New("missing required field")
	ErrCannotKickHost = errors.New("host cannot be kicked")
	ErrInvalidCommand = errors.New("invalid command")
)
