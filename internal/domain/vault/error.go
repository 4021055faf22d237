package vault

import (
	"errors"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrTooDeep     = errors.New("name is nested too deeply")
	ErrNotMapping  = errors.New("not a mapping")
	ErrDuplicate   = errors.New("duplicate name")
	ErrInvalidName = errors.New("invalid name")
)
