package errors

import "errors"

var (
	ErrNotFound   = errors.New("appointment not found")
	ErrInvalidID  = errors.New("invalid appointment ID")
	ErrSlotLocked = errors.New("slot is locked by another booking")
)
