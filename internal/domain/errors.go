package domain

import "errors"

var (
	ErrDecode        = errors.New("image decode failed")
	ErrEncode        = errors.New("image encode failed")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrSurface       = errors.New("drawing surface unavailable")
	ErrTimeout       = errors.New("processing timed out")
)
