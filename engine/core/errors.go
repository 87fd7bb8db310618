package core

import (
	"errors"
)

var (
	ErrShaderCompile  = errors.New("shader failed to compile")
	ErrShaderLink     = errors.New("shader program failed to link")
	ErrUnknownMode    = errors.New("unknown animation mode")
	ErrUnknownFormat  = errors.New("unknown image format")
	ErrUnknownBackend = errors.New("unknown renderer backend")
	ErrNotInitialized = errors.New("subsystem not initialized")
)
