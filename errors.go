package rast3d

import "errors"

var (
	// ErrInvalidSize is returned when a renderer or render target is created
	// with a non-positive width or height.
	ErrInvalidSize = errors.New("rast3d: width and height must be positive")

	// ErrUnknownShader is returned when a registry has no factory for a name.
	ErrUnknownShader = errors.New("rast3d: unknown shader")

	// ErrDuplicateShader is returned when a shader name is registered twice.
	ErrDuplicateShader = errors.New("rast3d: shader already registered")

	// ErrNilShaderFactory is returned when registering a nil factory.
	ErrNilShaderFactory = errors.New("rast3d: nil shader factory")

	// ErrUniformType is returned when a well-known uniform is set with a
	// value of the wrong type.
	ErrUniformType = errors.New("rast3d: uniform has wrong type")
)
