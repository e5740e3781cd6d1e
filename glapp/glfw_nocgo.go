//go:build tinygo || !cgo

package glapp

import "errors"

var errNoCGO = errors.New("GLFW windowing requires CGo and is not supported on TinyGo")

// NewGLFW requires cgo. Use [NewHeadless] when building without it.
func NewGLFW(cfg Config) (Platform, error) {
	return nil, errNoCGO
}
