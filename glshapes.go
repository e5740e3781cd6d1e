// Package glshapes generates small procedural triangle meshes (pyramids, prisms,
// UV spheres, quads, cubes and height-field grids) ready to be uploaded to a GPU.
// Generation is pure computation and never touches a graphics API.
package glshapes

import (
	"errors"

	"github.com/chewxy/math32"
)

const (
	// MinSides and MaxSides bound the side count of pyramids and prisms.
	MinSides = 3
	MaxSides = 64
	// epstol is used to check for badly conditioned denominators
	// such as lengths used for normalization.
	epstol = 6e-7
)

var (
	// ErrInvalidParam is wrapped by all generator errors caused by bad shape parameters.
	ErrInvalidParam = errors.New("invalid shape parameter")
	// ErrDegenerate is returned when a face has (near) zero area and thus no defined normal.
	ErrDegenerate = errors.New("degenerate face")
	// ErrIndexOutOfRange is wrapped by [Mesh.Validate] errors.
	ErrIndexOutOfRange = errors.New("face index out of range")
)

// ClampSides clamps a side count into [MinSides, MaxSides]. Use it on interactive
// tessellation controls; constructors such as [NewPyramid] reject out of range values instead.
func ClampSides(n int) int {
	if n < MinSides {
		return MinSides
	} else if n > MaxSides {
		return MaxSides
	}
	return n
}

// positive reports whether x is a finite number greater than zero. NaN is not.
func positive(x float32) bool {
	return x > 0 && !math32.IsInf(x, 1)
}

func sincos(a float32) (sin, cos float32) {
	return math32.Sincos(a)
}

// ringAngle returns the polar angle of the i'th of n points evenly spaced around a circle.
func ringAngle(i, n int) float32 {
	return 2 * math32.Pi * float32(i) / float32(n)
}
