package glshapes

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// NewUVSphere creates a sphere of the given radius centered at the origin by uniform
// latitude/longitude sampling. Stack i has polar angle φ=iπ/stacks measured from +y and
// slice j has azimuth θ=2πj/slices, so the vertex is (sinφcosθ, cosφ, sinφsinθ)*radius
// with UV (j/slices, i/stacks) and normal equal to the normalized position.
//
// The seam column is duplicated so UVs wrap correctly, resulting in
// (stacks+1)*(slices+1) vertices. Each grid cell is split in two triangles except at the
// poles, where the first and last stack rows collapse to a single point and only the one
// non-degenerate triangle of each cell is emitted.
func NewUVSphere(stacks, slices int, radius float32) (Mesh, error) {
	switch {
	case stacks < 1:
		return Mesh{}, fmt.Errorf("sphere needs at least one stack, got %d: %w", stacks, ErrInvalidParam)
	case slices < 1:
		return Mesh{}, fmt.Errorf("sphere needs at least one slice, got %d: %w", slices, ErrInvalidParam)
	case !positive(radius):
		return Mesh{}, fmt.Errorf("sphere radius must be positive, got %v: %w", radius, ErrInvalidParam)
	}
	nv := (stacks + 1) * (slices + 1)
	m := Mesh{
		Positions: make([]ms3.Vec, 0, nv),
		Normals:   make([]ms3.Vec, 0, nv),
		UVs:       make([]ms2.Vec, 0, nv),
		Faces:     make([][3]uint32, 0, sphereFaces(stacks, slices)),
	}
	for i := 0; i <= stacks; i++ {
		sinPhi, cosPhi := sincos(math32.Pi * float32(i) / float32(stacks))
		for j := 0; j <= slices; j++ {
			sinTheta, cosTheta := sincos(ringAngle(j, slices))
			n := ms3.Vec{X: sinPhi * cosTheta, Y: cosPhi, Z: sinPhi * sinTheta}
			m.Positions = append(m.Positions, ms3.Scale(radius, n))
			m.Normals = append(m.Normals, n)
			m.UVs = append(m.UVs, ms2.Vec{X: float32(j) / float32(slices), Y: float32(i) / float32(stacks)})
		}
	}
	row := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			p1 := uint32(i)*row + uint32(j)
			p2 := p1 + row
			if i != 0 {
				// p1 and p1+1 coincide at the north pole.
				m.Faces = append(m.Faces, [3]uint32{p1, p1 + 1, p2})
			}
			if i != stacks-1 {
				// p2 and p2+1 coincide at the south pole.
				m.Faces = append(m.Faces, [3]uint32{p1 + 1, p2 + 1, p2})
			}
		}
	}
	return m, nil
}

// sphereFaces returns the amount of faces [NewUVSphere] generates.
func sphereFaces(stacks, slices int) int {
	if stacks < 2 {
		return 0
	}
	return slices * (2*stacks - 2)
}
