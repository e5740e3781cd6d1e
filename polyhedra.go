package glshapes

import (
	"fmt"

	"github.com/soypat/geometry/ms3"
)

// palette is the vertex color cycle used by the pyramid and prism demos.
var palette = [...]ms3.Vec{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 1, Y: 1, Z: 0},
	{X: 1, Y: 0, Z: 1},
	{X: 0, Y: 1, Z: 1},
}

// NewPyramid creates a regular pyramid with a unit circumradius base lying on the z=0
// plane and apex at (0,0,1). Vertex 0 is the base center, vertices 1..sides form the base
// ring at polar angles 2πi/sides and the last vertex is the apex.
// The result has sides+2 vertices and 2*sides faces, all wound outward.
func NewPyramid(sides int) (Mesh, error) {
	if sides < MinSides {
		return Mesh{}, fmt.Errorf("pyramid needs at least %d sides, got %d: %w", MinSides, sides, ErrInvalidParam)
	}
	n := uint32(sides)
	m := Mesh{
		Positions: make([]ms3.Vec, 0, sides+2),
		Colors:    make([]ms3.Vec, 0, sides+2),
		Faces:     make([][3]uint32, 0, 2*sides),
	}
	m.Positions = append(m.Positions, ms3.Vec{})
	for i := 0; i < sides; i++ {
		s, c := sincos(ringAngle(i, sides))
		m.Positions = append(m.Positions, ms3.Vec{X: c, Y: s})
	}
	m.Positions = append(m.Positions, ms3.Vec{Z: 1})
	apex := n + 1
	ring := func(i uint32) uint32 { return 1 + i%n }
	// Base fan faces -z.
	for i := uint32(0); i < n; i++ {
		m.Faces = append(m.Faces, [3]uint32{0, ring(i + 1), ring(i)})
	}
	// Lateral faces.
	for i := uint32(0); i < n; i++ {
		m.Faces = append(m.Faces, [3]uint32{ring(i), ring(i + 1), apex})
	}
	for i := range m.Positions {
		m.Colors = append(m.Colors, palette[i%len(palette)])
	}
	return m, nil
}

// NewPrism creates a right regular prism with unit circumradius centered at the origin
// with its axis along z. Vertex 0 is the bottom cap center, 1..sides the bottom ring,
// sides+1 the top cap center and sides+2..2*sides+1 the top ring mirroring the bottom.
// The result has 2*sides+2 vertices and 4*sides faces: a fan per cap and two triangles
// per side panel, all wound outward.
func NewPrism(sides int, height float32) (Mesh, error) {
	if sides < MinSides {
		return Mesh{}, fmt.Errorf("prism needs at least %d sides, got %d: %w", MinSides, sides, ErrInvalidParam)
	} else if !positive(height) {
		return Mesh{}, fmt.Errorf("prism height must be positive, got %v: %w", height, ErrInvalidParam)
	}
	n := uint32(sides)
	hz := height / 2
	m := Mesh{
		Positions: make([]ms3.Vec, 0, 2*sides+2),
		Colors:    make([]ms3.Vec, 0, 2*sides+2),
		Faces:     make([][3]uint32, 0, 4*sides),
	}
	for _, z := range [2]float32{-hz, hz} {
		m.Positions = append(m.Positions, ms3.Vec{Z: z})
		for i := 0; i < sides; i++ {
			s, c := sincos(ringAngle(i, sides))
			m.Positions = append(m.Positions, ms3.Vec{X: c, Y: s, Z: z})
		}
	}
	topCenter := n + 1
	bottom := func(i uint32) uint32 { return 1 + i%n }
	top := func(i uint32) uint32 { return n + 2 + i%n }
	for i := uint32(0); i < n; i++ {
		m.Faces = append(m.Faces, [3]uint32{0, bottom(i + 1), bottom(i)})
	}
	for i := uint32(0); i < n; i++ {
		m.Faces = append(m.Faces, [3]uint32{topCenter, top(i), top(i + 1)})
	}
	for i := uint32(0); i < n; i++ {
		b0, b1 := bottom(i), bottom(i+1)
		t0, t1 := top(i), top(i+1)
		m.Faces = append(m.Faces,
			[3]uint32{b0, b1, t1},
			[3]uint32{b0, t1, t0},
		)
	}
	for i := range m.Positions {
		m.Colors = append(m.Colors, palette[i%3+3]) // yellow, magenta, cyan.
	}
	return m, nil
}
