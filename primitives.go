package glshapes

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// NewQuad creates a width x height rectangle on the z=0 plane centered at the origin,
// facing +z with UVs spanning [0,1]² and (0,0) at the bottom left corner.
func NewQuad(width, height float32) (Mesh, error) {
	if !positive(width) || !positive(height) {
		return Mesh{}, fmt.Errorf("quad dimensions must be positive, got %vx%v: %w", width, height, ErrInvalidParam)
	}
	hx, hy := width/2, height/2
	up := ms3.Vec{Z: 1}
	white := ms3.Vec{X: 1, Y: 1, Z: 1}
	return Mesh{
		Positions: []ms3.Vec{{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy}},
		Normals:   []ms3.Vec{up, up, up, up},
		UVs:       []ms2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Colors:    []ms3.Vec{white, white, white, white},
		Faces:     [][3]uint32{{0, 1, 2}, {0, 2, 3}},
	}, nil
}

// cubeFace describes one face of an axis aligned cube.
// u and v span the face such that cross(u,v)==normal.
type cubeFace struct {
	normal, u, v ms3.Vec
}

var cubeFaces = [6]cubeFace{
	{normal: ms3.Vec{Z: 1}, u: ms3.Vec{X: 1}, v: ms3.Vec{Y: 1}},   // front
	{normal: ms3.Vec{X: 1}, u: ms3.Vec{Z: -1}, v: ms3.Vec{Y: 1}},  // right
	{normal: ms3.Vec{Y: 1}, u: ms3.Vec{X: 1}, v: ms3.Vec{Z: -1}},  // top
	{normal: ms3.Vec{Y: -1}, u: ms3.Vec{X: 1}, v: ms3.Vec{Z: 1}},  // bottom
	{normal: ms3.Vec{X: -1}, u: ms3.Vec{Z: 1}, v: ms3.Vec{Y: 1}},  // left
	{normal: ms3.Vec{Z: -1}, u: ms3.Vec{X: -1}, v: ms3.Vec{Y: 1}}, // back
}

// NewCube creates an axis aligned cube of the given edge length centered at the origin.
// Every face owns its 4 vertices so it can carry its own normal and full [0,1]² UVs,
// resulting in 24 vertices and 12 faces. Each face is tinted with a distinct color.
func NewCube(size float32) (Mesh, error) {
	return newCube(size, func(face int, uv ms2.Vec) ms2.Vec { return uv })
}

// DiceFaceValue is the number shown on each face of the mesh generated by [NewDice],
// in face order front, right, top, bottom, left, back. Opposite faces sum to 7.
var DiceFaceValue = [6]int{1, 2, 3, 4, 5, 6}

// NewDice creates a cube like [NewCube] whose face UVs address the cells of a 3x2
// texture atlas: value k (1..6) lives in column (k-1)%3 and row (k-1)/3, with row 0 at
// the top of the image. See texgen.DiceAtlas for a matching texture.
func NewDice(size float32) (Mesh, error) {
	const cols, rows = 3, 2
	return newCube(size, func(face int, uv ms2.Vec) ms2.Vec {
		k := DiceFaceValue[face] - 1
		col, row := k%cols, k/cols
		// Texture images are uploaded flipped so v=1 is the image top row.
		return ms2.Vec{
			X: (float32(col) + uv.X) / cols,
			Y: 1 - (float32(row)+1-uv.Y)/rows,
		}
	})
}

func newCube(size float32, mapUV func(face int, uv ms2.Vec) ms2.Vec) (Mesh, error) {
	if !positive(size) {
		return Mesh{}, fmt.Errorf("cube size must be positive, got %v: %w", size, ErrInvalidParam)
	}
	h := size / 2
	m := Mesh{
		Positions: make([]ms3.Vec, 0, 24),
		Normals:   make([]ms3.Vec, 0, 24),
		UVs:       make([]ms2.Vec, 0, 24),
		Colors:    make([]ms3.Vec, 0, 24),
		Faces:     make([][3]uint32, 0, 12),
	}
	corners := [4]ms2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for fi, f := range cubeFaces {
		center := ms3.Scale(h, f.normal)
		base := uint32(len(m.Positions))
		for _, c := range corners {
			offset := ms3.Add(ms3.Scale((2*c.X-1)*h, f.u), ms3.Scale((2*c.Y-1)*h, f.v))
			m.Positions = append(m.Positions, ms3.Add(center, offset))
			m.Normals = append(m.Normals, f.normal)
			m.UVs = append(m.UVs, mapUV(fi, c))
			m.Colors = append(m.Colors, palette[fi])
		}
		m.Faces = append(m.Faces, [3]uint32{base, base + 1, base + 2}, [3]uint32{base, base + 2, base + 3})
	}
	return m, nil
}

// NewGrid creates an n x n height-field centered at the origin spanning size units along
// x and y. The z coordinate of each vertex is height(x, y) evaluated at the vertex's
// planar position. UVs span [0,1]² and normals are averaged from incident faces.
// The result has n*n vertices and 2*(n-1)² faces.
func NewGrid(n int, size float32, height func(x, y float32) float32) (Mesh, error) {
	switch {
	case n < 2:
		return Mesh{}, fmt.Errorf("grid needs at least 2 vertices per side, got %d: %w", n, ErrInvalidParam)
	case !positive(size):
		return Mesh{}, fmt.Errorf("grid size must be positive, got %v: %w", size, ErrInvalidParam)
	case height == nil:
		return Mesh{}, errors.Join(errors.New("nil grid height function"), ErrInvalidParam)
	}
	m := Mesh{
		Positions: make([]ms3.Vec, 0, n*n),
		UVs:       make([]ms2.Vec, 0, n*n),
		Faces:     make([][3]uint32, 0, 2*(n-1)*(n-1)),
	}
	step := size / float32(n-1)
	for i := 0; i < n; i++ {
		y := float32(i)*step - size/2
		for j := 0; j < n; j++ {
			x := float32(j)*step - size/2
			m.Positions = append(m.Positions, ms3.Vec{X: x, Y: y, Z: height(x, y)})
			m.UVs = append(m.UVs, ms2.Vec{X: float32(j) / float32(n-1), Y: float32(i) / float32(n-1)})
		}
	}
	row := uint32(n)
	for i := uint32(0); i < row-1; i++ {
		for j := uint32(0); j < row-1; j++ {
			a := i*row + j
			b := a + 1
			c := a + row
			d := c + 1
			m.Faces = append(m.Faces, [3]uint32{a, b, c}, [3]uint32{b, d, c})
		}
	}
	m.ComputeVertexNormals()
	return m, nil
}
