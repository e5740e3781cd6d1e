package glrender

import (
	"errors"
	"fmt"

	"github.com/soypat/glshapes"
)

// Vertex attribute locations shared by all built-in shaders.
const (
	LocPosition  = 0
	LocNormal    = 1
	LocUV        = 2
	LocColor     = 3
	LocIntensity = 4
)

// Attrib describes one vertex attribute inside an interleaved buffer.
type Attrib struct {
	Location uint32
	// Size is the number of float32 components.
	Size int32
	// Offset is the component offset within a vertex.
	Offset int
}

// Layout describes an interleaved vertex buffer.
type Layout struct {
	// Stride is the number of float32 components per vertex.
	Stride  int
	Attribs []Attrib
}

// StrideBytes returns the stride in bytes.
func (l Layout) StrideBytes() int32 { return int32(4 * l.Stride) }

// Has reports whether the layout contains an attribute at location loc.
func (l Layout) Has(loc uint32) bool {
	for _, a := range l.Attribs {
		if a.Location == loc {
			return true
		}
	}
	return false
}

func (l *Layout) add(loc uint32, size int32) {
	l.Attribs = append(l.Attribs, Attrib{Location: loc, Size: size, Offset: l.Stride})
	l.Stride += int(size)
}

// Interleave packs the attributes present in m into a single float32 buffer in the order
// position, normal, uv, color followed by the optional per-vertex intensity scalar.
// Absent attributes are omitted from the layout.
func Interleave(m *glshapes.Mesh, intensity []float32) ([]float32, Layout, error) {
	if err := m.Validate(); err != nil {
		return nil, Layout{}, err
	}
	nv := m.NumVertices()
	if nv == 0 {
		return nil, Layout{}, errors.New("empty mesh")
	} else if intensity != nil && len(intensity) != nv {
		return nil, Layout{}, fmt.Errorf("got %d intensities for %d vertices", len(intensity), nv)
	}
	var layout Layout
	layout.add(LocPosition, 3)
	if m.HasNormals() {
		layout.add(LocNormal, 3)
	}
	if m.HasUVs() {
		layout.add(LocUV, 2)
	}
	if m.HasColors() {
		layout.add(LocColor, 3)
	}
	if intensity != nil {
		layout.add(LocIntensity, 1)
	}
	buf := make([]float32, 0, nv*layout.Stride)
	for i := 0; i < nv; i++ {
		p := m.Positions[i]
		buf = append(buf, p.X, p.Y, p.Z)
		if m.HasNormals() {
			n := m.Normals[i]
			buf = append(buf, n.X, n.Y, n.Z)
		}
		if m.HasUVs() {
			uv := m.UVs[i]
			buf = append(buf, uv.X, uv.Y)
		}
		if m.HasColors() {
			c := m.Colors[i]
			buf = append(buf, c.X, c.Y, c.Z)
		}
		if intensity != nil {
			buf = append(buf, intensity[i])
		}
	}
	return buf, layout, nil
}

// FlattenIndices returns the face indices as a flat element buffer.
func FlattenIndices(faces [][3]uint32) []uint32 {
	idx := make([]uint32, 0, 3*len(faces))
	for _, f := range faces {
		idx = append(idx, f[0], f[1], f[2])
	}
	return idx
}
