package glshapes

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Vertex is a single mesh vertex. Normal, UV and Color are the zero value
// when the mesh that produced the vertex does not carry said attribute.
type Vertex struct {
	Pos    ms3.Vec
	Normal ms3.Vec
	UV     ms2.Vec
	Color  ms3.Vec
}

// Mesh is an indexed triangle mesh. Optional attribute slices are either
// empty or of the same length as Positions. Quads are stored as two triangles.
//
// Meshes returned by generators do not share memory with one another, so
// rebuilding a shape with new parameters always yields a completely new Mesh.
type Mesh struct {
	Positions []ms3.Vec
	Normals   []ms3.Vec
	UVs       []ms2.Vec
	Colors    []ms3.Vec
	Faces     [][3]uint32
}

// NumVertices returns the amount of vertices in the mesh.
func (m *Mesh) NumVertices() int { return len(m.Positions) }

// NumFaces returns the amount of triangles in the mesh.
func (m *Mesh) NumFaces() int { return len(m.Faces) }

// HasNormals reports whether the mesh carries per-vertex normals.
func (m *Mesh) HasNormals() bool { return len(m.Normals) > 0 }

// HasUVs reports whether the mesh carries texture coordinates.
func (m *Mesh) HasUVs() bool { return len(m.UVs) > 0 }

// HasColors reports whether the mesh carries per-vertex colors.
func (m *Mesh) HasColors() bool { return len(m.Colors) > 0 }

// Vertex returns the i'th vertex with all its attributes.
func (m *Mesh) Vertex(i int) Vertex {
	v := Vertex{Pos: m.Positions[i]}
	if m.HasNormals() {
		v.Normal = m.Normals[i]
	}
	if m.HasUVs() {
		v.UV = m.UVs[i]
	}
	if m.HasColors() {
		v.Color = m.Colors[i]
	}
	return v
}

// Validate checks every face index is within bounds of the vertex sequence and that
// optional attributes match the amount of positions. All problems found are joined.
func (m *Mesh) Validate() error {
	var errs []error
	nv := len(m.Positions)
	checkAttr := func(name string, n int) {
		if n != 0 && n != nv {
			errs = append(errs, fmt.Errorf("%s length %d does not match %d positions", name, n, nv))
		}
	}
	checkAttr("normals", len(m.Normals))
	checkAttr("uvs", len(m.UVs))
	checkAttr("colors", len(m.Colors))
	for i, p := range m.Positions {
		if !isFinite(p) {
			errs = append(errs, fmt.Errorf("vertex %d has non-finite position %v", i, p))
		}
	}
	for i, f := range m.Faces {
		for _, idx := range f {
			if int(idx) >= nv {
				errs = append(errs, fmt.Errorf("face %d references vertex %d of %d: %w", i, idx, nv, ErrIndexOutOfRange))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// Triangle returns the positions of the i'th face.
func (m *Mesh) Triangle(i int) ms3.Triangle {
	f := m.Faces[i]
	return ms3.Triangle{m.Positions[f[0]], m.Positions[f[1]], m.Positions[f[2]]}
}

// Triangles returns the positions of all faces. Useful for STL output.
func (m *Mesh) Triangles() []ms3.Triangle {
	tris := make([]ms3.Triangle, len(m.Faces))
	for i := range m.Faces {
		tris[i] = m.Triangle(i)
	}
	return tris
}

// Bounds returns the axis aligned bounding box of the mesh positions.
// An empty mesh returns the zero box.
func (m *Mesh) Bounds() ms3.Box {
	if len(m.Positions) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		bb.Min = ms3.MinElem(bb.Min, p)
		bb.Max = ms3.MaxElem(bb.Max, p)
	}
	return bb
}

// FaceNormal returns the unit normal of triangle (a,b,c), i.e. normalize(cross(b-a, c-a)).
// Counter-clockwise winding when viewed from outside yields the outward normal.
// Collinear or coincident vertices return [ErrDegenerate].
func FaceNormal(a, b, c ms3.Vec) (ms3.Vec, error) {
	n := ms3.Cross(ms3.Sub(b, a), ms3.Sub(c, a))
	l := ms3.Norm(n)
	if l < epstol {
		return ms3.Vec{}, ErrDegenerate
	}
	return ms3.Scale(1/l, n), nil
}

// FaceNormals returns one unit normal per face. Degenerate faces get a zero normal
// and their indices are returned in degenerate so callers may skip or flag them.
func (m *Mesh) FaceNormals() (normals []ms3.Vec, degenerate []int) {
	normals = make([]ms3.Vec, len(m.Faces))
	for i := range m.Faces {
		t := m.Triangle(i)
		n, err := FaceNormal(t[0], t[1], t[2])
		if err != nil {
			degenerate = append(degenerate, i)
			continue
		}
		normals[i] = n
	}
	return normals, degenerate
}

// ComputeVertexNormals sets Normals to the area-weighted average of the normals
// of the faces incident to each vertex. Vertices belonging only to degenerate faces
// keep a zero normal.
func (m *Mesh) ComputeVertexNormals() {
	normals := make([]ms3.Vec, len(m.Positions))
	for i, f := range m.Faces {
		t := m.Triangle(i)
		// Unnormalized cross product length is twice the triangle area.
		n := ms3.Cross(ms3.Sub(t[1], t[0]), ms3.Sub(t[2], t[0]))
		for _, idx := range f {
			normals[idx] = ms3.Add(normals[idx], n)
		}
	}
	for i, n := range normals {
		l := ms3.Norm(n)
		if l < epstol {
			normals[i] = ms3.Vec{}
			continue
		}
		normals[i] = ms3.Scale(1/l, n)
	}
	m.Normals = normals
}

// Flatten returns a new mesh where every face owns its three vertices and carries
// its face normal as vertex normal, which results in flat shading. UVs and colors
// are copied from the source vertices. Degenerate faces are dropped.
func (m *Mesh) Flatten() Mesh {
	var dst Mesh
	dst.Positions = make([]ms3.Vec, 0, 3*len(m.Faces))
	dst.Normals = make([]ms3.Vec, 0, 3*len(m.Faces))
	dst.Faces = make([][3]uint32, 0, len(m.Faces))
	for i, f := range m.Faces {
		t := m.Triangle(i)
		n, err := FaceNormal(t[0], t[1], t[2])
		if err != nil {
			continue
		}
		base := uint32(len(dst.Positions))
		for _, idx := range f {
			dst.Positions = append(dst.Positions, m.Positions[idx])
			dst.Normals = append(dst.Normals, n)
			if m.HasUVs() {
				dst.UVs = append(dst.UVs, m.UVs[idx])
			}
			if m.HasColors() {
				dst.Colors = append(dst.Colors, m.Colors[idx])
			}
		}
		dst.Faces = append(dst.Faces, [3]uint32{base, base + 1, base + 2})
	}
	return dst
}

// Transform returns a copy of the mesh with positions scaled by s and then offset.
// Normals are preserved since uniform scaling does not change their direction.
func (m *Mesh) Transform(s float32, offset ms3.Vec) Mesh {
	dst := m.Clone()
	for i, p := range dst.Positions {
		dst.Positions[i] = ms3.Add(ms3.Scale(s, p), offset)
	}
	if s < 0 {
		// Negative scaling mirrors the mesh; swap winding to keep faces outward.
		for i, f := range dst.Faces {
			dst.Faces[i] = [3]uint32{f[0], f[2], f[1]}
		}
		for i, n := range dst.Normals {
			dst.Normals[i] = ms3.Scale(-1, n)
		}
	}
	return dst
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() Mesh {
	return Mesh{
		Positions: append([]ms3.Vec(nil), m.Positions...),
		Normals:   append([]ms3.Vec(nil), m.Normals...),
		UVs:       append([]ms2.Vec(nil), m.UVs...),
		Colors:    append([]ms3.Vec(nil), m.Colors...),
		Faces:     append([][3]uint32(nil), m.Faces...),
	}
}

func isFinite(v ms3.Vec) bool {
	return !math32.IsNaN(v.X+v.Y+v.Z) && !math32.IsInf(v.X+v.Y+v.Z, 0)
}
