// Package glrender uploads glshapes meshes and textures to OpenGL and draws them
// with a small set of built-in shader programs.
//
// GL entry points require cgo. Without it they return [ErrNoCGO]. Vertex
// interleaving, image conversion and triangle streaming are pure Go and always available.
package glrender

import (
	"errors"
	"io"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glshapes"
)

// ErrNoCGO is returned by GL entry points when built without cgo or with TinyGo.
var ErrNoCGO = errors.New("OpenGL rendering requires CGo and is not supported on TinyGo")

// Renderer streams triangles into dst, returning io.EOF once exhausted.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer, userData any) ([]ms3.Triangle, error) {
	const startSize = 4096
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, startSize)
	buf := make([]ms3.Triangle, startSize)
	for {
		nt, err = r.ReadTriangles(buf, userData)
		if err == nil || err == io.EOF {
			result = append(result, buf[:nt]...)
		}
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// MeshRenderer is a [Renderer] over the faces of a mesh, used to export
// generated meshes in chunks.
type MeshRenderer struct {
	mesh *glshapes.Mesh
	face int
}

// NewMeshRenderer validates m and returns a Renderer reading its triangles in face order.
func NewMeshRenderer(m *glshapes.Mesh) (*MeshRenderer, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &MeshRenderer{mesh: m}, nil
}

// ReadTriangles implements [Renderer]. userData is unused.
func (mr *MeshRenderer) ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error) {
	faces := mr.mesh.Faces
	if mr.face >= len(faces) {
		return 0, io.EOF
	}
	for n < len(dst) && mr.face < len(faces) {
		dst[n] = mr.mesh.Triangle(mr.face)
		n++
		mr.face++
	}
	if mr.face == len(faces) {
		err = io.EOF
	}
	return n, err
}

// Reset rewinds the renderer to the first face.
func (mr *MeshRenderer) Reset() { mr.face = 0 }
