package ply_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glshapes/ply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Layout of the Stanford bunny scan files.
const bunnyLike = `ply
format ascii 1.0
comment zipper output
element vertex 5
property float x
property float y
property float z
property float confidence
property float intensity
element face 2
property list uchar int vertex_indices
end_header
0 0 0 1 0.5
1 0 0 1 0.25
1 1 0 1 1
0 1 0 1 0
0.5 0.5 1 1 0.75
4 0 1 2 3
3 0 1 4
`

func TestParse(t *testing.T) {
	m, err := ply.Parse(strings.NewReader(bunnyLike))
	require.NoError(t, err)
	assert.Equal(t, []string{"zipper output"}, m.Comments)
	assert.Equal(t, 5, m.Mesh.NumVertices())
	// Quad is fan-triangulated into two triangles.
	assert.Equal(t, [][3]uint32{{0, 1, 2}, {0, 2, 3}, {0, 1, 4}}, m.Mesh.Faces)
	assert.Equal(t, []float32{0.5, 0.25, 1, 0, 0.75}, m.Intensity)
	assert.Equal(t, ms3.Vec{X: 0.5, Y: 0.5, Z: 1}, m.Mesh.Positions[4])
	assert.False(t, m.Mesh.HasNormals())
	require.NoError(t, m.Mesh.Validate())

	m.Scale(20)
	assert.Equal(t, ms3.Vec{X: 10, Y: 10, Z: 20}, m.Mesh.Positions[4])
}

func TestParseNormalsColors(t *testing.T) {
	const doc = `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
property float nx
property float ny
property float nz
property uchar red
property uchar green
property uchar blue
element edge 1
property int vertex1
property int vertex2
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0 0 1 255 0 0
1 0 0 0 0 1 0 255 0

0 1 0 0 0 1 0 0 255
0 1
3 0 1 2
`
	m, err := ply.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.True(t, m.Mesh.HasNormals())
	require.True(t, m.Mesh.HasColors())
	assert.Equal(t, ms3.Vec{Z: 1}, m.Mesh.Normals[2])
	assert.Equal(t, ms3.Vec{Y: 1}, m.Mesh.Colors[1])
	assert.Equal(t, [][3]uint32{{0, 1, 2}}, m.Mesh.Faces)
	assert.Nil(t, m.Intensity)
}

func TestParseErrors(t *testing.T) {
	const header = "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n"
	const verts = "0 0 0\n1 0 0\n0 1 0\n"
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{name: "empty", doc: "", want: ply.ErrHeader},
		{name: "magic", doc: "obj\n", want: ply.ErrHeader},
		{name: "binary", doc: "ply\nformat binary_little_endian 1.0\nend_header\n", want: ply.ErrHeader},
		{name: "no format", doc: "ply\nelement vertex 0\nproperty float x\nproperty float y\nproperty float z\nend_header\n", want: ply.ErrHeader},
		{name: "count", doc: "ply\nformat ascii 1.0\nelement vertex many\n", want: ply.ErrHeader},
		{name: "missing z", doc: "ply\nformat ascii 1.0\nelement vertex 0\nproperty float x\nproperty float y\nend_header\n", want: ply.ErrHeader},
		{name: "no vertex", doc: "ply\nformat ascii 1.0\nend_header\n", want: ply.ErrHeader},
		{name: "huge count", doc: "ply\nformat ascii 1.0\nelement vertex 1099511627776\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n", want: ply.ErrHeader},
		{name: "negative count", doc: "ply\nformat ascii 1.0\nelement vertex -1\n", want: ply.ErrHeader},
		{name: "unbacked count", doc: "ply\nformat ascii 1.0\nelement vertex 4294967295\nproperty float x\nproperty float y\nproperty float z\nproperty float intensity\nend_header\n0 0 0 1\n", want: ply.ErrTruncated},
		{name: "unbacked faces", doc: header[:strings.Index(header, "element face")] + "element face 4294967295\nproperty list uchar int vertex_indices\nend_header\n" + verts + "3 0 1 2\n", want: ply.ErrTruncated},
		{name: "no end_header", doc: "ply\nformat ascii 1.0\nelement vertex 3\n", want: ply.ErrTruncated},
		{name: "short vertices", doc: header + "0 0 0\n", want: ply.ErrTruncated},
		{name: "short faces", doc: header + verts, want: ply.ErrTruncated},
		{name: "vertex fields", doc: header + "0 0\n1 0 0\n0 1 0\n3 0 1 2\n", want: ply.ErrRecord},
		{name: "vertex number", doc: header + "0 0 a\n1 0 0\n0 1 0\n3 0 1 2\n", want: ply.ErrRecord},
		{name: "face count", doc: header + verts + "4 0 1 2\n", want: ply.ErrRecord},
		{name: "face too small", doc: header + verts + "2 0 1\n", want: ply.ErrRecord},
		{name: "face index", doc: header + verts + "3 0 1 3\n", want: ply.ErrIndex},
		{name: "negative index", doc: header + verts + "3 0 1 -1\n", want: ply.ErrRecord},
	}
	for _, test := range tests {
		_, err := ply.Parse(strings.NewReader(test.doc))
		assert.ErrorIs(t, err, test.want, test.name)
	}
}

func TestParseErrorLine(t *testing.T) {
	const doc = "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 nope\n"
	_, err := ply.Parse(strings.NewReader(doc))
	require.ErrorIs(t, err, ply.ErrRecord)
	assert.Contains(t, err.Error(), "line 8")
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bunny.ply")
	require.NoError(t, os.WriteFile(path, []byte(bunnyLike), 0644))
	m, err := ply.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Mesh.NumFaces())

	_, err = ply.ParseFile(filepath.Join(t.TempDir(), "missing.ply"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
