// Package ply reads polygon meshes stored in the ASCII variant of the PLY
// (Stanford triangle) file format.
//
// Polygonal faces are fan-triangulated. Vertex properties x, y and z are required.
// The optional properties nx, ny, nz (normals), red, green, blue (8-bit colors)
// and intensity are also read. Elements other than vertex and face are skipped.
package ply

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glshapes"
)

var (
	// ErrHeader is returned for a missing magic number, unsupported format or malformed header lines.
	ErrHeader = errors.New("ply: invalid header")
	// ErrTruncated is returned when the file ends before all declared elements are read.
	ErrTruncated = errors.New("ply: unexpected end of file")
	// ErrRecord is returned for element records with a wrong amount of fields or unparsable numbers.
	ErrRecord = errors.New("ply: invalid record")
	// ErrIndex is returned when a face references a vertex that does not exist.
	ErrIndex = errors.New("ply: face index out of range")
)

// Model is a mesh read from a PLY file.
type Model struct {
	Mesh glshapes.Mesh
	// Intensity holds the per-vertex intensity property, if present in the file.
	Intensity []float32
	// Comments contains the header comment lines.
	Comments []string
}

// Scale multiplies all vertex positions by s.
func (m *Model) Scale(s float32) {
	for i := range m.Mesh.Positions {
		m.Mesh.Positions[i] = ms3.Scale(s, m.Mesh.Positions[i])
	}
}

// ParseFile opens and parses the PLY file at path.
func ParseFile(path string) (*Model, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	m, err := Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

type element struct {
	name  string
	count int
	props []property
}

// maxPrealloc bounds buffer preallocation from header element counts.
const maxPrealloc = 1 << 16

func (e *element) prealloc() int { return min(e.count, maxPrealloc) }

type property struct {
	name string
	list bool
}

func (e *element) propIndex(name string) int {
	for i, p := range e.props {
		if p.name == name {
			return i
		}
	}
	return -1
}

// parser tracks the line number for error messages.
type parser struct {
	sc   *bufio.Scanner
	line int
}

func (p *parser) next() ([]string, bool) {
	for p.sc.Scan() {
		p.line++
		fields := strings.Fields(p.sc.Text())
		if len(fields) > 0 {
			return fields, true
		}
	}
	return nil, false
}

func (p *parser) errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", p.line, sentinel, fmt.Sprintf(format, args...))
}

// eof returns the scanner error if there is one, or an ErrTruncated error.
func (p *parser) eof(format string, args ...any) error {
	if err := p.sc.Err(); err != nil {
		return err
	}
	return p.errorf(ErrTruncated, format, args...)
}

// Parse reads an ASCII PLY mesh from r.
func Parse(r io.Reader) (*Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	p := &parser{sc: sc}
	var model Model
	elems, err := p.header(&model)
	if err != nil {
		return nil, err
	}
	vertexCount := -1
	for i := range elems {
		e := &elems[i]
		switch e.name {
		case "vertex":
			err = p.vertices(e, &model)
			vertexCount = e.count
		case "face":
			if vertexCount < 0 {
				return nil, p.errorf(ErrHeader, "face element declared before vertex element")
			}
			err = p.faces(e, &model)
		default:
			for j := 0; j < e.count && err == nil; j++ {
				if _, ok := p.next(); !ok {
					err = p.eof("%s element %d of %d", e.name, j, e.count)
				}
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return &model, nil
}

func (p *parser) header(model *Model) ([]element, error) {
	fields, ok := p.next()
	if !ok || len(fields) != 1 || fields[0] != "ply" {
		if err := p.sc.Err(); err != nil {
			return nil, err
		}
		return nil, p.errorf(ErrHeader, "missing ply magic number")
	}
	var (
		elems     []element
		gotFormat bool
	)
	for {
		fields, ok = p.next()
		if !ok {
			return nil, p.eof("missing end_header")
		}
		switch fields[0] {
		case "format":
			if len(fields) != 3 {
				return nil, p.errorf(ErrHeader, "malformed format line")
			} else if fields[1] != "ascii" {
				return nil, p.errorf(ErrHeader, "unsupported format %q, only ascii is supported", fields[1])
			} else if fields[2] != "1.0" {
				return nil, p.errorf(ErrHeader, "unsupported version %q", fields[2])
			}
			gotFormat = true

		case "comment", "obj_info":
			model.Comments = append(model.Comments, strings.Join(fields[1:], " "))

		case "element":
			if len(fields) != 3 {
				return nil, p.errorf(ErrHeader, "malformed element line")
			}
			// Faces index vertices with uint32.
			count, err := strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return nil, p.errorf(ErrHeader, "invalid %s element count %q", fields[1], fields[2])
			}
			elems = append(elems, element{name: fields[1], count: int(count)})

		case "property":
			if len(elems) == 0 {
				return nil, p.errorf(ErrHeader, "property before any element")
			}
			e := &elems[len(elems)-1]
			switch {
			case len(fields) == 3:
				e.props = append(e.props, property{name: fields[2]})
			case len(fields) == 5 && fields[1] == "list":
				e.props = append(e.props, property{name: fields[4], list: true})
			default:
				return nil, p.errorf(ErrHeader, "malformed property line")
			}

		case "end_header":
			if !gotFormat {
				return nil, p.errorf(ErrHeader, "missing format line")
			}
			return elems, checkElements(elems, p)

		default:
			return nil, p.errorf(ErrHeader, "unknown header keyword %q", fields[0])
		}
	}
}

func checkElements(elems []element, p *parser) error {
	var hasVertex bool
	for i := range elems {
		e := &elems[i]
		switch e.name {
		case "vertex":
			hasVertex = true
			for _, axis := range []string{"x", "y", "z"} {
				if e.propIndex(axis) < 0 {
					return p.errorf(ErrHeader, "vertex element missing %q property", axis)
				}
			}
			for _, prop := range e.props {
				if prop.list {
					return p.errorf(ErrHeader, "list property %q in vertex element not supported", prop.name)
				}
			}
		case "face":
			if len(e.props) != 1 || !e.props[0].list {
				return p.errorf(ErrHeader, "face element must have a single list property")
			}
		}
	}
	if !hasVertex {
		return p.errorf(ErrHeader, "missing vertex element")
	}
	return nil
}

func (p *parser) vertices(e *element, model *Model) error {
	var (
		ix, iy, iz = e.propIndex("x"), e.propIndex("y"), e.propIndex("z")
		inx, iny   = e.propIndex("nx"), e.propIndex("ny")
		inz        = e.propIndex("nz")
		ir, ig, ib = e.propIndex("red"), e.propIndex("green"), e.propIndex("blue")
		iint       = e.propIndex("intensity")
		hasNormals = inx >= 0 && iny >= 0 && inz >= 0
		hasColors  = ir >= 0 && ig >= 0 && ib >= 0
		vals       = make([]float32, len(e.props))
		m          = &model.Mesh
	)
	m.Positions = make([]ms3.Vec, 0, e.prealloc())
	if hasNormals {
		m.Normals = make([]ms3.Vec, 0, e.prealloc())
	}
	if hasColors {
		m.Colors = make([]ms3.Vec, 0, e.prealloc())
	}
	if iint >= 0 {
		model.Intensity = make([]float32, 0, e.prealloc())
	}
	for i := 0; i < e.count; i++ {
		fields, ok := p.next()
		if !ok {
			return p.eof("vertex %d of %d", i, e.count)
		}
		if len(fields) != len(e.props) {
			return p.errorf(ErrRecord, "vertex has %d fields, expected %d", len(fields), len(e.props))
		}
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return p.errorf(ErrRecord, "vertex %s: %s", e.props[j].name, err)
			}
			vals[j] = float32(v)
		}
		m.Positions = append(m.Positions, ms3.Vec{X: vals[ix], Y: vals[iy], Z: vals[iz]})
		if hasNormals {
			m.Normals = append(m.Normals, ms3.Vec{X: vals[inx], Y: vals[iny], Z: vals[inz]})
		}
		if hasColors {
			m.Colors = append(m.Colors, ms3.Vec{X: vals[ir] / 255, Y: vals[ig] / 255, Z: vals[ib] / 255})
		}
		if iint >= 0 {
			model.Intensity = append(model.Intensity, vals[iint])
		}
	}
	return nil
}

func (p *parser) faces(e *element, model *Model) error {
	m := &model.Mesh
	nverts := uint64(len(m.Positions))
	m.Faces = make([][3]uint32, 0, e.prealloc())
	var idx []uint32
	for i := 0; i < e.count; i++ {
		fields, ok := p.next()
		if !ok {
			return p.eof("face %d of %d", i, e.count)
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return p.errorf(ErrRecord, "face vertex count: %s", err)
		} else if n < 3 {
			return p.errorf(ErrRecord, "face with %d vertices", n)
		} else if len(fields) != n+1 {
			return p.errorf(ErrRecord, "face declares %d vertices but has %d", n, len(fields)-1)
		}
		idx = idx[:0]
		for _, f := range fields[1:] {
			v, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return p.errorf(ErrRecord, "face index: %s", err)
			} else if v >= nverts {
				return p.errorf(ErrIndex, "index %d with %d vertices", v, nverts)
			}
			idx = append(idx, uint32(v))
		}
		for k := 1; k < n-1; k++ {
			m.Faces = append(m.Faces, [3]uint32{idx[0], idx[k], idx[k+1]})
		}
	}
	return nil
}
