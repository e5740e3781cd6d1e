//go:build !tinygo && cgo

package glrender

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/glshapes"
)

// Program is a linked shader program with cached uniform locations.
type Program struct {
	name     string
	prog     glgl.Program
	uniforms map[string]int32
}

// NewProgram compiles and links the shader pair. A GL context must be current.
func NewProgram(src Shader) (*Program, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   src.Vertex,
		Fragment: src.Fragment,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling %s shader: %w", src.Name, err)
	}
	return &Program{name: src.Name, prog: prog, uniforms: make(map[string]int32)}, nil
}

// Use binds the program for subsequent draw calls and uniform updates.
func (p *Program) Use() { p.prog.Bind() }

// Delete frees the program.
func (p *Program) Delete() {
	p.prog.Unbind()
	p.prog.Delete()
}

func (p *Program) uniform(name string) (int32, error) {
	loc, ok := p.uniforms[name]
	if ok {
		return loc, nil
	}
	loc, err := p.prog.UniformLocation(name + "\x00")
	if err != nil {
		return -1, fmt.Errorf("%s shader uniform %q: %w", p.name, name, err)
	}
	p.uniforms[name] = loc
	return loc, nil
}

// SetMat4 sets a mat4 uniform. The program must be in use.
func (p *Program) SetMat4(name string, m mgl32.Mat4) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
	return nil
}

// SetVec3 sets a vec3 uniform. The program must be in use.
func (p *Program) SetVec3(name string, v ms3.Vec) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	gl.Uniform3f(loc, v.X, v.Y, v.Z)
	return nil
}

// SetFloat sets a float uniform. The program must be in use.
func (p *Program) SetFloat(name string, v float32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	gl.Uniform1f(loc, v)
	return nil
}

// SetInt sets an int or sampler uniform. The program must be in use.
func (p *Program) SetInt(name string, v int32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	gl.Uniform1i(loc, v)
	return nil
}

// SetMVP sets the model, view and projection uniforms in one call.
func (p *Program) SetMVP(model, view, projection mgl32.Mat4) error {
	return errors.Join(
		p.SetMat4("model", model),
		p.SetMat4("view", view),
		p.SetMat4("projection", projection),
	)
}

// GPUMesh is a mesh uploaded to the GPU as a vertex array with an interleaved
// vertex buffer and an element buffer.
type GPUMesh struct {
	vao, vbo, ebo uint32
	count         int32
	layout        Layout
}

// Upload copies m to GPU memory. intensity is an optional per-vertex scalar bound
// at [LocIntensity]. A GL context must be current.
func Upload(m *glshapes.Mesh, intensity []float32) (*GPUMesh, error) {
	vertices, layout, err := Interleave(m, intensity)
	if err != nil {
		return nil, err
	}
	indices := FlattenIndices(m.Faces)
	if len(indices) == 0 {
		return nil, errors.New("mesh has no faces")
	}
	gm := &GPUMesh{count: int32(len(indices)), layout: layout}
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(indices), gl.Ptr(indices), gl.STATIC_DRAW)

	for _, a := range layout.Attribs {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointer(a.Location, a.Size, gl.FLOAT, false, layout.StrideBytes(), gl.PtrOffset(4*a.Offset))
	}
	gl.BindVertexArray(0)
	if err := glgl.Err(); err != nil {
		gm.Delete()
		return nil, fmt.Errorf("uploading mesh: %w", err)
	}
	return gm, nil
}

// Layout returns the vertex layout of the uploaded buffer.
func (gm *GPUMesh) Layout() Layout { return gm.layout }

// Draw draws the mesh triangles with the program currently in use.
func (gm *GPUMesh) Draw() error {
	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, gm.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	return glgl.Err()
}

// Delete frees GPU buffers. The mesh must not be drawn afterwards.
func (gm *GPUMesh) Delete() {
	gl.DeleteBuffers(1, &gm.ebo)
	gl.DeleteBuffers(1, &gm.vbo)
	gl.DeleteVertexArrays(1, &gm.vao)
	*gm = GPUMesh{}
}

// Texture is a 2D RGBA texture with mipmaps.
type Texture struct {
	id            uint32
	width, height int
}

// NewTexture uploads img as a repeating, mipmapped texture. A GL context must be current.
func NewTexture(img image.Image) (*Texture, error) {
	rgba := ToRGBA(img, true)
	b := rgba.Bounds()
	if b.Empty() {
		return nil, errors.New("empty texture image")
	}
	t := &Texture{width: b.Dx(), height: b.Dy()}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.width), int32(t.height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if err := glgl.Err(); err != nil {
		t.Delete()
		return nil, fmt.Errorf("uploading %dx%d texture: %w", t.width, t.height, err)
	}
	return t, nil
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// Bind binds the texture to the texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Delete frees the texture.
func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}

// Clear clears the color and depth buffers.
func Clear(c [4]float32) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetWireframe toggles rasterizing triangles as lines.
func SetWireframe(enable bool) {
	if enable {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// SetCullBackFaces toggles culling of clockwise wound triangles.
func SetCullBackFaces(enable bool) {
	if enable {
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.BACK)
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

// SetBlend toggles alpha blending of fragments with the framebuffer.
func SetBlend(enable bool) {
	if enable {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}
}

// Viewport sets the GL viewport to cover a framebuffer of the given size.
func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}
