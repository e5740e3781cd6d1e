//go:build tinygo || !cgo

package glrender

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glshapes"
)

type Program struct{}

func NewProgram(src Shader) (*Program, error) { return nil, ErrNoCGO }

func (p *Program) Use() {}
func (p *Program) Delete() {}
func (p *Program) SetMat4(name string, m mgl32.Mat4) error { return ErrNoCGO }
func (p *Program) SetVec3(name string, v ms3.Vec) error { return ErrNoCGO }
func (p *Program) SetFloat(name string, v float32) error { return ErrNoCGO }
func (p *Program) SetInt(name string, v int32) error { return ErrNoCGO }
func (p *Program) SetMVP(model, view, projection mgl32.Mat4) error { return ErrNoCGO }

type GPUMesh struct{}

func Upload(m *glshapes.Mesh, intensity []float32) (*GPUMesh, error) { return nil, ErrNoCGO }

func (gm *GPUMesh) Layout() Layout { return Layout{} }
func (gm *GPUMesh) Draw() error { return ErrNoCGO }
func (gm *GPUMesh) Delete() {}

type Texture struct{}

func NewTexture(img image.Image) (*Texture, error) { return nil, ErrNoCGO }

func (t *Texture) Size() (width, height int) { return 0, 0 }
func (t *Texture) Bind(unit uint32) {}
func (t *Texture) Delete() {}

func Clear(c [4]float32) {}
func SetWireframe(enable bool) {}
func SetCullBackFaces(enable bool) {}
func SetBlend(enable bool) {}
func Viewport(width, height int) {}
