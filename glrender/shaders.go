package glrender

import (
	"embed"
	"strings"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFS embed.FS

// Shader is a vertex and fragment shader pair. Sources are null terminated as
// required by the GL shader compilation entry points.
type Shader struct {
	Name     string
	Vertex   string
	Fragment string
}

// Built-in shaders. All take the model, view and projection mat4 uniforms and read
// vertex attributes from the Loc* locations.
var (
	// ShaderBasic draws unlit per-vertex colors.
	ShaderBasic = mustShader("basic")
	// ShaderLit shades per-vertex colors with a directional light.
	// Uniforms: lightDir vec3, ambient float.
	ShaderLit = mustShader("lit")
	// ShaderTextured samples the texture bound to unit 0 with optional directional light.
	// Uniforms: tex sampler2D, lightDir vec3, ambient float.
	ShaderTextured = mustShader("textured")
	// ShaderIntensity maps a per-vertex scalar on [0,1] to a tinted gray level.
	// Uniforms: tint vec3.
	ShaderIntensity = mustShader("intensity")
)

func mustShader(name string) Shader {
	vert, err := shaderFS.ReadFile("shaders/" + name + ".vert")
	if err != nil {
		panic(err)
	}
	frag, err := shaderFS.ReadFile("shaders/" + name + ".frag")
	if err != nil {
		panic(err)
	}
	return Shader{
		Name:     name,
		Vertex:   nullTerminate(string(vert)),
		Fragment: nullTerminate(string(frag)),
	}
}

func nullTerminate(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}
