package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/YannUFLL/HumanGL/engine/core"
)

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec3 aPos;
uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
out vec3 vViewPos;
void main() {
    vec4 p = view * model * vec4(aPos, 1.0);
    vViewPos = p.xyz;
    gl_Position = projection * p;
}
` + "\x00"

// Flat shading: the face normal is rebuilt from screen-space derivatives of
// the view position, so the cube only needs positions.
const fragmentShaderSource = `#version 410 core
in vec3 vViewPos;
uniform vec4 color;
uniform vec3 lightDir;
uniform float ambient;
out vec4 FragColor;
void main() {
    vec3 n = normalize(cross(dFdx(vViewPos), dFdy(vViewPos)));
    float ndl = abs(dot(n, lightDir));
    FragColor = vec4(color.rgb * (ambient + (1.0 - ambient) * ndl), color.a);
}
` + "\x00"

type program struct {
	id         uint32
	model      int32
	view       int32
	projection int32
	color      int32
	lightDir   int32
	ambient    int32
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%w: %s", core.ErrShaderCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func newProgram(vertexSource, fragmentSource string) (*program, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return nil, fmt.Errorf("fragment shader: %w", err)
	}

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	// Shaders are owned by the program once linked.
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteProgram(id)

		return nil, fmt.Errorf("%w: %s", core.ErrShaderLink, strings.TrimRight(log, "\x00"))
	}

	p := &program{id: id}
	p.model = p.uniform("model")
	p.view = p.uniform("view")
	p.projection = p.uniform("projection")
	p.color = p.uniform("color")
	p.lightDir = p.uniform("lightDir")
	p.ambient = p.uniform("ambient")
	return p, nil
}

func (p *program) uniform(name string) int32 {
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		core.LogWarn("uniform %q not found in program %d", name, p.id)
	}
	return loc
}

func (p *program) use() {
	gl.UseProgram(p.id)
}

func (p *program) destroy() {
	gl.DeleteProgram(p.id)
}
