// Package glshader wraps an OpenGL program together with the vertex state
// needed to stream geometry at it: one vertex array object, one index buffer
// and a lazily grown set of named attribute buffers. A Shader must only be
// used on the thread owning the GL context it was created on.
package glshader

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

// RGBA is a premultiplied-nothing linear color as consumed by vertex color
// attributes. Field layout is upload order.
type RGBA struct {
	R, G, B, A float32
}

// Shader is a compiled and linked vertex+fragment program with its buffers.
type Shader struct {
	prog glgl.Program

	vao      uint32
	indices  uint32
	uniforms map[string]int32
	attribs  map[string]uint32
	// One vertex buffer per attribute location, created on first upload.
	buffers map[uint32]uint32
}

// New compiles and links the program from GLSL sources. Sources need not be
// NUL-terminated. The returned Shader owns all GL objects it creates and must
// be released with Delete on the same context.
func New(vertexSrc, fragmentSrc string) (*Shader, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vertexSrc + "\x00",
		Fragment: fragmentSrc + "\x00",
	})
	if err != nil {
		return nil, fmt.Errorf("compiling shader program: %w", err)
	}
	s := &Shader{
		prog:     prog,
		uniforms: make(map[string]int32),
		attribs:  make(map[string]uint32),
		buffers:  make(map[uint32]uint32),
	}
	gl.GenVertexArrays(1, &s.vao)
	gl.GenBuffers(1, &s.indices)
	return s, nil
}

// Bind makes the program, vertex array and index buffer current.
func (s *Shader) Bind() {
	s.prog.Bind()
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.indices)
}

// Unbind undoes Bind.
func (s *Shader) Unbind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	s.prog.Unbind()
}

// Delete releases every GL object owned by the shader. The shader is unusable
// afterwards.
func (s *Shader) Delete() {
	for _, buf := range s.buffers {
		gl.DeleteBuffers(1, &buf)
	}
	gl.DeleteBuffers(1, &s.indices)
	gl.DeleteVertexArrays(1, &s.vao)
	s.prog.Delete()
}

// SetUniformMat4 uploads a column-major 4x4 matrix uniform.
func (s *Shader) SetUniformMat4(name string, m mgl32.Mat4) error {
	loc, err := s.uniform(name)
	if err != nil {
		return err
	}
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
	return nil
}

// SetUniform1f uploads a float uniform.
func (s *Shader) SetUniform1f(name string, v float32) error {
	loc, err := s.uniform(name)
	if err != nil {
		return err
	}
	gl.Uniform1f(loc, v)
	return nil
}

// SetAttributeVec3 uploads 3-component float vertex data to the named
// attribute, creating its buffer on first use.
func (s *Shader) SetAttributeVec3(name string, data []ms3.Vec) error {
	if len(data) == 0 {
		return nil
	}
	return s.setAttribute(name, 3, len(data), 3*4, unsafe.Pointer(&data[0]))
}

// SetAttributeVec2 uploads 2-component float vertex data.
func (s *Shader) SetAttributeVec2(name string, data []ms2.Vec) error {
	if len(data) == 0 {
		return nil
	}
	return s.setAttribute(name, 2, len(data), 2*4, unsafe.Pointer(&data[0]))
}

// SetAttributeRGBA uploads 4-component color vertex data.
func (s *Shader) SetAttributeRGBA(name string, data []RGBA) error {
	if len(data) == 0 {
		return nil
	}
	return s.setAttribute(name, 4, len(data), 4*4, unsafe.Pointer(&data[0]))
}

func (s *Shader) setAttribute(name string, comps, count, elemSize int, ptr unsafe.Pointer) error {
	attrib, err := s.attribute(name)
	if err != nil {
		return err
	}
	buf, ok := s.buffers[attrib]
	if !ok {
		gl.GenBuffers(1, &buf)
		s.buffers[attrib] = buf
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.BufferData(gl.ARRAY_BUFFER, elemSize*count, ptr, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(attrib)
	gl.VertexAttribPointer(attrib, int32(comps), gl.FLOAT, false, 0, nil)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return glgl.Err()
}

// SetIndices uploads the element index buffer used by DrawIndexed.
func (s *Shader) SetIndices(indices []uint32) {
	if len(indices) == 0 {
		return
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.indices)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(indices), gl.Ptr(indices), gl.DYNAMIC_DRAW)
}

// Draw issues a non-indexed draw call with the given primitive mode.
func (s *Shader) Draw(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

// DrawIndexed issues an indexed draw call starting at the given element offset.
func (s *Shader) DrawIndexed(mode uint32, start, count int32) {
	gl.DrawElementsWithOffset(mode, count, gl.UNSIGNED_INT, uintptr(start)*4)
}

func (s *Shader) uniform(name string) (int32, error) {
	if loc, ok := s.uniforms[name]; ok {
		return loc, nil
	}
	loc, err := s.prog.UniformLocation(name + "\x00")
	if err != nil {
		return 0, fmt.Errorf("uniform %q: %w", name, err)
	}
	s.uniforms[name] = loc
	return loc, nil
}

func (s *Shader) attribute(name string) (uint32, error) {
	if loc, ok := s.attribs[name]; ok {
		return loc, nil
	}
	loc, err := s.prog.AttribLocation(name + "\x00")
	if err != nil {
		return 0, fmt.Errorf("attribute %q: %w", name, err)
	}
	s.attribs[name] = loc
	return loc, nil
}
