package lightvis

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

const guiVertexShader = `#version 330 core
uniform mat4 ProjMat;
in vec2 Position;
in vec2 TexCoord;
in vec4 Color;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main() {
    Frag_UV = TexCoord;
    Frag_Color = Color;
    gl_Position = ProjMat * vec4(Position.xy, 0, 1);
}` + "\x00"

const guiFragmentShader = `#version 330 core
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
out vec4 Out_Color;
void main() {
    Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}` + "\x00"

// guiRenderer converts accumulated imgui draw commands into GL draw calls:
// one interleaved vertex/index stream, scissored per command, textured with
// the baked font atlas. It is load-bearing for interaction, so construction
// failure is treated as fatal by the caller.
type guiRenderer struct {
	prog        glgl.Program
	vao         uint32
	vbo, ebo    uint32
	fontTexture uint32

	uniformTexture int32
	uniformProjMat int32
}

func newGUIRenderer(io imgui.IO) (*guiRenderer, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   guiVertexShader,
		Fragment: guiFragmentShader,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling GUI overlay program: %w", err)
	}
	r := &guiRenderer{prog: prog}

	r.uniformTexture, err = prog.UniformLocation("Texture\x00")
	if err != nil {
		return nil, err
	}
	r.uniformProjMat, err = prog.UniformLocation("ProjMat\x00")
	if err != nil {
		return nil, err
	}
	attribPosition, err := prog.AttribLocation("Position\x00")
	if err != nil {
		return nil, err
	}
	attribTexCoord, err := prog.AttribLocation("TexCoord\x00")
	if err != nil {
		return nil, err
	}
	attribColor, err := prog.AttribLocation("Color\x00")
	if err != nil {
		return nil, err
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.EnableVertexAttribArray(attribPosition)
	gl.EnableVertexAttribArray(attribTexCoord)
	gl.EnableVertexAttribArray(attribColor)
	vertexSize, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()
	gl.VertexAttribPointer(attribPosition, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(posOffset))
	gl.VertexAttribPointer(attribTexCoord, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(uvOffset))
	gl.VertexAttribPointer(attribColor, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), gl.PtrOffset(colOffset))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	// Bake the default font atlas into a texture owned by this renderer.
	image := io.Fonts().TextureDataRGBA32()
	gl.GenTextures(1, &r.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(image.Width), int32(image.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, image.Pixels)
	io.Fonts().SetTextureID(imgui.TextureID(r.fontTexture))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return r, nil
}

func (r *guiRenderer) release() {
	gl.DeleteTextures(1, &r.fontTexture)
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	r.prog.Delete()
}

// render executes the frame's accumulated GUI draw data on top of the scene.
func (r *guiRenderer) render(displayWidth, displayHeight, fbWidth, fbHeight int, drawData imgui.DrawData) {
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / float32(displayWidth),
		Y: float32(fbHeight) / float32(displayHeight),
	})

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	r.prog.Bind()
	gl.Uniform1i(r.uniformTexture, 0)
	ortho := mgl32.Ortho2D(0, float32(displayWidth), float32(displayHeight), 0)
	gl.UniformMatrix4fv(r.uniformProjMat, 1, false, &ortho[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)
		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		var indexBufferOffset uintptr
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				clip := cmd.ClipRect()
				gl.Scissor(int32(clip.X), int32(fbHeight)-int32(clip.W),
					int32(clip.Z-clip.X), int32(clip.W-clip.Y))
				gl.DrawElementsWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, indexBufferOffset)
			}
			indexBufferOffset += uintptr(cmd.ElementCount() * indexSize)
		}
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.prog.Unbind()
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
}
