package lightvis

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/itsuhane/lightvis/glshader"
	"github.com/soypat/glgl/math/ms3"
)

const sceneVertexShader = `#version 330 core
uniform mat4 ProjMat;
uniform mat4 ViewMat;
uniform mat4 ModelMat;
in vec3 Position;
in vec4 Color;
out vec4 Frag_Color;
void main() {
    Frag_Color = Color;
    gl_Position = ProjMat * ViewMat * ModelMat * vec4(Position, 1.0);
    gl_PointSize = 3.0;
}`

const sceneFragmentShader = `#version 330 core
in vec4 Frag_Color;
out vec4 Out_Color;
void main() {
    Out_Color = Frag_Color;
}`

// sceneRenderer draws the reference grid, the bounding cube and the window's
// scene records. Scratch buffers are reused across frames so steady-state
// rendering does not allocate.
type sceneRenderer struct {
	shader *glshader.Shader
	verts  []ms3.Vec
	colors []Color
}

func newSceneRenderer() (*sceneRenderer, error) {
	shader, err := glshader.New(sceneVertexShader, sceneFragmentShader)
	if err != nil {
		return nil, err
	}
	return &sceneRenderer{shader: shader}, nil
}

func (r *sceneRenderer) release() {
	r.shader.Delete()
}

// draw renders one frame of grid plus scene records. Geometry is brought into
// render space around the focus point, q = location + (p-location)*scale, so
// zooming scales the scene about the point the camera is looking at.
func (r *sceneRenderer) draw(w *Window, fbWidth, fbHeight int) {
	cam := w.camera
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	sh := r.shader
	sh.Bind()
	defer sh.Unbind()
	sh.SetUniformMat4("ProjMat", cam.ProjectionMatrix(cam.fovFactor, cam.near, cam.far))
	sh.SetUniformMat4("ViewMat", cam.ViewMatrix())
	sh.SetUniformMat4("ModelMat", cam.ModelMatrix())

	// Grid and reference cube.
	r.verts, r.colors = r.verts[:0], r.colors[:0]
	r.verts, r.colors = gridLines(cam.scale, cam.location, r.verts, r.colors)
	r.verts, r.colors = cubeLines(cam.location, r.verts, r.colors)
	if len(r.verts) > 0 {
		sh.SetAttributeVec3("Position", r.verts)
		sh.SetAttributeRGBA("Color", r.colors)
		sh.Draw(gl.LINES, 0, int32(len(r.verts)))
	}

	// Scene records in registration order.
	for i := range w.scene.records {
		rec := &w.scene.records[i]
		if len(rec.points) == 0 {
			continue
		}
		r.verts, r.colors = r.verts[:0], r.colors[:0]
		for _, p := range rec.points {
			q := ms3.Add(cam.location, ms3.Scale(cam.scale, ms3.Sub(p, cam.location)))
			r.verts = append(r.verts, q)
		}
		r.colors = rec.colors.resolve(len(rec.points), r.colors)
		sh.SetAttributeVec3("Position", r.verts)
		sh.SetAttributeRGBA("Color", r.colors)
		mode := uint32(gl.POINTS)
		if rec.kind == recordTrajectory {
			mode = gl.LINE_STRIP
		}
		sh.Draw(mode, 0, int32(len(r.verts)))
	}

	gl.Disable(gl.BLEND)
}
