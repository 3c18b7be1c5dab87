package lightvis

import (
	"github.com/itsuhane/lightvis/glshader"
	"github.com/soypat/glgl/math/ms3"
)

// Color is the RGBA color value used for points, trajectories and grid lines.
type Color = glshader.RGBA

// ColorSource colors a record either with a single uniform color or with one
// color per point. The zero value is an opaque white uniform.
type ColorSource struct {
	uniform    Color
	perPoint   []Color
	hasUniform bool
}

// Uniform returns a ColorSource applying one color to every point.
func Uniform(c Color) ColorSource {
	return ColorSource{uniform: c, hasUniform: true}
}

// PerPoint returns a ColorSource with one color per point. The sequence length
// must match the record's point count; a mismatch is a caller error with
// undefined rendering results.
func PerPoint(colors []Color) ColorSource {
	return ColorSource{perPoint: colors}
}

// resolve appends n vertex colors to dst: the per-point sequence if present,
// otherwise the uniform color broadcast n times.
func (cs ColorSource) resolve(n int, dst []Color) []Color {
	if cs.perPoint != nil {
		return append(dst, cs.perPoint...)
	}
	c := cs.uniform
	if !cs.hasUniform {
		c = Color{R: 1, G: 1, B: 1, A: 1}
	}
	for i := 0; i < n; i++ {
		dst = append(dst, c)
	}
	return dst
}

type recordKind uint8

const (
	recordPoints recordKind = iota
	recordTrajectory
)

// Record is one scene entry: a point set drawn either as unconnected points
// or as an ordered polyline.
type Record struct {
	points []ms3.Vec
	colors ColorSource
	kind   recordKind
}

// Scene is a per-window append-only registry of records. Records alias the
// caller's point slice rather than copying it, so the caller sees a live view:
// mutations of the slice contents show up in subsequent frames. Appending to
// the caller's slice after registration does not.
type Scene struct {
	records []Record
}

// AddPoints registers a point cloud drawn as unconnected points.
func (s *Scene) AddPoints(points []ms3.Vec, colors ColorSource) {
	s.records = append(s.records, Record{points: points, colors: colors, kind: recordPoints})
}

// AddTrajectory registers an ordered polyline through the given points.
func (s *Scene) AddTrajectory(points []ms3.Vec, colors ColorSource) {
	s.records = append(s.records, Record{points: points, colors: colors, kind: recordTrajectory})
}
