package lightvis

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// Grid geometry extents in render units around the focus point. Lines are
// clipped to the ±gridClip cube; the reference cube spans ±cubeHalf.
const (
	gridClip  = 10.5
	cubeHalf  = 10.0
	gridAlpha = 0.25
)

// gridLevelFrac splits log10(scale*5) into the finer grid decade level and
// the fractional position inside it. Values within rounding error of a whole
// decade snap to it so the blend weight is exactly zero at the boundary.
func gridLevelFrac(scale float32) (level int, frac float32) {
	l := math32.Log10(scale * 5)
	if r := math32.Round(l); math32.Abs(l-r) < 1e-6 {
		return int(r), 0
	}
	f := math32.Floor(l)
	return int(f), l - f
}

// gridLevel returns the finer of the two grid decade levels drawn at the
// given scale. It is monotonically non-decreasing in scale.
func gridLevel(scale float32) int {
	level, _ := gridLevelFrac(scale)
	return level
}

// gridBlend returns the alpha weight in [0,1) applied to the finer level's
// base alpha. It is exactly 0 when scale*5 is a power of ten, producing a
// smooth crossfade between adjacent decades instead of popping.
func gridBlend(scale float32) float32 {
	_, frac := gridLevelFrac(scale)
	return math32.Pow(frac, 0.9)
}

// gridLines appends the reference grid line segments for the current scale
// and focus location: the two adjacent decade levels, each a set of
// axis-aligned segments in the plane through the focus point, spaced at
// 10^-level world units scaled into render space and offset so lines fall on
// multiples of the world spacing. Vertices come in pairs forming GL_LINES.
func gridLines(scale float32, location ms3.Vec, verts []ms3.Vec, colors []Color) ([]ms3.Vec, []Color) {
	level := gridLevel(scale)
	blend := gridBlend(scale)
	verts, colors = gridLevelLines(scale, location, level-1, gridAlpha, verts, colors)
	verts, colors = gridLevelLines(scale, location, level, gridAlpha*blend, verts, colors)
	return verts, colors
}

func gridLevelLines(scale float32, location ms3.Vec, level int, alpha float32, verts []ms3.Vec, colors []Color) ([]ms3.Vec, []Color) {
	spacing := math32.Pow(10, -float32(level))
	color := Color{R: 1, G: 1, B: 1, A: alpha}
	z := location.Z
	// Lines at world coordinate n*spacing map to render coordinate
	// (n*spacing - location)*scale around the focus; keep those inside the
	// clip cube.
	appendAxis := func(center float32, line func(at float32) (a, b ms3.Vec)) {
		lo := int(math32.Ceil((center - gridClip/scale) / spacing))
		hi := int(math32.Floor((center + gridClip/scale) / spacing))
		for n := lo; n <= hi; n++ {
			at := (float32(n)*spacing - center) * scale
			a, b := line(at)
			verts = append(verts, a, b)
			colors = append(colors, color, color)
		}
	}
	appendAxis(location.X, func(at float32) (ms3.Vec, ms3.Vec) {
		a := ms3.Vec{X: location.X + at, Y: location.Y - gridClip, Z: z}
		b := ms3.Vec{X: location.X + at, Y: location.Y + gridClip, Z: z}
		return a, b
	})
	appendAxis(location.Y, func(at float32) (ms3.Vec, ms3.Vec) {
		a := ms3.Vec{X: location.X - gridClip, Y: location.Y + at, Z: z}
		b := ms3.Vec{X: location.X + gridClip, Y: location.Y + at, Z: z}
		return a, b
	})
	return verts, colors
}

// cubeLines appends the fixed wireframe reference cube around the focus
// point: 12 edges as 24 GL_LINES vertices, independent of scale.
func cubeLines(location ms3.Vec, verts []ms3.Vec, colors []Color) ([]ms3.Vec, []Color) {
	color := Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	corner := func(i int) ms3.Vec {
		v := ms3.Vec{X: -cubeHalf, Y: -cubeHalf, Z: -cubeHalf}
		if i&1 != 0 {
			v.X = cubeHalf
		}
		if i&2 != 0 {
			v.Y = cubeHalf
		}
		if i&4 != 0 {
			v.Z = cubeHalf
		}
		return ms3.Add(location, v)
	}
	for i := 0; i < 8; i++ {
		for _, axis := range [3]int{1, 2, 4} {
			j := i | axis
			if j == i {
				continue
			}
			verts = append(verts, corner(i), corner(j))
			colors = append(colors, color, color)
		}
	}
	return verts, colors
}
