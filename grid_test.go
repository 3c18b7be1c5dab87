package lightvis

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

func TestGridLevelMonotonic(t *testing.T) {
	prev := gridLevel(minScale)
	for scale := float32(minScale); scale < maxScale; scale *= 1.17 {
		level := gridLevel(scale)
		if level < prev {
			t.Fatalf("grid level decreased from %d to %d at scale %g", prev, level, scale)
		}
		prev = level
	}
}

func TestGridBlendZeroAtDecadeBoundary(t *testing.T) {
	// scale*5 an exact power of ten: the finer level fades out completely.
	for _, scale := range []float32{0.2, 2, 20, 200} {
		if blend := gridBlend(scale); blend != 0 {
			t.Errorf("blend at scale %g: got %g, want 0", scale, blend)
		}
	}
	if blend := gridBlend(3); blend <= 0 || blend >= 1 {
		t.Errorf("blend away from boundary: got %g, want in (0,1)", blend)
	}
}

func TestGridBlendIncreasesWithinDecade(t *testing.T) {
	prev := gridBlend(2.01)
	for scale := float32(2.2); scale < 19.5; scale += 0.7 {
		blend := gridBlend(scale)
		if blend <= prev {
			t.Fatalf("blend not increasing inside decade: %g then %g at scale %g", prev, blend, scale)
		}
		prev = blend
	}
}

func TestCubeLineCount(t *testing.T) {
	for _, loc := range []ms3.Vec{{}, {X: 3, Y: -7, Z: 0.5}} {
		verts, colors := cubeLines(loc, nil, nil)
		if len(verts) != 24 {
			t.Errorf("cube vertex count: got %d, want 24", len(verts))
		}
		if len(colors) != len(verts) {
			t.Errorf("cube color count %d does not match vertex count %d", len(colors), len(verts))
		}
	}
}

func TestGridLinesStayInsideClipCube(t *testing.T) {
	for _, scale := range []float32{0.037, 1, 42} {
		loc := ms3.Vec{X: 1.3, Y: -2.7, Z: 0.4}
		verts, colors := gridLines(scale, loc, nil, nil)
		if len(verts) == 0 || len(verts)%2 != 0 {
			t.Fatalf("scale %g: got %d grid vertices, want a positive even count", scale, len(verts))
		}
		if len(colors) != len(verts) {
			t.Fatalf("scale %g: %d colors for %d vertices", scale, len(colors), len(verts))
		}
		for _, v := range verts {
			d := ms3.Sub(v, loc)
			if math32.Abs(d.X) > gridClip+1e-4 || math32.Abs(d.Y) > gridClip+1e-4 {
				t.Fatalf("scale %g: vertex %v outside clip cube around %v", scale, v, loc)
			}
		}
	}
}

func TestGridFinerLevelHasMoreLines(t *testing.T) {
	scale := float32(1)
	level := gridLevel(scale)
	coarse, _ := gridLevelLines(scale, ms3.Vec{}, level-1, gridAlpha, nil, nil)
	fine, _ := gridLevelLines(scale, ms3.Vec{}, level, gridAlpha, nil, nil)
	if len(fine) <= len(coarse) {
		t.Errorf("finer level has %d vertices, coarse %d", len(fine), len(coarse))
	}
}
