package mesh

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// MaxSubdivision is the highest supported sphere subdivision level.
const MaxSubdivision = 6

var ErrSubdivision = errors.New("subdivision level out of range")

// Octahedron geometry the sphere is grown from: two poles and the four
// equator corners, in quadrant order.
var (
	northPole = Vec3{0, 1, 0}
	southPole = Vec3{0, -1, 0}
	equator   = [4]Vec3{
		{1, 0, 0},
		{0, 0, 1},
		{-1, 0, 0},
		{0, 0, -1},
	}
)

// CreateSphere builds a unit-octahedron subdivision sphere, deterministic
// for a given level and radius. Level L yields exactly 8*4^L triangles.
//
// Vertices are laid out as horizontal rings walked pole to pole. Ring r of
// the upper half carries 4r segments split across the four quadrants, plus
// one duplicated seam vertex so the first UV channel can close the
// wraparound; the lower half mirrors it. Each pole is four vertices, one
// per quadrant seam, so pole UVs and tangents stay continuous around the
// wrap.
func CreateSphere(level int, radius float32) (*Mesh, error) {
	if level < 0 || level > MaxSubdivision {
		return nil, fmt.Errorf("%w: %d (want 0..%d)", ErrSubdivision, level, MaxSubdivision)
	}

	n := 1 << level
	m := &Mesh{}

	// ringStart[r] is the index of ring r's first vertex; ring 0 and ring
	// 2n are the pole quads.
	ringStart := make([]int, 2*n+1)

	addPole(m, northPole)
	for r := 1; r < 2*n; r++ {
		ringStart[r] = m.VertexCount()
		addRing(m, r, n)
	}
	ringStart[2*n] = m.VertexCount()
	addPole(m, southPole)

	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Scale(radius)
	}

	// Upper hemisphere: inner ring is the one nearer the north pole.
	for r := 0; r < n; r++ {
		stitchDown(m, ringStart[r], r, ringStart[r+1], r == 0)
	}
	// Lower hemisphere: inner ring is the one nearer the south pole.
	for r := 2 * n; r > n; r-- {
		stitchUp(m, ringStart[r], 2*n-r, ringStart[r-1], r == 2*n)
	}

	return m, nil
}

// addPole appends the four seam vertices of a pole. All four share the pole
// position and normal; UVs spread one per quadrant and tangents take the
// quadrant bisector, the explicit fix-up that keeps the wraparound free of
// a discontinuity (a flattened pole normal would be zero).
func addPole(m *Mesh, pole Vec3) {
	v := float32(1)
	if pole.Y < 0 {
		v = 0
	}
	for q := 0; q < 4; q++ {
		bisector := equator[q].Lerp(equator[(q+1)%4], 0.5).Normalize()
		m.Vertices = append(m.Vertices, pole)
		m.Normals = append(m.Normals, pole)
		m.UV = append(m.UV, Vec2{(float32(q) + 0.5) / 4, v})
		m.UV2 = append(m.UV2, Vec2{0.5, 0.5})
		m.Tangents = append(m.Tangents, Vec4{bisector.X, 0, bisector.Z, 1})
	}
}

// addRing appends ring r (0 < r < 2n): 4k+1 unit-sphere vertices where k is
// the per-quadrant segment count, the last vertex duplicating the first at
// u = 1.
func addRing(m *Mesh, r, n int) {
	k := r
	pole := northPole
	t := float32(r) / float32(n)
	if r > n {
		k = 2*n - r
		pole = southPole
		t = float32(2*n-r) / float32(n)
	}

	for j := 0; j <= 4*k; j++ {
		q := j / k
		f := float32(j-q*k) / float32(k)
		if q == 4 {
			// Seam duplicate: same direction as j = 0, u = 1.
			q, f = 3, 1
		}

		edge := equator[q].Lerp(equator[(q+1)%4], f)
		dir := pole.Lerp(edge, t).Normalize()

		// Normalizing the octahedron point is both the unit-sphere
		// vertex and its normal.
		m.Vertices = append(m.Vertices, dir)
		m.Normals = append(m.Normals, dir)

		u := float32(j) / float32(4*k)
		v := 1 - math32.Acos(clamp1(dir.Y))/math32.Pi
		m.UV = append(m.UV, Vec2{u, v})
		m.UV2 = append(m.UV2, Vec2{dir.X*0.5 + 0.5, dir.Z*0.5 + 0.5})

		flat := Vec3{dir.X, 0, dir.Z}.Normalize()
		m.Tangents = append(m.Tangents, Vec4{flat.X, 0, flat.Z, 1})
	}
}

// stitchDown stitches an upper-hemisphere band: inner is the ring nearer
// the pole with s segments per quadrant, outer the ring below with s+1.
// Per quadrant it emits s+1 "lower" triangles and s "upper" triangles,
// wound outward.
func stitchDown(m *Mesh, innerStart, innerSegs, outerStart int, innerIsPole bool) {
	s := innerSegs
	for q := 0; q < 4; q++ {
		inner := func(i int) uint32 {
			if innerIsPole {
				return uint32(innerStart + q)
			}
			return uint32(innerStart + q*s + i)
		}
		outer := func(i int) uint32 {
			return uint32(outerStart + q*(s+1) + i)
		}
		for i := 0; i <= s; i++ {
			m.Indices = append(m.Indices, inner(i), outer(i+1), outer(i))
		}
		for i := 0; i < s; i++ {
			m.Indices = append(m.Indices, inner(i), inner(i+1), outer(i+1))
		}
	}
}

// stitchUp mirrors stitchDown for the lower hemisphere: inner is the ring
// nearer the south pole, outer the larger ring above it, with the winding
// flipped to stay outward.
func stitchUp(m *Mesh, innerStart, innerSegs, outerStart int, innerIsPole bool) {
	s := innerSegs
	for q := 0; q < 4; q++ {
		inner := func(i int) uint32 {
			if innerIsPole {
				return uint32(innerStart + q)
			}
			return uint32(innerStart + q*s + i)
		}
		outer := func(i int) uint32 {
			return uint32(outerStart + q*(s+1) + i)
		}
		for i := 0; i <= s; i++ {
			m.Indices = append(m.Indices, inner(i), outer(i), outer(i+1))
		}
		for i := 0; i < s; i++ {
			m.Indices = append(m.Indices, inner(i), outer(i+1), inner(i+1))
		}
	}
}

func clamp1(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
