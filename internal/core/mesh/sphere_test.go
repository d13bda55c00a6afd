package mesh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTriangleCounts(t *testing.T) {
	want := []int{8, 32, 128, 512, 2048, 8192, 32768}
	for level, count := range want {
		m, err := CreateSphere(level, 1)
		require.NoError(t, err)
		require.Equal(t, count, m.TriangleCount(), "level %d", level)
	}
}

func TestSubdivisionRange(t *testing.T) {
	_, err := CreateSphere(-1, 1)
	require.ErrorIs(t, err, ErrSubdivision)
	_, err = CreateSphere(7, 1)
	require.ErrorIs(t, err, ErrSubdivision)
}

func TestDeterminism(t *testing.T) {
	a, err := CreateSphere(3, 2.5)
	require.NoError(t, err)
	b, err := CreateSphere(3, 2.5)
	require.NoError(t, err)
	require.Equal(t, a.Vertices, b.Vertices)
	require.Equal(t, a.Indices, b.Indices)
	require.Equal(t, a.UV, b.UV)
	require.Equal(t, a.Tangents, b.Tangents)
}

func TestVerticesOnSphere(t *testing.T) {
	const radius = 3.0
	m, err := CreateSphere(2, radius)
	require.NoError(t, err)

	for i, v := range m.Vertices {
		require.InDelta(t, radius, float64(v.Len()), 1e-4, "vertex %d", i)

		// The normal is the unit-sphere position.
		n := m.Normals[i]
		require.InDelta(t, 1.0, float64(n.Len()), 1e-4)
		require.InDelta(t, float64(v.X), float64(n.X*radius), 1e-4)
		require.InDelta(t, float64(v.Y), float64(n.Y*radius), 1e-4)
		require.InDelta(t, float64(v.Z), float64(n.Z*radius), 1e-4)
	}
}

func TestParallelArrays(t *testing.T) {
	m, err := CreateSphere(1, 1)
	require.NoError(t, err)

	n := m.VertexCount()
	require.Len(t, m.Normals, n)
	require.Len(t, m.Tangents, n)
	require.Len(t, m.UV, n)
	require.Len(t, m.UV2, n)
	require.Zero(t, len(m.Indices)%3)
	for _, idx := range m.Indices {
		require.Less(t, int(idx), n)
	}
}

func TestOutwardWinding(t *testing.T) {
	m, err := CreateSphere(2, 1)
	require.NoError(t, err)

	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]]
		b := m.Vertices[m.Indices[i+1]]
		c := m.Vertices[m.Indices[i+2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Scale(1.0 / 3.0)
		require.Greater(t, float64(normal.Dot(centroid)), 0.0,
			"triangle %d is wound inward", i/3)
	}
}

func TestUVRangesAndSeam(t *testing.T) {
	m, err := CreateSphere(2, 1)
	require.NoError(t, err)

	var u0, u1 int
	for i, uv := range m.UV {
		require.GreaterOrEqual(t, uv.X, float32(0))
		require.LessOrEqual(t, uv.X, float32(1))
		require.GreaterOrEqual(t, uv.Y, float32(0))
		require.LessOrEqual(t, uv.Y, float32(1))

		uv2 := m.UV2[i]
		require.GreaterOrEqual(t, uv2.X, float32(0))
		require.LessOrEqual(t, uv2.X, float32(1))

		if uv.X == 0 {
			u0++
		}
		if uv.X == 1 {
			u1++
		}
	}
	// Every non-pole ring duplicates its seam vertex: one u=0 and one u=1
	// vertex per ring.
	require.Equal(t, u0, u1)
	require.Greater(t, u0, 0)
}

func TestTangentsFlattenedAndNonDegenerate(t *testing.T) {
	m, err := CreateSphere(2, 1)
	require.NoError(t, err)

	for i, tan := range m.Tangents {
		require.Equal(t, float32(0), tan.Y, "tangent %d is not flattened", i)
		l := Vec3{tan.X, 0, tan.Z}.Len()
		require.InDelta(t, 1.0, float64(l), 1e-4, "tangent %d is degenerate", i)
	}

	// Pole vertices carry the quadrant-bisector fix-up instead of a zero
	// flattened normal.
	northTan := m.Tangents[0]
	require.InDelta(t, 0.7071, float64(northTan.X), 1e-3)
	require.InDelta(t, 0.7071, float64(northTan.Z), 1e-3)
}
