package mesh

import "github.com/chewxy/math32"

// Vec2 is a 2D float32 vector, used for UV channels.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D point/vector (Y up).
type Vec3 struct {
	X, Y, Z float32
}

func (a Vec3) Add(b Vec3) Vec3      { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3      { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float32) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float32   { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Len() float32         { return math32.Sqrt(a.Dot(a)) }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{0, 1, 0}
	}
	return a.Scale(1 / l)
}

// Lerp interpolates between a and b by t in [0, 1].
func (a Vec3) Lerp(b Vec3, t float32) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Vec4 is a tangent: a direction plus a handedness sign in W.
type Vec4 struct {
	X, Y, Z, W float32
}

// Mesh is the generated geometry handed to the host for rendering: indexed
// triangles with per-vertex normals, two UV channels (spherical and planar
// top-down) and approximate tangents.
type Mesh struct {
	Vertices []Vec3
	Normals  []Vec3
	Tangents []Vec4
	UV       []Vec2
	UV2      []Vec2
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}
