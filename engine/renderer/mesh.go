package renderer

import "github.com/YannUFLL/HumanGL/engine/math"

// CubePositions are the corners of the unit cube centred on the origin.
// Every body segment is this cube under its model matrix.
var CubePositions = [8]math.Vec3{
	{-0.5, -0.5, -0.5}, {+0.5, -0.5, -0.5}, {+0.5, +0.5, -0.5}, {-0.5, +0.5, -0.5},
	{-0.5, -0.5, +0.5}, {+0.5, -0.5, +0.5}, {+0.5, +0.5, +0.5}, {-0.5, +0.5, +0.5},
}

// CubeIndices lists two triangles per face.
var CubeIndices = [36]uint32{
	0, 1, 2, 2, 3, 0, // back
	4, 5, 6, 6, 7, 4, // front
	0, 4, 7, 7, 3, 0, // left
	1, 5, 6, 6, 2, 1, // right
	3, 2, 6, 6, 7, 3, // top
	0, 1, 5, 5, 4, 0, // bottom
}

// Triangle is one indexed face triangle with its face normal.
type Triangle struct {
	V      [3]math.Vec3
	Normal math.Vec3
}

// GenerateTriangles expands an indexed mesh and computes a face normal per
// triangle. The normal follows the index winding, so callers that light both
// sides must not rely on its sign.
func GenerateTriangles(positions []math.Vec3, indices []uint32) []Triangle {
	tris := make([]Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		p0 := positions[indices[i+0]]
		p1 := positions[indices[i+1]]
		p2 := positions[indices[i+2]]

		edge1 := p1.Sub(p0)
		edge2 := p2.Sub(p0)
		normal := edge1.Cross(edge2)
		if normal.Len() > 0 {
			normal = normal.Normalize()
		}
		tris = append(tris, Triangle{V: [3]math.Vec3{p0, p1, p2}, Normal: normal})
	}
	return tris
}

var cubeTriangles = GenerateTriangles(CubePositions[:], CubeIndices[:])

// CubeTriangles returns the shared, read-only triangle list of the unit cube.
func CubeTriangles() []Triangle {
	return cubeTriangles
}

// CubeVertexData flattens CubePositions for upload to a vertex buffer.
func CubeVertexData() []float32 {
	data := make([]float32, 0, len(CubePositions)*3)
	for _, p := range CubePositions {
		data = append(data, p[0], p[1], p[2])
	}
	return data
}
