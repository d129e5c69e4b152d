// Package mesh holds mesh vertex data and the GPU buffers built from it.
package mesh

import "github.com/go-gl/mathgl/mgl32"

// Vertex is an interleaved mesh vertex with position, normal and texture
// coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Data is CPU-side mesh data ready for GPU upload.
type Data struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
	Radius   float32 // farthest vertex from the origin
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// ComputeBounds recalculates d.Bounds and d.Radius from the vertex
// positions.
func (d *Data) ComputeBounds() {
	d.Bounds = emptyBounds()
	d.Radius = 0
	for i := range d.Vertices {
		p := d.Vertices[i].Position
		updateBounds(&d.Bounds, p)
		if l := mgl32.Vec3(p).Len(); l > d.Radius {
			d.Radius = l
		}
	}
	if len(d.Vertices) == 0 {
		d.Bounds = Bounds{}
	}
}

// SmoothNormals averages normals at shared vertex positions.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum mgl32.Vec3
		for _, idx := range idxs {
			sum = sum.Add(mgl32.Vec3(vertices[idx].Normal))
		}
		if sum.Len() == 0 {
			continue
		}
		avg := sum.Normalize()

		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}
