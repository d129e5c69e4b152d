package mesh

import (
	"github.com/chewxy/math32"
)

// Cube returns a unit cube centered on the origin with per-face normals.
func Cube() *Data {
	faces := []struct {
		normal [3]float32
		u, v   [3]float32
	}{
		{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{0, 0, -1}, [3]float32{-1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0, 1, 0}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},
		{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	d := &Data{}
	for _, f := range faces {
		base := uint32(len(d.Vertices))
		for _, c := range corners {
			var p [3]float32
			for i := 0; i < 3; i++ {
				p[i] = 0.5 * (f.normal[i] + c[0]*f.u[i] + c[1]*f.v[i])
			}
			d.Vertices = append(d.Vertices, Vertex{
				Position: p,
				Normal:   f.normal,
				TexCoord: [2]float32{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	d.ComputeBounds()
	return d
}

// Sphere returns a UV sphere of radius 1. rings and segments are clamped to
// a minimum of 3.
func Sphere(rings, segments int) *Data {
	if rings < 3 {
		rings = 3
	}
	if segments < 3 {
		segments = 3
	}

	d := &Data{}
	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		phi := v * math32.Pi
		sp, cp := math32.Sincos(phi)
		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			theta := u * 2 * math32.Pi
			st, ct := math32.Sincos(theta)
			n := [3]float32{sp * ct, cp, sp * st}
			d.Vertices = append(d.Vertices, Vertex{
				Position: n,
				Normal:   n,
				TexCoord: [2]float32{u, v},
			})
		}
	}

	stride := uint32(segments + 1)
	for r := uint32(0); r < uint32(rings); r++ {
		for s := uint32(0); s < uint32(segments); s++ {
			a := r*stride + s
			b := a + stride
			d.Indices = append(d.Indices, a, a+1, b, a+1, b+1, b)
		}
	}
	SmoothNormals(d.Vertices)
	d.ComputeBounds()
	return d
}

// Quad returns a 1x1 quad in the XY plane facing +Z.
func Quad() *Data {
	d := &Data{
		Vertices: []Vertex{
			{Position: [3]float32{-0.5, -0.5, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{0.5, -0.5, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{0.5, 0.5, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{1, 1}},
			{Position: [3]float32{-0.5, 0.5, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0, 1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	d.ComputeBounds()
	return d
}
