package mesh

import (
	"errors"
	"sync/atomic"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var nextID atomic.Uint64

// Geometry is a named vertex/index buffer pair. The CPU copy is kept so the
// geometry can be re-uploaded and used for bounds queries.
type Geometry struct {
	Name string
	Data *Data

	id         uint64
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// New wraps d in a geometry with a fresh identity. Nothing is uploaded.
func New(name string, d *Data) *Geometry {
	return &Geometry{
		Name: name,
		Data: d,
		id:   nextID.Add(1),
	}
}

// ID is the stable identity used to group draws sharing this geometry.
func (g *Geometry) ID() uint64 { return g.id }

// Radius of the bounding sphere in local space.
func (g *Geometry) Radius() float32 {
	if g.Data == nil {
		return 0
	}
	return g.Data.Radius
}

// Uploaded reports whether GPU buffers exist.
func (g *Geometry) Uploaded() bool { return g.vao != 0 }

// IndexCount is the number of indices drawn by Draw.
func (g *Geometry) IndexCount() int32 { return g.indexCount }

// Upload creates the VAO, VBO and EBO from the CPU data.
// Requires a current GL context.
func (g *Geometry) Upload() error {
	if g.Data == nil || len(g.Data.Vertices) == 0 || len(g.Data.Indices) == 0 {
		return errors.New("empty geometry")
	}
	if g.Uploaded() {
		g.Destroy()
	}

	vertices := g.Data.Vertices
	indices := g.Data.Indices

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	vertexSize := int(unsafe.Sizeof(Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	g.indexCount = int32(len(indices))
	gl.BindVertexArray(0)
	return nil
}

// Bind makes the geometry's VAO current.
func (g *Geometry) Bind() {
	gl.BindVertexArray(g.vao)
}

// Draw issues one indexed draw. The VAO must be bound.
func (g *Geometry) Draw() {
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
}

// Destroy releases GPU buffers. The CPU data is kept.
func (g *Geometry) Destroy() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
		g.ebo = 0
	}
	g.indexCount = 0
}
