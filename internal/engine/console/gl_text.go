package console

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenecore/internal/engine/shader"
)

// floats per vertex: pos2 + uv2 + color4
const textStride = 8

// GLText draws console text with the bitmap atlas.
type GLText struct {
	atlas   *Atlas
	program *shader.Program
	texture uint32
	vao     uint32
	vbo     uint32
	scale   float32

	vertices []float32
}

// NewGLText uploads the atlas and builds the text program. Requires a
// current GL context.
func NewGLText(scale float32) (*GLText, error) {
	if scale <= 0 {
		scale = 1
	}
	program, err := shader.NewProgram("text", shader.TextVertexShader, shader.TextFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("console text: %w", err)
	}
	t := &GLText{
		atlas:    NewAtlas(),
		program:  program,
		scale:    scale,
		vertices: make([]float32, 0, 4096),
	}
	t.uploadAtlas()
	t.createBuffers()
	return t, nil
}

func (t *GLText) uploadAtlas() {
	img := t.atlas.Image
	gl.GenTextures(1, &t.texture)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (t *GLText) createBuffers() {
	gl.GenVertexArrays(1, &t.vao)
	gl.GenBuffers(1, &t.vbo)

	gl.BindVertexArray(t.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)

	stride := int32(textStride * 4)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 4*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
}

// LineHeight in pixels.
func (t *GLText) LineHeight() float32 {
	return float32(t.atlas.CellH) * t.scale
}

// DrawText queues one line with its bottom-left corner at (x, y).
func (t *GLText) DrawText(text string, x, y float32, color mgl32.Vec4) {
	t.vertices = appendText(t.vertices, t.atlas, text, x, y, t.scale, color)
}

// appendText emits two triangles per glyph. Spaces advance without
// emitting geometry.
func appendText(dst []float32, a *Atlas, text string, x, y, scale float32, c mgl32.Vec4) []float32 {
	w := float32(a.CellW) * scale
	h := float32(a.CellH) * scale
	adv := float32(a.Advance) * scale
	for _, r := range text {
		if r == ' ' {
			x += adv
			continue
		}
		u0, v0, u1, v1 := a.UV(r)
		x0, y0, x1, y1 := x, y, x+w, y+h
		dst = append(dst,
			x0, y0, u0, v1, c[0], c[1], c[2], c[3],
			x1, y0, u1, v1, c[0], c[1], c[2], c[3],
			x1, y1, u1, v0, c[0], c[1], c[2], c[3],
			x0, y0, u0, v1, c[0], c[1], c[2], c[3],
			x1, y1, u1, v0, c[0], c[1], c[2], c[3],
			x0, y1, u0, v0, c[0], c[1], c[2], c[3],
		)
		x += adv
	}
	return dst
}

// Flush draws all queued text and resets the queue.
func (t *GLText) Flush(projection mgl32.Mat4) {
	if len(t.vertices) == 0 {
		return
	}

	t.program.Use()
	t.program.SetMat4("uProjection", projection)
	t.program.SetInt("uAtlas", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)

	gl.BindVertexArray(t.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(t.vertices)*4, unsafe.Pointer(&t.vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(t.vertices)/textStride))

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	t.vertices = t.vertices[:0]
}

// Close releases GL resources.
func (t *GLText) Close() {
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
		t.vao = 0
	}
	if t.vbo != 0 {
		gl.DeleteBuffers(1, &t.vbo)
		t.vbo = 0
	}
	if t.texture != 0 {
		gl.DeleteTextures(1, &t.texture)
		t.texture = 0
	}
	t.program.Delete()
}
