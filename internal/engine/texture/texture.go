package texture

import (
	"errors"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Options control sampling of an uploaded texture.
type Options struct {
	Mipmaps bool
	Repeat  bool
	Nearest bool
}

// Upload creates a 2D texture from img. Requires a current GL context.
func Upload(img *image.RGBA, opts Options) (uint32, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, errors.New("empty image")
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	minFilter, magFilter := int32(gl.LINEAR), int32(gl.LINEAR)
	if opts.Nearest {
		minFilter, magFilter = gl.NEAREST, gl.NEAREST
	}
	if opts.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		minFilter = gl.LINEAR_MIPMAP_LINEAR
		if opts.Nearest {
			minFilter = gl.NEAREST_MIPMAP_NEAREST
		}
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	wrap := int32(gl.CLAMP_TO_EDGE)
	if opts.Repeat {
		wrap = gl.REPEAT
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id, nil
}

// Delete frees a texture created by Upload.
func Delete(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}
