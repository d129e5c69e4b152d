// Package texture converts images to RGBA and uploads them as GL textures.
package texture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ToRGBA returns img as *image.RGBA with its origin at (0, 0). An RGBA
// image already at the origin is returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// Checker returns a size x size checkerboard with cells squares per side.
// The top-left cell is a.
func Checker(size, cells int, a, b color.RGBA) *image.RGBA {
	if size < 1 {
		size = 1
	}
	if cells < 1 {
		cells = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(size/cells, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
