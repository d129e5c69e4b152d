package texture

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRGBAKeepsRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	assert.Same(t, img, ToRGBA(img))
}

func TestToRGBAConverts(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(2, 1, color.Gray{Y: 200})

	rgba := ToRGBA(gray)
	require.Equal(t, image.Rect(0, 0, 3, 2), rgba.Rect)
	assert.Equal(t, color.RGBA{200, 200, 200, 255}, rgba.RGBAAt(2, 1))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rgba.RGBAAt(0, 0))
}

func TestToRGBAMovesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.SetRGBA(5, 5, color.RGBA{1, 2, 3, 4})

	rgba := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 2), rgba.Rect)
	assert.Equal(t, color.RGBA{1, 2, 3, 4}, rgba.RGBAAt(0, 0))
}

func TestChecker(t *testing.T) {
	a := color.RGBA{255, 255, 255, 255}
	b := color.RGBA{0, 0, 0, 255}
	img := Checker(8, 2, a, b)

	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Rect)
	assert.Equal(t, a, img.RGBAAt(0, 0))
	assert.Equal(t, b, img.RGBAAt(4, 0))
	assert.Equal(t, b, img.RGBAAt(0, 4))
	assert.Equal(t, a, img.RGBAAt(7, 7))
}

func TestCheckerClampsArguments(t *testing.T) {
	img := Checker(0, 0, color.RGBA{}, color.RGBA{})
	assert.Equal(t, image.Rect(0, 0, 1, 1), img.Rect)

	// more cells than pixels gives single-pixel cells
	img = Checker(2, 10, color.RGBA{R: 1}, color.RGBA{G: 1})
	assert.Equal(t, color.RGBA{G: 1}, img.RGBAAt(1, 0))
}
