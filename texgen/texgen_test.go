package texgen_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/soypat/glshapes/texgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiceAtlas(t *testing.T) {
	const cell = 64
	img, err := texgen.DiceAtlas(cell)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, texgen.DiceCols*cell, texgen.DiceRows*cell), img.Bounds())

	// Every cell has ink drawn on it, the amount of ink grows with the pip count.
	var prev int
	for k := 1; k <= 6; k++ {
		col, row := (k-1)%texgen.DiceCols, (k-1)/texgen.DiceCols
		ink := countDark(img, image.Rect(col*cell, row*cell, (col+1)*cell, (row+1)*cell).Inset(cell/8))
		assert.Greater(t, ink, prev, "face %d", k)
		prev = ink
	}

	_, err = texgen.DiceAtlas(4)
	assert.Error(t, err)
}

func TestChecker(t *testing.T) {
	img, err := texgen.Checker(8, 2, color.White, color.Black)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(4, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 4))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(7, 7))

	_, err = texgen.Checker(4, 8, color.White, color.Black)
	assert.Error(t, err)
}

func TestLatLongGrid(t *testing.T) {
	img, err := texgen.LatLongGrid(360, 180, 30)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 360, 180), img.Bounds())
	assert.NotEqual(t, img.RGBAAt(0, 90), img.RGBAAt(15, 45), "equator differs from ocean")
	assert.Equal(t, img.RGBAAt(15, 45), img.RGBAAt(200, 100), "ocean is uniform")

	_, err = texgen.LatLongGrid(360, 180, 0)
	assert.Error(t, err)
}

func countDark(img *image.RGBA, r image.Rectangle) (n int) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).R < 100 {
				n++
			}
		}
	}
	return n
}
