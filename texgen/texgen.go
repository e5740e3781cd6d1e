// Package texgen generates the procedural textures used by the demos so they
// run without external image assets.
package texgen

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Atlas layout used by [DiceAtlas]. Matches glshapes.NewDice UV mapping.
const (
	DiceCols = 3
	DiceRows = 2
)

var (
	diceBackground = color.RGBA{R: 245, G: 240, B: 230, A: 255}
	diceInk        = color.RGBA{R: 20, G: 20, B: 30, A: 255}
	diceBorder     = color.RGBA{R: 150, G: 30, B: 30, A: 255}
)

// DiceAtlas draws a 3x2 texture atlas of dice faces, each cell x cell pixels.
// Value k in 1..6 is drawn in column (k-1)%3 and row (k-1)/3, row 0 being the top
// of the image. Each face shows its pips with the digit above them.
func DiceAtlas(cell int) (*image.RGBA, error) {
	if cell < 16 {
		return nil, fmt.Errorf("dice atlas cell size must be at least 16 pixels, got %d", cell)
	}
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(cell) / 6,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, DiceCols*cell, DiceRows*cell))
	d := font.Drawer{Dst: img, Src: image.NewUniform(diceInk), Face: face}
	for k := 1; k <= DiceCols*DiceRows; k++ {
		col, row := (k-1)%DiceCols, (k-1)/DiceCols
		r := image.Rect(col*cell, row*cell, (col+1)*cell, (row+1)*cell)
		draw.Draw(img, r, image.NewUniform(diceBorder), image.Point{}, draw.Src)
		border := max(1, cell/32)
		draw.Draw(img, r.Inset(border), image.NewUniform(diceBackground), image.Point{}, draw.Src)
		drawPips(img, r, k)

		// Digit centered at the top where no pip is ever drawn.
		label := strconv.Itoa(k)
		d.Dot = fixed.Point26_6{
			X: fixed.I(r.Min.X+cell/2) - d.MeasureString(label)/2,
			Y: fixed.I(r.Min.Y+border+cell/64) + face.Metrics().Ascent,
		}
		d.DrawString(label)
	}
	return img, nil
}

// pipLayout holds pip centers on a 3x3 grid indexed 0..2 per axis for each value.
var pipLayout = [7][][2]int{
	1: {{1, 1}},
	2: {{0, 0}, {2, 2}},
	3: {{0, 0}, {1, 1}, {2, 2}},
	4: {{0, 0}, {2, 0}, {0, 2}, {2, 2}},
	5: {{0, 0}, {2, 0}, {1, 1}, {0, 2}, {2, 2}},
	6: {{0, 0}, {2, 0}, {0, 1}, {2, 1}, {0, 2}, {2, 2}},
}

func drawPips(img *image.RGBA, r image.Rectangle, value int) {
	size := r.Dx()
	radius := size / 10
	for _, p := range pipLayout[value] {
		cx := r.Min.X + size*(p[0]+1)/4
		cy := r.Min.Y + size*(p[1]+1)/4
		fillCircle(img, cx, cy, radius, diceInk)
	}
}

func fillCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	r2 := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= r2 {
				img.SetRGBA(cx+x, cy+y, c)
			}
		}
	}
}

// Checker draws a size x size checkerboard with squares x squares alternating tiles.
func Checker(size, squares int, a, b color.Color) (*image.RGBA, error) {
	if size <= 0 || squares <= 0 || squares > size {
		return nil, errors.New("checker size and squares must be positive with squares <= size")
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	ua, ub := image.NewUniform(a), image.NewUniform(b)
	for i := 0; i < squares; i++ {
		for j := 0; j < squares; j++ {
			src := ua
			if (i+j)%2 == 1 {
				src = ub
			}
			r := image.Rect(j*size/squares, i*size/squares, (j+1)*size/squares, (i+1)*size/squares)
			draw.Draw(img, r, src, image.Point{}, draw.Src)
		}
	}
	return img, nil
}

var (
	gridOcean    = color.RGBA{R: 20, G: 60, B: 140, A: 255}
	gridLine     = color.RGBA{R: 200, G: 220, B: 255, A: 255}
	gridEquator  = color.RGBA{R: 230, G: 60, B: 60, A: 255}
	gridMeridian = color.RGBA{R: 60, G: 200, B: 90, A: 255}
)

// LatLongGrid draws an equirectangular w x h texture with latitude and longitude
// lines every `every` degrees. The equator and prime meridian are highlighted.
// It serves as a stand-in earth texture for sphere UV mapping.
func LatLongGrid(w, h, every int) (*image.RGBA, error) {
	if w < 2 || h < 2 || every <= 0 || every > 90 {
		return nil, fmt.Errorf("invalid lat/long grid parameters %dx%d every %d degrees", w, h, every)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(gridOcean), image.Point{}, draw.Src)
	for lon := 0; lon <= 360; lon += every {
		x := min(w-1, lon*w/360)
		c := gridLine
		if lon == 180 {
			c = gridMeridian
		}
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, c)
		}
	}
	for lat := 0; lat <= 180; lat += every {
		y := min(h-1, lat*h/180)
		c := gridLine
		if lat == 90 {
			c = gridEquator
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}
