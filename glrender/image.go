package glrender

import (
	"fmt"
	"image"
	"os"

	// Decoders registered for LoadImage.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// LoadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image from the file at path.
func LoadImage(path string) (image.Image, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	img, format, err := image.Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("empty %s image %s", format, path)
	}
	return img, nil
}

// ToRGBA converts img to a tightly packed RGBA image with its origin at (0,0).
// If flipY is set rows are stored bottom-up, as glTexImage2D expects the first
// row to be the bottom of the texture.
func ToRGBA(img image.Image, flipY bool) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	if flipY {
		flipRows(dst)
	}
	return dst
}

// FitImage scales img down so neither dimension exceeds maxDim, keeping its aspect ratio.
// Images already within bounds are returned unchanged.
func FitImage(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}
	if w >= h {
		h = max(1, h*maxDim/w)
		w = maxDim
	} else {
		w = max(1, w*maxDim/h)
		h = maxDim
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func flipRows(img *image.RGBA) {
	h := img.Bounds().Dy()
	rowLen := 4 * img.Bounds().Dx()
	tmp := make([]byte, rowLen)
	for top, bot := 0, h-1; top < bot; top, bot = top+1, bot-1 {
		rt := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		rb := img.Pix[bot*img.Stride : bot*img.Stride+rowLen]
		copy(tmp, rt)
		copy(rt, rb)
		copy(rb, tmp)
	}
}
