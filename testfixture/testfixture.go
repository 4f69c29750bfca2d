// Package testfixture rasterizes glyphs from a fixed bitmap font into
// packed-bit test bitmaps. It exists only to feed realistic,
// font-shaped pixel data to the classifier and comparator tests instead
// of hand-built byte arrays, standing in for the connected components a
// real pipeline would extract from a scanned page.
package testfixture

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/mechiko/bilevelmatch/pkg/bitraster"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph rasterizes a single rune at the given horizontal and vertical
// pixel offsets (dx, dy added to the glyph's natural baseline origin)
// into a w x h bitraster.Bitmap using the 7x13 fixed-width face.
func Glyph(r rune, w, h, dx, dy int) (*bitraster.Bitmap, error) {
	return Glyphs(string(r), w, h, dx, dy)
}

// Glyphs rasterizes a short string (typically one or two runes) into a
// w x h bitraster.Bitmap, offset by (dx, dy) from the face's default
// baseline. Pixels with luminance below half white are black.
func Glyphs(s string, w, h, dx, dy int) (*bitraster.Bitmap, error) {
	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(dx),
			Y: fixed.I(face.Metrics().Ascent.Round() + dy),
		},
	}
	d.DrawString(s)

	bm, err := bitraster.NewBitmap(w, h)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bm.Set(x, y, img.GrayAt(x, y).Y < 128)
		}
	}
	return bm, nil
}

// Square returns a w x h bitmap with a single filled size x size black
// square whose top-left corner sits at (x0, y0). It is the module's
// stand-in for a minimal, font-independent glyph shape used where a
// test needs exact, hand-verifiable mass and geometry rather than a
// real letterform.
func Square(w, h, x0, y0, size int) (*bitraster.Bitmap, error) {
	bm, err := bitraster.NewBitmap(w, h)
	if err != nil {
		return nil, err
	}
	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			bm.Set(x, y, true)
		}
	}
	return bm, nil
}
