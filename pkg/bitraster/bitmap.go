// Package bitraster implements packed-bit raster primitives for bilevel
// images: row-level subset/popcount tests, N-step thinning and thickening,
// gray-dilation softening and mass-center computation. Rows are packed
// MSB-first within each byte, 1 meaning black (ink), following the same
// row/stride convention the corpus's CCITT fax decoders use for 1bpp data.
package bitraster

import "github.com/pkg/errors"

// CenterQuant is the sub-pixel alignment quantum (Q) mass centers are
// expressed in: a mass center is stored as pixels*CenterQuant.
const CenterQuant = 8

// Bitmap is a packed-bit bilevel raster. Bit 1 means black (ink).
type Bitmap struct {
	W, H   int
	Stride int // bytes per row, ceil(W/8)
	Data   []byte
}

// ErrDimension signals a non-positive width or height passed to NewBitmap.
var ErrDimension = errors.New("bitraster: width and height must be positive")

// NewBitmap allocates a cleared (all-white) w x h bitmap.
func NewBitmap(w, h int) (*Bitmap, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrDimension, "w=%d h=%d", w, h)
	}
	stride := (w + 7) >> 3
	return &Bitmap{W: w, H: h, Stride: stride, Data: make([]byte, stride*h)}, nil
}

// Row returns the packed bytes backing row y.
func (b *Bitmap) Row(y int) []byte {
	off := y * b.Stride
	return b.Data[off : off+b.Stride]
}

// Get reports whether pixel (x, y) is black.
func (b *Bitmap) Get(x, y int) bool {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return false
	}
	row := b.Row(y)
	byteIdx := x >> 3
	bit := byte(0x80 >> uint(x&7))
	return row[byteIdx]&bit != 0
}

// Set sets or clears pixel (x, y).
func (b *Bitmap) Set(x, y int, black bool) {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return
	}
	row := b.Row(y)
	byteIdx := x >> 3
	bit := byte(0x80 >> uint(x&7))
	if black {
		row[byteIdx] |= bit
	} else {
		row[byteIdx] &^= bit
	}
}

// Mass returns the number of black pixels.
func (b *Bitmap) Mass() int {
	mass := 0
	for y := 0; y < b.H; y++ {
		mass += popcountBytes(b.Row(y), b.W)
	}
	return mass
}

// Equal reports whether two bitmaps have identical dimensions and
// identical packed row data.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.W != o.W || b.H != o.H {
		return false
	}
	for y := 0; y < b.H; y++ {
		ra, rb := b.Row(y), o.Row(y)
		for i := 0; i < b.Stride; i++ {
			// Raw byte compare, padding bits of the last byte included.
			// Set never sets bits beyond W, so for bitmaps only ever touched
			// through Set/NewBitmap this is a pixel-by-pixel compare.
			if ra[i] != rb[i] {
				return false
			}
		}
	}
	return true
}

func popcountBytes(row []byte, widthBits int) int {
	n := 0
	full := widthBits / 8
	for i := 0; i < full; i++ {
		n += onesInByte(row[i])
	}
	rem := widthBits % 8
	if rem > 0 {
		mask := byte(0xFF << uint(8-rem))
		n += onesInByte(row[full] & mask)
	}
	return n
}

var bitCount [256]int8

func init() {
	for i := 0; i < 256; i++ {
		c := int8(0)
		v := i
		for v != 0 {
			c += int8(v & 1)
			v >>= 1
		}
		bitCount[i] = c
	}
}

func onesInByte(b byte) int {
	return int(bitCount[b])
}
