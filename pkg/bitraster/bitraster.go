package bitraster

// PopcountRange returns 255 times the number of 1-bits in the half-open bit
// range [start, start+length) of a packed row.
func PopcountRange(row []byte, start, length int) int {
	n := 0
	for i := 0; i < length; i++ {
		if getBit(row, start+i) {
			n++
		}
	}
	return n * 255
}

// RowSubsetMinus returns 255 times the popcount of (A AND NOT B) over
// length bits, A starting at bit posA and B starting at bit posB.
func RowSubsetMinus(a []byte, posA int, b []byte, posB int, length int) int {
	n := 0
	for i := 0; i < length; i++ {
		if getBit(a, posA+i) && !getBit(b, posB+i) {
			n++
		}
	}
	return n * 255
}

func getBit(row []byte, pos int) bool {
	if pos < 0 {
		return false
	}
	byteIdx := pos >> 3
	if byteIdx >= len(row) {
		return false
	}
	bit := byte(0x80 >> uint(pos&7))
	return row[byteIdx]&bit != 0
}

// Soften applies an 8-level gray dilation to a raw bitmap: each black pixel
// is replaced with a weight in {32, 64, ..., 255} that grows with how many
// rings of plus-shaped erosion it survives (how deep inside the stroke it
// sits); white pixels stay 0. The result is a w*h byte raster, row-major,
// unpacked (one byte per pixel).
func Soften(raw *Bitmap) []byte {
	w, h := raw.W, raw.H
	pixels := make([]byte, w*h)
	depth := make([]int, w*h)
	alive := make([]bool, w*h)
	any := false
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if raw.Get(x, y) {
				alive[y*w+x] = true
				any = true
			}
		}
	}
	const maxDepth = 7
	for k := 1; k <= maxDepth && any; k++ {
		next := make([]bool, w*h)
		any = false
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				idx := y*w + x
				if !alive[idx] {
					continue
				}
				if aliveAt(alive, w, h, x-1, y) && aliveAt(alive, w, h, x+1, y) &&
					aliveAt(alive, w, h, x, y-1) && aliveAt(alive, w, h, x, y+1) {
					next[idx] = true
					depth[idx] = k
					any = true
				}
			}
		}
		alive = next
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !raw.Get(x, y) {
				continue
			}
			weight := (depth[idx] + 1) * 32
			if weight > 255 {
				weight = 255
			}
			pixels[idx] = byte(weight)
		}
	}
	return pixels
}

func aliveAt(alive []bool, w, h, x, y int) bool {
	if x < 0 || x >= w || y < 0 || y >= h {
		return false
	}
	return alive[y*w+x]
}

// MassCenter computes the weighted centroid of a softened raster in units
// of 1/CenterQuant pixels. Callers must ensure the raster has nonzero mass.
func MassCenter(pixels []byte, w, h int) (cx, cy int) {
	var xsum, ysum, mass float64
	for y := 0; y < h; y++ {
		row := pixels[y*w : y*w+w]
		for x, p := range row {
			fp := float64(p)
			xsum += fp * float64(x)
			ysum += fp * float64(y)
			mass += fp
		}
	}
	if mass == 0 {
		return 0, 0
	}
	cx = int(xsum * CenterQuant / mass)
	cy = int(ysum * CenterQuant / mass)
	return cx, cy
}

// QuickThin erodes raw by N steps with a plus-shaped structuring element.
// The result has the same dimensions as raw.
func QuickThin(raw *Bitmap, n int) *Bitmap {
	cur := raw
	for i := 0; i < n; i++ {
		cur = erodeOnce(cur)
	}
	return cur
}

// QuickThicken dilates raw by N steps with a plus-shaped structuring
// element. The result has dimensions (w+2N, h+2N); its logical origin is
// shifted by (-N, -N) with respect to raw.
func QuickThicken(raw *Bitmap, n int) *Bitmap {
	cur := raw
	for i := 0; i < n; i++ {
		cur = dilateOnce(cur)
	}
	return cur
}

func erodeOnce(b *Bitmap) *Bitmap {
	out, _ := NewBitmap(b.W, b.H)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.Get(x, y) && b.Get(x-1, y) && b.Get(x+1, y) && b.Get(x, y-1) && b.Get(x, y+1) {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

func dilateOnce(b *Bitmap) *Bitmap {
	out, _ := NewBitmap(b.W+2, b.H+2)
	for y := 0; y < out.H; y++ {
		cy := y - 1
		for x := 0; x < out.W; x++ {
			cx := x - 1
			if b.Get(cx, cy) || b.Get(cx-1, cy) || b.Get(cx+1, cy) || b.Get(cx, cy-1) || b.Get(cx, cy+1) {
				out.Set(x, y, true)
			}
		}
	}
	return out
}
