// Package signature computes the two 32-byte descriptors a pattern carries:
// a "gray" signature from the softened raster and a "black-and-white"
// signature from its thresholded counterpart. Neither construction is
// observable through the comparator's contract (spec leaves it
// implementation-free); only the distance function in pkg/match cares
// about the result, and that function ignores byte 0 of both.
package signature

// Size is the length of both signature arrays.
const Size = 32

// Signature is a 32-byte descriptor. Byte 0 is reserved and ignored by
// every consumer.
type Signature [Size]byte

// Gray builds the gray signature from a softened raster (0..255 per
// pixel, row-major, w*h bytes): a 31-bin projection histogram along the
// longer of the two axes, each bin summing the softened weight of every
// pixel whose coordinate on that axis falls in the bin, normalized so
// the largest bin lands at 255. Byte 0 is left zero.
func Gray(pixels []byte, w, h int) Signature {
	return project(pixels, w, h, func(p byte) int { return int(p) })
}

// BlackWhite builds the black-and-white signature the same way as Gray,
// but first thresholds every pixel to 0 or 255 (a pixel counts as black
// if its softened weight is nonzero).
func BlackWhite(pixels []byte, w, h int) Signature {
	return project(pixels, w, h, func(p byte) int {
		if p != 0 {
			return 255
		}
		return 0
	})
}

func project(pixels []byte, w, h int, weight func(byte) int) Signature {
	var sig Signature
	if w <= 0 || h <= 0 {
		return sig
	}

	bins := Size - 1
	sums := make([]int64, bins)

	if w >= h {
		for y := 0; y < h; y++ {
			row := pixels[y*w : y*w+w]
			for x, p := range row {
				b := x * bins / w
				if b >= bins {
					b = bins - 1
				}
				sums[b] += int64(weight(p))
			}
		}
	} else {
		for y := 0; y < h; y++ {
			row := pixels[y*w : y*w+w]
			b := y * bins / h
			if b >= bins {
				b = bins - 1
			}
			for _, p := range row {
				sums[b] += int64(weight(p))
			}
		}
	}

	var max int64
	for _, s := range sums {
		if s > max {
			max = s
		}
	}
	if max == 0 {
		return sig
	}
	for i, s := range sums {
		sig[i+1] = byte(s * 255 / max)
	}
	return sig
}
