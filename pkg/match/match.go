// Package match implements the pairwise comparator cascade: a sequence of
// cheap-to-expensive tests that reduce two patterns to a single ternary
// verdict (veto, doubt, match), aligned throughout by mass centers.
package match

import (
	"math"

	"github.com/mechiko/bilevelmatch/pkg/bitraster"
	"github.com/mechiko/bilevelmatch/pkg/matchopts"
	"github.com/mechiko/bilevelmatch/pkg/pattern"
	"github.com/pkg/errors"
)

// Verdict values returned by Match and by every internal sub-test.
const (
	Veto   = -1
	Doubt  = 0
	Match1 = 1
)

// Fixed veto calibration constants; these are not part of the aggression
// profile and never change with the threshold interpolation in
// pkg/matchopts.
const (
	pithdiffVeto         = 23
	pith2Veto            = 4
	sizeTolerancePercent = 10
	massTolerancePercent = 10
)

// ErrMethodMismatch signals that the PITH2 method is enabled but one of
// the two patterns was not built with PITH2, so it lacks the inner/outer
// envelopes the test requires.
var ErrMethodMismatch = errors.New("match: PITH2 comparison requires both patterns to carry inner/outer envelopes")

// Match compares two patterns and returns Veto (-1), Doubt (0) or
// Match1 (1). A nil opts constructs a default (aggression 100, no method
// bits), matching match_patterns's contract for a nil options handle.
func Match(p1, p2 *pattern.Pattern, dpi int, opts *matchopts.Options) int {
	if opts == nil {
		opts = matchopts.New()
	}

	if p1.Lossless != p2.Lossless {
		return Veto
	}
	if p1.Lossless {
		if p1.Raw.Equal(p2.Raw) {
			return Match1
		}
		return Veto
	}

	if simpleTestsVeto(p1, p2) {
		return Veto
	}

	th := opts.Thresholds()
	state := 0

	r := shiftdiff(p1.Signature, p2.Signature, 0.90, 1000, th.Shift1)
	if r == Veto {
		return Veto
	}
	state |= boolInt(r == Match1)

	r = shiftdiff(p1.Signature2, p2.Signature2, 1.00, 1500, th.Shift2)
	if r == Veto {
		return Veto
	}
	state |= boolInt(r == Match1)

	r = shiftdiff(p1.Signature, p2.Signature, 1.15, 2000, th.Shift3)
	if r == Veto {
		return Veto
	}
	state |= boolInt(r == Match1)

	perimeter := p1.Width + p1.Height + p2.Width + p2.Height

	if opts.HasMethod(matchopts.PITH2) {
		if p1.Inner == nil || p1.Outer == nil || p2.Inner == nil || p2.Outer == nil {
			panic(ErrMethodMismatch)
		}

		r1 := pith2IsSubset(p1.Inner, p1.CenterX, p1.CenterY,
			p2.Outer, p2.CenterX+bitraster.CenterQuant, p2.CenterY+bitraster.CenterQuant,
			dpi, perimeter, th.Pithdiff2)
		if r1 < Match1 {
			return r1
		}

		r2 := pith2IsSubset(p2.Inner, p2.CenterX, p2.CenterY,
			p1.Outer, p1.CenterX+bitraster.CenterQuant, p1.CenterY+bitraster.CenterQuant,
			dpi, perimeter, th.Pithdiff2)
		if r2 < Match1 {
			return r2
		}

		if opts.HasMethod(matchopts.Rampage) {
			return Match1
		}
	}

	if opts.Aggression() > 0 && !opts.HasMethod(matchopts.Rampage) {
		d := pithdiffEquivalence(p1, p2, dpi, perimeter, th.Pithdiff)
		if d == Match1 {
			state |= 1
		}
		// A pithdiff veto has no right to veto at the cascade level; it
		// downgrades to doubt and contributes nothing to state.
	}

	if state != 0 {
		return Match1
	}
	return Doubt
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// simpleTestsVeto applies the six dimensional/mass gates; any one
// failing vetoes the comparison outright.
func simpleTestsVeto(p1, p2 *pattern.Pattern) bool {
	if 100*p1.Width > (100+sizeTolerancePercent)*p2.Width {
		return true
	}
	if 100*p2.Width > (100+sizeTolerancePercent)*p1.Width {
		return true
	}
	if 100*p1.Height > (100+sizeTolerancePercent)*p2.Height {
		return true
	}
	if 100*p2.Height > (100+sizeTolerancePercent)*p1.Height {
		return true
	}
	if 100*p1.Mass > (100+massTolerancePercent)*p2.Mass {
		return true
	}
	if 100*p2.Mass > (100+massTolerancePercent)*p1.Mass {
		return true
	}
	return false
}

// shiftdiff compares two 32-byte signatures (byte 0 ignored) with a
// falloff-weighted squared-Euclidean distance, doubling the run length
// between falloff applications.
func shiftdiff(s1, s2 [32]byte, falloff, veto, threshold float64) int {
	penalty := 0.0
	weight := 1.0
	delay := 1
	counter := 1
	for i := 1; i <= 31; i++ {
		d := int(s1[i]) - int(s2[i])
		penalty += float64(d*d) * weight
		counter--
		if counter == 0 {
			weight *= falloff
			delay *= 2
			counter = delay
		}
	}
	if penalty >= veto*32 {
		return Veto
	}
	if penalty <= threshold*32 {
		return Match1
	}
	return Doubt
}

// quantizedShift rounds diff/bitraster.CenterQuant to the nearest
// integer, ties away from zero. This is the alignment rule §4.D.5
// mandates and must not be replaced with banker's rounding.
func quantizedShift(diff int) int {
	const q = bitraster.CenterQuant
	if diff < 0 {
		return (diff - q/2) / q
	}
	return (diff + q/2) / q
}

// pith2IsSubset implements one direction of the two-way inscribed
// framework test: how much of the base raster is NOT covered by the
// other, once aligned by mass center. The original swaps which of
// inner/outer plays the base ("i1") role so the narrower of the two is
// always the one iterated (patterns.c:953-960); this mirrors
// pithdiffEquivalence's narrower-as-base swap below.
func pith2IsSubset(inner *bitraster.Bitmap, innerCX, innerCY int, outer *bitraster.Bitmap, outerCX, outerCY int, dpi, perimeter int, threshold float64) int {
	base, baseCX, baseCY := inner, innerCX, innerCY
	cover, coverCX, coverCY := outer, outerCX, outerCY
	if cover.W < base.W {
		base, cover = cover, base
		baseCX, coverCX = coverCX, baseCX
		baseCY, coverCY = coverCY, baseCY
	}

	shiftX := quantizedShift(coverCX - baseCX)
	shiftY := quantizedShift(coverCY - baseCY)

	count := 0
	for y := 0; y < base.H; y++ {
		oy := y + shiftY
		for x := 0; x < base.W; x++ {
			if !base.Get(x, y) {
				continue
			}
			ox := x + shiftX
			if oy < 0 || oy >= cover.H || ox < 0 || ox >= cover.W {
				count++
				continue
			}
			if !cover.Get(ox, oy) {
				count++
			}
		}
	}

	ceiling := math.Ceil(float64(pith2Veto) * float64(dpi) * float64(perimeter) / 100)
	if float64(count) > ceiling {
		return Veto
	}
	if float64(count) < threshold*float64(dpi)*float64(perimeter)/100 {
		return Match1
	}
	return Doubt
}

// pithdiffEquivalence implements the soft pixel-difference test over
// the softened 0..255 rasters, aligned by mass center with the narrower
// pattern playing the role of i1.
func pithdiffEquivalence(p1, p2 *pattern.Pattern, dpi, perimeter int, threshold float64) int {
	a, b := p1, p2
	if a.Width > b.Width {
		a, b = b, a
	}

	shiftX := quantizedShift(b.CenterX - a.CenterX)
	shiftY := quantizedShift(b.CenterY - a.CenterY)

	minY := min(0, shiftY)
	maxY := max(a.Height, shiftY+b.Height)
	minX := min(0, shiftX)
	maxX := max(a.Width, shiftX+b.Width)

	d := 0
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			va := softPixelAt(a, x, y)
			vb := softPixelAt(b, x-shiftX, y-shiftY)
			if (va == 255) != (vb == 255) {
				if va == 255 {
					d += 255 - int(vb)
				} else {
					d += 255 - int(va)
				}
			}
		}
	}

	if float64(d) >= float64(pithdiffVeto)*float64(dpi)*float64(perimeter)/100 {
		return Veto
	}
	if float64(d) < threshold*float64(dpi)*float64(perimeter)/100 {
		return Match1
	}
	return Doubt
}

func softPixelAt(p *pattern.Pattern, x, y int) byte {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return 0
	}
	return p.Pixels[y*p.Width+x]
}
