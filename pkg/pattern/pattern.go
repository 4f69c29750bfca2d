// Package pattern builds the immutable Pattern value the comparator and
// classifier operate on: a softened raster, its mass center, its two
// signatures, and (when the PITH2 method is enabled) its thinned/thickened
// envelopes.
package pattern

import (
	"github.com/mechiko/bilevelmatch/pkg/bitraster"
	"github.com/mechiko/bilevelmatch/pkg/log"
	"github.com/mechiko/bilevelmatch/pkg/matchopts"
	"github.com/mechiko/bilevelmatch/pkg/signature"
	"github.com/pkg/errors"
)

// ErrNilBitmap is returned by New when the supplied bitmap is nil.
var ErrNilBitmap = errors.New("pattern: bitmap must not be nil")

// ErrZeroMass is returned by New when a non-lossless pattern is built
// from a bitmap with no black pixels; mass centers are undefined in
// that case.
var ErrZeroMass = errors.New("pattern: mass must be positive")

// Pattern is the immutable, read-only value the comparator and
// classifier consume. Construct with New.
type Pattern struct {
	Width, Height int
	Mass          int
	CenterX       int // in 1/bitraster.CenterQuant pixel units
	CenterY       int
	Pixels        []byte // softened raster, w*h, row-major; nil when Lossless
	Signature     signature.Signature
	Signature2    signature.Signature

	Inner *bitraster.Bitmap // present only when matchopts.PITH2 is enabled
	Outer *bitraster.Bitmap

	Lossless bool
	Raw      *bitraster.Bitmap // always present; the only field used when Lossless
}

// New constructs a Pattern from a raw bitmap under the given options.
// forceLossless additionally requests lossless mode regardless of the
// options' aggression level (the "lossless_flag" argument to
// pattern_create).
func New(opts *matchopts.Options, bm *bitraster.Bitmap, forceLossless bool) (*Pattern, error) {
	if bm == nil {
		return nil, ErrNilBitmap
	}
	if opts == nil {
		opts = matchopts.New()
	}

	if forceLossless || opts.Aggression() == 0 {
		log.Debug.Printf("pattern: building lossless pattern (%dx%d)", bm.W, bm.H)
		return &Pattern{Width: bm.W, Height: bm.H, Lossless: true, Raw: bm}, nil
	}

	mass := bm.Mass()
	if mass == 0 {
		return nil, ErrZeroMass
	}

	pixels := bitraster.Soften(bm)
	cx, cy := bitraster.MassCenter(pixels, bm.W, bm.H)

	p := &Pattern{
		Width:      bm.W,
		Height:     bm.H,
		Mass:       mass,
		CenterX:    cx,
		CenterY:    cy,
		Pixels:     pixels,
		Signature:  signature.Gray(pixels, bm.W, bm.H),
		Signature2: signature.BlackWhite(pixels, bm.W, bm.H),
		Raw:        bm,
	}

	if opts.HasMethod(matchopts.PITH2) {
		p.Inner = bitraster.QuickThin(bm, 1)
		p.Outer = bitraster.QuickThicken(bm, 1)
	}

	return p, nil
}

// Center returns the pattern's mass center in Q-units (Q =
// bitraster.CenterQuant).
func (p *Pattern) Center() (cx, cy int) {
	return p.CenterX, p.CenterY
}
