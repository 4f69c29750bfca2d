package match_test

import (
	"testing"

	"github.com/mechiko/bilevelmatch/pkg/bitraster"
	"github.com/mechiko/bilevelmatch/pkg/match"
	"github.com/mechiko/bilevelmatch/pkg/matchopts"
	"github.com/mechiko/bilevelmatch/pkg/pattern"
	"github.com/stretchr/testify/require"
)

func glyphBitmap(w, h, x0, y0, size int) *bitraster.Bitmap {
	b, _ := bitraster.NewBitmap(w, h)
	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			b.Set(x, y, true)
		}
	}
	return b
}

func mustPattern(t *testing.T, opts *matchopts.Options, bm *bitraster.Bitmap) *pattern.Pattern {
	t.Helper()
	p, err := pattern.New(opts, bm, false)
	require.NoError(t, err)
	return p
}

func TestMatchIsReflexive(t *testing.T) {
	opts := matchopts.New()
	p := mustPattern(t, opts, glyphBitmap(16, 16, 4, 4, 8))
	require.Equal(t, match.Match1, match.Match(p, p, 300, opts))
}

func TestMatchIsSymmetric(t *testing.T) {
	opts := matchopts.New()
	p1 := mustPattern(t, opts, glyphBitmap(16, 16, 4, 4, 8))
	p2 := mustPattern(t, opts, glyphBitmap(16, 16, 3, 5, 8))
	require.Equal(t, match.Match(p1, p2, 300, opts), match.Match(p2, p1, 300, opts))
}

func TestMatchDuplicatePair(t *testing.T) {
	opts := matchopts.New()
	bm := glyphBitmap(8, 8, 1, 1, 6)
	p1 := mustPattern(t, opts, bm)
	p2 := mustPattern(t, opts, glyphBitmap(8, 8, 1, 1, 6))
	require.Equal(t, match.Match1, match.Match(p1, p2, 300, opts))
}

func TestMatchVetoesOnWidthDifference(t *testing.T) {
	opts := matchopts.New()
	p1 := mustPattern(t, opts, glyphBitmap(10, 10, 1, 1, 8))
	p2 := mustPattern(t, opts, glyphBitmap(12, 10, 1, 1, 8))
	require.Equal(t, match.Veto, match.Match(p1, p2, 300, opts))
}

func TestLosslessModeRequiresByteIdenticalBitmaps(t *testing.T) {
	opts := matchopts.New()
	opts.SetAggression(0)

	bm := glyphBitmap(8, 8, 2, 2, 3)
	p1 := mustPattern(t, opts, bm)
	p2 := mustPattern(t, opts, glyphBitmap(8, 8, 2, 2, 3))
	require.True(t, p1.Lossless)
	require.Equal(t, match.Match1, match.Match(p1, p2, 300, opts))

	p3 := mustPattern(t, opts, glyphBitmap(8, 8, 2, 2, 4))
	require.Equal(t, match.Veto, match.Match(p1, p3, 300, opts))
}

func TestLosslessVersusNonLosslessAlwaysVetoes(t *testing.T) {
	lossy := matchopts.New()
	lossless := matchopts.New()
	lossless.SetAggression(0)

	bm := glyphBitmap(8, 8, 2, 2, 3)
	p1 := mustPattern(t, lossy, bm)
	p2 := mustPattern(t, lossless, glyphBitmap(8, 8, 2, 2, 3))
	require.Equal(t, match.Veto, match.Match(p1, p2, 300, lossy))
}

func TestNilOptsDefaultsToAggression100(t *testing.T) {
	opts := matchopts.New()
	p := mustPattern(t, opts, glyphBitmap(10, 10, 2, 2, 6))
	require.Equal(t, match.Match1, match.Match(p, p, 300, nil))
}

func TestPith2MethodAcceptsIdenticalShapes(t *testing.T) {
	opts := matchopts.New()
	opts.UseMethod(matchopts.PITH2)
	p1 := mustPattern(t, opts, glyphBitmap(20, 20, 5, 5, 10))
	p2 := mustPattern(t, opts, glyphBitmap(20, 20, 5, 5, 10))
	require.Equal(t, match.Match1, match.Match(p1, p2, 300, opts))
}

func TestRampageSkipsPithdiffButStillVetoesOnSize(t *testing.T) {
	opts := matchopts.New()
	opts.UseMethod(matchopts.PITH2 | matchopts.Rampage)
	p1 := mustPattern(t, opts, glyphBitmap(10, 10, 1, 1, 8))
	p2 := mustPattern(t, opts, glyphBitmap(14, 10, 1, 1, 8))
	require.Equal(t, match.Veto, match.Match(p1, p2, 300, opts))
}
