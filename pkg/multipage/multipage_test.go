package multipage_test

import (
	"testing"

	"github.com/mechiko/bilevelmatch/pkg/bitraster"
	"github.com/mechiko/bilevelmatch/pkg/matchopts"
	"github.com/mechiko/bilevelmatch/pkg/multipage"
	"github.com/mechiko/bilevelmatch/pkg/pattern"
	"github.com/stretchr/testify/require"
)

func glyph(w, h, x0, y0, size int) *bitraster.Bitmap {
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

func TestMultiPageDictionaryFlag(t *testing.T) {
	opts := matchopts.New()

	a := mustPattern(t, opts, glyph(10, 10, 1, 1, 6))
	b := mustPattern(t, opts, glyph(10, 10, 2, 1, 5))
	aPrime := mustPattern(t, opts, glyph(10, 10, 1, 1, 6))
	c := mustPattern(t, opts, glyph(16, 6, 0, 0, 6))

	pages := []multipage.Page{
		{Patterns: []*pattern.Pattern{a, b}, DPI: 300},
		{Patterns: []*pattern.Pattern{aPrime, c}, DPI: 300},
	}

	res, err := multipage.Classify(pages, opts)
	require.NoError(t, err)
	require.Equal(t, 4, len(res.Tags))
	require.Equal(t, res.Tags[0], res.Tags[2]) // a and a' share a class
	require.NotEqual(t, res.Tags[1], res.Tags[3])

	require.False(t, res.DictionaryFlags[0])
	sharedTag := res.Tags[0]
	require.True(t, res.DictionaryFlags[sharedTag])
	for tag := 1; tag <= res.MaxTag; tag++ {
		if tag == sharedTag {
			continue
		}
		require.False(t, res.DictionaryFlags[tag])
	}
}

func TestMultiPageWithNilEntries(t *testing.T) {
	opts := matchopts.New()
	a := mustPattern(t, opts, glyph(8, 8, 1, 1, 5))

	pages := []multipage.Page{
		{Patterns: []*pattern.Pattern{a, nil}, DPI: 300},
		{Patterns: []*pattern.Pattern{nil}, DPI: 300},
	}

	res, err := multipage.Classify(pages, opts)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0, 0}, res.Tags)
	require.Equal(t, 1, res.MaxTag)
	require.False(t, res.DictionaryFlags[1])
}
