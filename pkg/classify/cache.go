package classify

import (
	"github.com/mechiko/bilevelmatch/pkg/match"
	"github.com/mechiko/bilevelmatch/pkg/matchopts"
)

// verdictCache memoizes Match by unordered pattern-id pair *and* the dpi
// the comparison was resolved at. Map absence is the "never computed"
// state, a fourth state distinct from -1/0/1, matching the original's
// 2-bit-per-pair cache contract without needing to hand-roll the packed
// representation: a Go map's zero value for an absent key (0) would look
// like a cached Doubt, so lookups check `ok` and there is no collision
// with a real -1/0/1 result.
//
// dpi is part of the key, not just an input alongside it, because which
// node plays probe (and so which node's DPI is used, per DESIGN.md's
// "per-pair dpi resolution" decision) is not fixed for a given pair: Phase
// 1 and Phase 2 can probe the same two patterns in opposite roles, and on
// a multi-page run those patterns can carry different per-page dpi. match.Match
// itself is symmetric in its two patterns for a fixed dpi, so normalizing
// the id pair is still safe; only dpi must never be dropped from the key,
// or a verdict cached for one dpi could be handed back for a different one.
type verdictCache struct {
	enabled bool
	results map[pairKey]int8
}

type pairKey struct {
	lo, hi, dpi int
}

func newVerdictCache(enabled bool) *verdictCache {
	return &verdictCache{enabled: enabled, results: make(map[pairKey]int8)}
}

// compare returns the cached verdict for (a, b) at a's dpi if present,
// else computes it via match.Match using a's dpi as the comparison
// resolution and caches the result.
func (c *verdictCache) compare(a, b *Node, opts *matchopts.Options) int {
	if !c.enabled {
		return match.Match(a.Pattern, b.Pattern, a.DPI, opts)
	}
	key := pairKey{a.ID, b.ID, a.DPI}
	if key.lo > key.hi {
		key.lo, key.hi = key.hi, key.lo
	}
	if v, ok := c.results[key]; ok {
		return int(v)
	}
	v := match.Match(a.Pattern, b.Pattern, a.DPI, opts)
	c.results[key] = int8(v)
	return v
}
