// Package multipage gathers per-page patterns into a single global
// classification run and computes, for each resulting class, whether it
// is referenced from more than one page (and so belongs in a shared
// dictionary rather than a per-page one).
package multipage

import (
	"github.com/mechiko/bilevelmatch/pkg/classify"
	"github.com/mechiko/bilevelmatch/pkg/log"
	"github.com/mechiko/bilevelmatch/pkg/matchopts"
	"github.com/mechiko/bilevelmatch/pkg/pattern"
)

// Page is one page's worth of input: an ordered slice of patterns (nil
// entries are "not-a-letter" and receive tag 0) at a single dpi.
type Page struct {
	Patterns []*pattern.Pattern
	DPI      int
}

// Result is the outcome of classifying a whole document: one tag per
// input pattern (flattened across pages in page order), the maximum
// tag assigned, and one dictionary flag per tag (index 0 unused, always
// false).
type Result struct {
	Tags            []int
	MaxTag          int
	DictionaryFlags []bool
}

// Classify flattens every page's patterns into one global classifier
// run (so a glyph repeated across pages lands in the same class) and
// then computes dictionary flags: flag t is true iff tag t appears on
// at least two distinct pages.
func Classify(pages []Page, opts *matchopts.Options) (Result, error) {
	if opts == nil {
		opts = matchopts.New()
	}

	total := 0
	for _, pg := range pages {
		total += len(pg.Patterns)
	}

	nodes := make([]*classify.Node, 0, total)
	nodePage := make(map[*classify.Node]int, total)

	pos := 0
	id := 0
	for pageIdx, pg := range pages {
		for _, p := range pg.Patterns {
			if p != nil {
				n := &classify.Node{Pattern: p, ID: id, Pos: pos, DPI: pg.DPI}
				nodes = append(nodes, n)
				nodePage[n] = pageIdx
				id++
			}
			pos++
		}
	}

	classifier := classify.NewClassifier()
	classes := classifier.ClassifyNodes(nodes, opts)
	maxTag := classify.AssignTags(classes)

	tags := make([]int, total)
	for _, n := range nodes {
		tags[n.Pos] = n.Tag
	}

	flags := make([]bool, maxTag+1)
	firstPageMet := make([]int, maxTag+1)
	for i := range firstPageMet {
		firstPageMet[i] = -1
	}
	for _, n := range nodes {
		t := n.Tag
		if t == 0 {
			continue
		}
		page := nodePage[n]
		if firstPageMet[t] == -1 {
			firstPageMet[t] = page
		} else if firstPageMet[t] != page {
			flags[t] = true
		}
	}

	shared := 0
	for _, f := range flags {
		if f {
			shared++
		}
	}
	log.Stats.Printf("multipage: %d pages, %d patterns, %d classes, %d shared", len(pages), total, maxTag, shared)

	return Result{Tags: tags, MaxTag: maxTag, DictionaryFlags: flags}, nil
}
