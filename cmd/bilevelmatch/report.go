package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// printReport prints one line per tag: the tag number, the member
// count, and the first few sample file names, with columns aligned by
// display width the way the teacher's form field table aligns its
// id/name/value columns.
func printReport(names []string, tags []int) {
	byTag := make(map[int][]string)
	for i, t := range tags {
		byTag[t] = append(byTag[t], names[i])
	}

	var sortedTags []int
	for t := range byTag {
		sortedTags = append(sortedTags, t)
	}
	sort.Ints(sortedTags)

	tagMax, countMax := len("tag"), len("count")
	for _, t := range sortedTags {
		if w := runewidth.StringWidth(strconv.Itoa(t)); w > tagMax {
			tagMax = w
		}
		if w := runewidth.StringWidth(strconv.Itoa(len(byTag[t]))); w > countMax {
			countMax = w
		}
	}

	fmt.Printf("%s  %s  %s\n", pad("tag", tagMax), pad("count", countMax), "sample files")
	for _, t := range sortedTags {
		members := byTag[t]
		tagStr := strconv.Itoa(t)
		countStr := strconv.Itoa(len(members))
		sample := members
		if len(sample) > 3 {
			sample = sample[:3]
		}
		fmt.Printf("%s  %s  %s\n", pad(tagStr, tagMax), pad(countStr, countMax), strings.Join(sample, ", "))
	}
}

func pad(s string, width int) string {
	fill := width - runewidth.StringWidth(s)
	if fill <= 0 {
		return s
	}
	return s + strings.Repeat(" ", fill)
}
