/*
Copyright 2024 The bilevelmatch Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package main provides the command line for classifying a directory
// of bitmaps into equivalence classes.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	bmlog "github.com/mechiko/bilevelmatch/pkg/log"
)

var (
	dir        string
	useTIFF    bool
	aggression int
	methodsCSV string
	dpi        int
	level      int
	verbose    bool
)

func init() {
	flag.StringVar(&dir, "dir", "", "directory of bitmap files to classify")
	flag.BoolVar(&useTIFF, "tiff", false, "treat each file in -dir as a single-page 1bpp TIFF")
	flag.IntVar(&aggression, "agg", 100, "aggression level (0-200+)")
	flag.StringVar(&methodsCSV, "methods", "pith2", "comma separated comparator methods: pith2,rampage")
	flag.IntVar(&dpi, "dpi", 300, "scan resolution of the input bitmaps")
	flag.IntVar(&level, "level", 2, "classifier level (1-3)")
	flag.BoolVar(&verbose, "verbose", false, "enable debug/info/stats logging")
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	command := os.Args[1]
	if err := flag.CommandLine.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	setupLogging(verbose)

	switch command {
	case "classify":
		if dir == "" {
			fmt.Fprintln(os.Stderr, "bilevelmatch classify: -dir is required")
			os.Exit(1)
		}
		if err := runClassify(dir, useTIFF, aggression, splitMethods(methodsCSV), dpi, level); err != nil {
			fmt.Fprintf(os.Stderr, "bilevelmatch: %v\n", err)
			os.Exit(1)
		}
	case "h", "help":
		fmt.Fprintln(os.Stderr, usage)
	default:
		fmt.Fprintf(os.Stderr, "bilevelmatch: unknown command %q\n", command)
		fmt.Fprintln(os.Stderr, "Run 'bilevelmatch help' for usage.")
		os.Exit(1)
	}
}

func splitMethods(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func setupLogging(verbose bool) {
	if verbose {
		bmlog.SetDefaultDebugLogger()
		bmlog.SetDefaultInfoLogger()
		bmlog.SetDefaultStatsLogger()
	}
}

const usage = `bilevelmatch is a tool for clustering bilevel glyph bitmaps.

Usage:

	bilevelmatch command [arguments]

The commands are:

	classify	classify a directory of bitmaps into equivalence classes

Use "bilevelmatch help" to show this message.
`
