package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hhrutter/tiff"
	"github.com/mechiko/bilevelmatch/pkg/bitraster"
	"github.com/mechiko/bilevelmatch/pkg/classify"
	"github.com/mechiko/bilevelmatch/pkg/config"
	"github.com/mechiko/bilevelmatch/pkg/pattern"
	"github.com/mechiko/bilevelmatch/testfixture"
)

// runClassify walks dir, builds one pattern per file (decoding a 1bpp
// TIFF when useTIFF is set, or rasterizing the file's base name as
// synthetic glyph text otherwise), classifies the set, and prints a
// tag report to stdout.
func runClassify(dir string, useTIFF bool, aggression int, methods []string, dpi, level int) error {
	cfg := &config.Config{Aggression: aggression, Methods: methods, DPI: dpi, ClassifierLevel: level}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	opts := cfg.ToOptions()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var names []string
	var patterns []*pattern.Pattern
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		bm, err := loadBitmap(path, e.Name(), useTIFF)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		if bm == nil {
			continue
		}
		p, err := pattern.New(opts, bm, false)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		names = append(names, e.Name())
		patterns = append(patterns, p)
	}

	if len(patterns) == 0 {
		fmt.Println("no bitmaps found")
		return nil
	}

	nodes := make([]*classify.Node, len(patterns))
	for i, p := range patterns {
		nodes[i] = &classify.Node{Pattern: p, ID: i, Pos: i, DPI: cfg.DPI}
	}
	classifier := &classify.Classifier{Level: cfg.ClassifierLevel}
	classes := classifier.ClassifyNodes(nodes, opts)
	classify.AssignTags(classes)

	tags := make([]int, len(patterns))
	for _, n := range nodes {
		tags[n.Pos] = n.Tag
	}

	printReport(names, tags)
	return nil
}

// loadBitmap decodes a single-page 1bpp TIFF when useTIFF is set;
// otherwise it rasterizes name's extension-stripped base as synthetic
// glyph text, the module's stand-in for connected-component extraction.
func loadBitmap(path, name string, useTIFF bool) (*bitraster.Bitmap, error) {
	if !useTIFF {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if base == "" {
			return nil, nil
		}
		return testfixture.Glyphs(base, 24, 24, 1, 0)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, err
	}
	return bitmapFromImage(img)
}

func bitmapFromImage(img image.Image) (*bitraster.Bitmap, error) {
	b := img.Bounds()
	bm, err := bitraster.NewBitmap(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	gray := color.GrayModel
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := gray.Convert(img.At(x, y)).(color.Gray)
			bm.Set(x-b.Min.X, y-b.Min.Y, g.Y < 128)
		}
	}
	return bm, nil
}
