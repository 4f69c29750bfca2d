package classifyserver

import (
	"encoding/base64"

	"github.com/mechiko/bilevelmatch/pkg/bitraster"
	"github.com/mechiko/bilevelmatch/pkg/config"
	"github.com/mechiko/bilevelmatch/pkg/matchopts"
	"github.com/mechiko/bilevelmatch/pkg/pattern"
	"github.com/pkg/errors"
)

// wireBitmap is the JSON wire form of a packed-bit bitmap: Rows is the
// base64 encoding of Height rows of ceil(Width/8) bytes each,
// MSB-first, matching bitraster.Bitmap's own packing. A nil/empty Rows
// field (with Width and Height both 0) decodes to a nil pattern,
// meaning "not a letter" (tag 0).
type wireBitmap struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Rows   string `json:"rows"`
}

// wireOptions mirrors config.Config's tunables for a single request,
// letting callers override the server's defaults per call. An absent
// ClassifierLevel (0) defaults to 2; Aggression 0 is a legitimate
// value (forces lossless comparison), so it is always taken as given.
type wireOptions struct {
	Aggression      int      `json:"aggression"`
	Methods         []string `json:"methods"`
	ClassifierLevel int      `json:"classifierLevel"`
}

func (o wireOptions) toConfig() *config.Config {
	level := o.ClassifierLevel
	if level == 0 {
		level = 2
	}
	return &config.Config{
		Aggression:      o.Aggression,
		Methods:         o.Methods,
		DPI:             1, // unused by ToOptions; Validate requires DPI > 0
		ClassifierLevel: level,
	}
}

func (o wireOptions) toOptions() (*matchopts.Options, error) {
	c := o.toConfig()
	if err := config.Validate(c); err != nil {
		return nil, err
	}
	return c.ToOptions(), nil
}

func decodeBitmap(w wireBitmap) (*bitraster.Bitmap, error) {
	if w.Width == 0 && w.Height == 0 {
		return nil, nil
	}
	bm, err := bitraster.NewBitmap(w.Width, w.Height)
	if err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(w.Rows)
	if err != nil {
		return nil, errors.Wrap(err, "classifyserver: decode rows")
	}
	if len(raw) != len(bm.Data) {
		return nil, errors.Errorf("classifyserver: expected %d packed bytes for %dx%d, got %d", len(bm.Data), w.Width, w.Height, len(raw))
	}
	copy(bm.Data, raw)
	return bm, nil
}

func decodePatterns(opts *matchopts.Options, wires []wireBitmap) ([]*pattern.Pattern, error) {
	patterns := make([]*pattern.Pattern, len(wires))
	for i, w := range wires {
		bm, err := decodeBitmap(w)
		if err != nil {
			return nil, err
		}
		if bm == nil {
			continue
		}
		p, err := pattern.New(opts, bm, false)
		if err != nil {
			return nil, errors.Wrapf(err, "classifyserver: pattern %d", i)
		}
		patterns[i] = p
	}
	return patterns, nil
}

type classifyRequest struct {
	DPI      int          `json:"dpi"`
	Options  wireOptions  `json:"options"`
	Patterns []wireBitmap `json:"patterns"`
}

type classifyResponse struct {
	Tags   []int `json:"tags"`
	MaxTag int   `json:"maxTag"`
}

type pageRequest struct {
	DPI      int          `json:"dpi"`
	Patterns []wireBitmap `json:"patterns"`
}

type multipageRequest struct {
	Options wireOptions   `json:"options"`
	Pages   []pageRequest `json:"pages"`
}

type multipageResponse struct {
	Tags            []int  `json:"tags"`
	MaxTag          int    `json:"maxTag"`
	DictionaryFlags []bool `json:"dictionaryFlags"`
}
