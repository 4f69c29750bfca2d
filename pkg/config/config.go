// Package config loads and persists the YAML configuration that governs
// a classification run: aggression level, enabled comparator methods,
// scan resolution, and classifier level. It mirrors the teacher's
// configuration.go/parseConfig.go split: a plain yaml-tagged struct for
// marshaling, a validating loader, and a default-file installer.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mechiko/bilevelmatch/pkg/matchopts"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the on-disk representation of a classification run's
// tunables.
type Config struct {
	CreationDate    string   `yaml:"creationDate"`
	Aggression      int      `yaml:"aggression"`
	Methods         []string `yaml:"methods"`
	DPI             int      `yaml:"dpi"`
	ClassifierLevel int      `yaml:"classifierLevel"`
}

var validMethods = map[string]int{
	"pith2":   matchopts.PITH2,
	"rampage": matchopts.Rampage,
}

func memberOf(s string, valid map[string]int) bool {
	_, ok := valid[s]
	return ok
}

// LoadConfig reads and validates a YAML configuration from r. Fields
// absent from the document fall back to the same values
// defaultConfigTemplate writes, so older config files missing newer
// fields keep working.
func LoadConfig(r io.Reader) (*Config, error) {
	c := &Config{
		Aggression:      100,
		Methods:         []string{"pith2"},
		DPI:             300,
		ClassifierLevel: 2,
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "config: read")
	}
	if buf.Len() == 0 {
		return c, nil
	}
	if err := yaml.Unmarshal(buf.Bytes(), c); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}

	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks a Config's field values, independent of how it was
// built (YAML file, JSON request body, or constructed in code).
func Validate(c *Config) error {
	if c.Aggression < 0 {
		return errors.Errorf("config: invalid aggression: %d (must be >= 0)", c.Aggression)
	}
	if c.DPI <= 0 {
		return errors.Errorf("config: invalid dpi: %d (must be > 0)", c.DPI)
	}
	if c.ClassifierLevel < 1 || c.ClassifierLevel > 3 {
		return errors.Errorf("config: invalid classifierLevel: %d (must be 1, 2 or 3)", c.ClassifierLevel)
	}
	for _, m := range c.Methods {
		if !memberOf(m, validMethods) {
			return errors.Errorf("config: unknown method: %q", m)
		}
	}
	return nil
}

// ToOptions translates a loaded Config into a matchopts.Options handle
// ready to pass into pattern.New / match.Match / classify.Classify.
func (c *Config) ToOptions() *matchopts.Options {
	opts := matchopts.New()
	opts.SetAggression(c.Aggression)
	for _, m := range c.Methods {
		if bits, ok := validMethods[m]; ok {
			opts.UseMethod(bits)
		}
	}
	return opts
}

const defaultConfigTemplate = `# bilevelmatch configuration
# creationDate: %s
#
# aggression: 0-200+, higher trades fidelity for smaller dictionaries.
aggression: 100
# methods: any of "pith2", "rampage".
methods:
  - pith2
# dpi: scan resolution of the input pages.
dpi: 300
# classifierLevel: 1 (single pass, no cache), 2 (default), 3 (extra retry pass).
classifierLevel: 2
`

// ensureConfigFileAt writes a commented default config.yml at path if
// none exists yet, or if override is set.
func ensureConfigFileAt(path string, override bool) error {
	if !override {
		if _, err := os.Stat(path); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			return err
		}
	}

	content := []byte(fmt.Sprintf(defaultConfigTemplate, time.Now().Format("2006-01-02 15:04")))
	destFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = destFile.Write(content)
	return err
}

// EnsureDefaultConfigAt makes sure dir/bilevelmatch/config.yml exists,
// creating the directory as needed and writing defaultConfigTemplate to
// the file when it is absent or when override is set. It does not read
// or parse the file.
func EnsureDefaultConfigAt(dir string, override bool) error {
	configDir := filepath.Join(dir, "bilevelmatch")
	if err := os.MkdirAll(configDir, os.ModePerm); err != nil {
		return err
	}
	return ensureConfigFileAt(filepath.Join(configDir, "config.yml"), override)
}
