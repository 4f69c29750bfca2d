package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mechiko/bilevelmatch/pkg/config"
	"github.com/mechiko/bilevelmatch/pkg/matchopts"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigEmptyReaderYieldsDefaults(t *testing.T) {
	c, err := config.LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 100, c.Aggression)
	require.Equal(t, 300, c.DPI)
	require.Equal(t, 2, c.ClassifierLevel)
	require.Equal(t, []string{"pith2"}, c.Methods)
}

func TestLoadConfigParsesYAML(t *testing.T) {
	doc := `
aggression: 150
methods:
  - pith2
  - rampage
dpi: 600
classifierLevel: 3
`
	c, err := config.LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 150, c.Aggression)
	require.Equal(t, 600, c.DPI)
	require.Equal(t, 3, c.ClassifierLevel)
	require.ElementsMatch(t, []string{"pith2", "rampage"}, c.Methods)
}

func TestLoadConfigRejectsNegativeAggression(t *testing.T) {
	_, err := config.LoadConfig(strings.NewReader("aggression: -5\n"))
	require.Error(t, err)
}

func TestLoadConfigRejectsBadDPI(t *testing.T) {
	_, err := config.LoadConfig(strings.NewReader("dpi: 0\n"))
	require.Error(t, err)
}

func TestLoadConfigRejectsBadClassifierLevel(t *testing.T) {
	_, err := config.LoadConfig(strings.NewReader("classifierLevel: 4\n"))
	require.Error(t, err)
}

func TestLoadConfigRejectsUnknownMethod(t *testing.T) {
	_, err := config.LoadConfig(strings.NewReader("methods:\n  - bogus\n"))
	require.Error(t, err)
}

func TestToOptionsWiresAggressionAndMethods(t *testing.T) {
	c, err := config.LoadConfig(strings.NewReader("aggression: 50\nmethods:\n  - pith2\n"))
	require.NoError(t, err)
	opts := c.ToOptions()
	require.Equal(t, 50, opts.Aggression())
	require.True(t, opts.HasMethod(matchopts.PITH2))
	require.False(t, opts.HasMethod(matchopts.Rampage))
}

func TestEnsureDefaultConfigAtCreatesFile(t *testing.T) {
	dir := t.TempDir()
	err := config.EnsureDefaultConfigAt(dir, false)
	require.NoError(t, err)

	path := filepath.Join(dir, "bilevelmatch", "config.yml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "aggression: 100")
}

func TestEnsureDefaultConfigAtDoesNotOverwriteByDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.EnsureDefaultConfigAt(dir, false))

	path := filepath.Join(dir, "bilevelmatch", "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("aggression: 77\n"), 0o644))

	require.NoError(t, config.EnsureDefaultConfigAt(dir, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "aggression: 77")
}

func TestEnsureDefaultConfigAtOverridesWhenAsked(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.EnsureDefaultConfigAt(dir, false))

	path := filepath.Join(dir, "bilevelmatch", "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("aggression: 77\n"), 0o644))

	require.NoError(t, config.EnsureDefaultConfigAt(dir, true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "aggression: 100")
}
