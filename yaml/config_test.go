package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docharvest"
	"github.com/fwojciec/docharvest/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
targets:
  handbook:
    rootUrl: https://example.com/docs
    navSelectors:
      - .docs-menu
    classify:
      chapters:
        /docs/start: {number: 1, name: Getting Started}
        /docs/api: {number: 2, name: API Reference}
      priorities:
        intro: 1
        quickstart: 2
  runbook:
    rootUrl: https://ops.example.com/docs
`)

	cfg, err := yaml.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"handbook", "runbook"}, cfg.Names())

	target, err := cfg.Target("handbook")
	require.NoError(t, err)
	assert.Equal(t, "handbook", target.Name)
	assert.Equal(t, "https://example.com/docs", target.RootURL)
	assert.Equal(t, []string{".docs-menu"}, target.NavSelectors)
	assert.Equal(t, docharvest.Chapter{Number: 1, Name: "Getting Started"}, target.Classify.Chapters["/docs/start"])
	assert.Equal(t, 2, target.Classify.Priorities["quickstart"])
}

func TestLoad_NoTargets(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "targets: {}\n")

	_, err := yaml.Load(path)
	assert.Equal(t, docharvest.EINVALID, docharvest.ErrorCode(err))
}

func TestLoad_InvalidTarget(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
targets:
  broken:
    classify: {}
`)

	_, err := yaml.Load(path)
	assert.Equal(t, docharvest.EINVALID, docharvest.ErrorCode(err))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := yaml.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_Target_NotFound(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
targets:
  handbook:
    rootUrl: https://example.com/docs
`)

	cfg, err := yaml.Load(path)
	require.NoError(t, err)

	_, err = cfg.Target("nope")
	assert.Equal(t, docharvest.ENOTFOUND, docharvest.ErrorCode(err))
}
