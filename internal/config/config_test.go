package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	// Run from an empty directory so no stray .env is picked up.
	t.Chdir(t.TempDir())
	f := Flags("test")
	require.NoError(t, f.Parse(args))
	return Load(f)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, "spanish-english", cfg.Language)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, 3*time.Second, cfg.Reveal.Delay)
	assert.Equal(t, 1, cfg.Save.Retries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Journal.Path)
	assert.Empty(t, cfg.Dataset.Repo)
}

func TestLoadFlags(t *testing.T) {
	cfg, err := load(t,
		"--language", "english-turkish",
		"--data-dir", "/tmp/decks",
		"--reveal-delay", "1500ms",
		"--save-retries", "0",
		"--journal-path", "journal.db",
	)
	require.NoError(t, err)

	assert.Equal(t, "english-turkish", cfg.Language)
	assert.Equal(t, "/tmp/decks", cfg.Data.Dir)
	assert.Equal(t, 1500*time.Millisecond, cfg.Reveal.Delay)
	assert.Equal(t, 0, cfg.Save.Retries)
	assert.Equal(t, "journal.db", cfg.Journal.Path)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lingodeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
language: english-turkish
data:
  dir: from-file
reveal:
  delay: 5s
log:
  level: debug
`), 0o644))

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := load(t, "--config", path)
		require.NoError(t, err)
		assert.Equal(t, "english-turkish", cfg.Language)
		assert.Equal(t, "from-file", cfg.Data.Dir)
		assert.Equal(t, 5*time.Second, cfg.Reveal.Delay)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("LINGODECK_DATA_DIR", "from-env")
		t.Setenv("LINGODECK_SAVE_RETRIES", "3")

		cfg, err := load(t, "--config", path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Data.Dir)
		assert.Equal(t, 3, cfg.Save.Retries)
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv("LINGODECK_DATA_DIR", "from-env")

		cfg, err := load(t, "--config", path, "--data-dir", "from-flag")
		require.NoError(t, err)
		assert.Equal(t, "from-flag", cfg.Data.Dir)
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LINGODECK_LANGUAGE=english-turkish\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LINGODECK_LANGUAGE") })

	f := Flags("test")
	require.NoError(t, f.Parse(nil))
	cfg, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, "english-turkish", cfg.Language)
}

func TestLoadValidation(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "unknown language", args: []string{"--language", "klingon"}},
		{name: "zero delay", args: []string{"--reveal-delay", "0s"}},
		{name: "too many retries", args: []string{"--save-retries", "9"}},
		{name: "bad log level", args: []string{"--log-level", "loud"}},
		{name: "empty data dir", args: []string{"--data-dir", ""}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, tc.args...)
			assert.Error(t, err)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "data.dir", envKey("LINGODECK_DATA_DIR"))
	assert.Equal(t, "language", envKey("LINGODECK_LANGUAGE"))
	assert.Equal(t, "journal.path", envKey("LINGODECK_JOURNAL_PATH"))
}
