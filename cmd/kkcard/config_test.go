package main

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_DefaultMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfig_DefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "kkcard"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "kkcard", "config.toml"), []byte("strict = true\n"), 0o644))

	assert.Equal(t, filepath.Join(home, "kkcard", "config.toml"), GetConfigFilePath())
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_Explicit(t *testing.T) {
	path := writeFile(t, "config.toml", []byte(`
strict = true
skip_png = true
log_level = "debug"
log_format = "json"
max_input_size = 1048576
max_kkex_depth = 8
`))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Strict:       true,
		SkipPNG:      true,
		LogLevel:     "debug",
		LogFormat:    "json",
		MaxInputSize: 1048576,
		MaxKKExDepth: 8,
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Errors(t *testing.T) {
	testCases := []struct {
		content string
		wantErr string
	}{
		{
			content: "strict = \"yes\"",
			wantErr: "error decoding config file",
		},
		{
			content: "strict = true\ncolour = true",
			wantErr: "unknown config keys",
		},
		{
			content: "strict = [",
			wantErr: "error decoding config file",
		},
	}
	for i, tc := range testCases {
		t.Run(tc.content, func(t *testing.T) {
			path := writeFile(t, "config.toml", []byte(tc.content))
			_, err := LoadConfig(path)
			require.Error(t, err, "case %d", i)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadConfig_ExplicitMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "defaults",
			config: *defaultConfig(),
		},
		{
			name:   "empty",
			config: Config{},
		},
		{
			name:    "bad level",
			config:  Config{LogLevel: "loud"},
			wantErr: `log level: unsupported value "loud"`,
		},
		{
			name:    "bad format",
			config:  Config{LogFormat: "xml"},
			wantErr: `log format: unsupported value "xml"`,
		},
		{
			name:    "negative max input",
			config:  Config{MaxInputSize: -1},
			wantErr: "max_input_size must not be negative",
		},
		{
			name:    "negative kkex depth",
			config:  Config{MaxKKExDepth: -1},
			wantErr: "max_kkex_depth must not be negative",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
