package config

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"tally-mapper/internal/election"
	"tally-mapper/internal/structure"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		EnvElection, EnvElectionFormat, EnvVariant, EnvLocale,
		EnvLogLevel, EnvDebug, EnvCSVComma, EnvCSVLatin1,
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse([]string{"structure"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "structure", cfg.Command)
	assert.Empty(t, cfg.Args)
	assert.Equal(t, structure.VariantFirstSession, cfg.Variant)
	assert.Equal(t, language.Dutch, cfg.Locale)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, ',', cfg.CSVComma)
	assert.False(t, cfg.Debug)
}

func TestParse_Flags(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse([]string{
		"-e", "election.csv", "-format", "csv", "-variant", "counts-only",
		"-locale", "en", "-debug", "-v", "-csv-comma", ";", "-csv-latin1",
		"diff", "a.json", "b.json",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "election.csv", cfg.ElectionFile)
	assert.Equal(t, election.FormatCSV, cfg.ElectionFormat)
	assert.Equal(t, structure.VariantCountsOnly, cfg.Variant)
	assert.Equal(t, language.English, cfg.Locale)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.Debug)
	assert.Equal(t, ';', cfg.CSVComma)
	assert.True(t, cfg.CSVLatin1)
	assert.Len(t, cfg.CSVOptions(), 2)
	assert.Equal(t, "diff", cfg.Command)
	assert.Equal(t, []string{"a.json", "b.json"}, cfg.Args)
}

func TestParse_EnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvElection, "env.yaml")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvCSVLatin1, "true")

	cfg, err := Parse([]string{"route"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "env.yaml", cfg.ElectionFile)
	assert.Equal(t, slog.LevelError, cfg.LogLevel)
	assert.True(t, cfg.CSVLatin1)

	cfg, err = Parse([]string{"-e", "flag.yaml", "route"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "flag.yaml", cfg.ElectionFile, "flags override env")
}

func TestParse_DebugRaisesLogLevel(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse([]string{"-log-level", "warn", "-debug", "new"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)

	t.Setenv(EnvDebug, "1")

	cfg, err = Parse([]string{"new"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestParse_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Parse([]string{"-env", "testdata/test.env", "structure"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv.yaml", cfg.ElectionFile)
	assert.Equal(t, structure.VariantCountsOnly, cfg.Variant)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel, "set variables are not overridden")

	_, err = Parse([]string{"-env", "testdata/missing.env", "structure"}, io.Discard)
	assert.ErrorContains(t, err, "failed to load testdata/missing.env")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		want string
	}{
		{name: "no command", args: nil, want: "missing command"},
		{name: "bad variant", args: []string{"-variant", "third", "x"}, want: "unknown variant"},
		{name: "bad format", args: []string{"-format", "xml", "x"}, want: "unknown election format"},
		{name: "bad locale", args: []string{"-locale", "not a tag!", "x"}, want: "invalid locale"},
		{name: "bad level", args: []string{"-log-level", "loud", "x"}, want: "invalid log level"},
		{name: "bad comma", args: []string{"-csv-comma", ";;", "x"}, want: "csv separator"},
		{name: "bad debug env", args: []string{"x"}, env: map[string]string{EnvDebug: "maybe"}, want: "invalid " + EnvDebug},
		{name: "unknown flag", args: []string{"-nope", "x"}, want: "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Parse(tt.args, io.Discard)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, structure.VariantFirstSession, v)
}
