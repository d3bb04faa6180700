package cli

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteProfileArgument(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantRun  string
	}{
		{"local", []string{"1"}, 0, "1"},
		{"remote", []string{"2"}, 0, "2"},
		{"no argument", []string{}, 1, ""},
		{"too many", []string{"1", "2"}, 1, ""},
		{"unknown profile", []string{"3"}, 1, ""},
		{"word", []string{"local"}, 1, ""},
		{"unknown flag", []string{"--port", "5001", "1"}, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ran string
			cmd := NewCommand("server", "test", &Flags{}, func(_ *cobra.Command, profile string) error {
				ran = profile
				return nil
			})
			cmd.SetArgs(tt.args)

			var stdout bytes.Buffer
			code := Execute(cmd, &stdout)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantRun, ran)
			if tt.wantCode != 0 {
				assert.Equal(t, "\nusage: server [1 | 2]\n\n", stdout.String())
			} else {
				assert.Empty(t, stdout.String())
			}
		})
	}
}

func TestExecuteRunError(t *testing.T) {
	cmd := NewCommand("client", "test", &Flags{}, func(*cobra.Command, string) error {
		return errors.New("boom")
	})
	cmd.SetArgs([]string{"1"})

	var stdout bytes.Buffer
	assert.Equal(t, 1, Execute(cmd, &stdout))
	assert.Empty(t, stdout.String())
}

func TestFlagsAreParsed(t *testing.T) {
	flags := &Flags{}
	cmd := NewCommand("client", "test", flags, func(*cobra.Command, string) error { return nil })
	cmd.SetArgs([]string{"--config", "/etc/trivia", "--log-level", "debug", "2"})

	assert.Equal(t, 0, Execute(cmd, &bytes.Buffer{}))
	assert.Equal(t, "/etc/trivia", flags.ConfigPath)
	assert.Equal(t, "debug", flags.LogLevel)
}

func TestSetupLogLevelOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trivia.yaml"), []byte("logLevel: error\n"), 0o644))

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var logs bytes.Buffer
	cfg, err := Setup(&Flags{ConfigPath: dir, LogLevel: "debug"}, &logs)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)

	// The flag wins, so debug records reach the writer.
	slog.Debug("debug record")
	assert.Contains(t, logs.String(), "debug record")
}
