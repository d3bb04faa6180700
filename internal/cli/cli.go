// Package cli holds the command line plumbing shared by the server and client.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/KDT2006/trivia/internal/config"
	"github.com/KDT2006/trivia/internal/logger"
	"github.com/spf13/cobra"
)

// ErrUsage means the command line was wrong; the caller prints the usage line and
// exits with status 1.
var ErrUsage = errors.New("usage")

// Flags are the options both programs accept besides the profile argument.
type Flags struct {
	ConfigPath string
	LogLevel   string
}

// NewCommand builds a root command taking exactly one profile argument, "1" or "2".
// Argument and flag errors are reported as ErrUsage.
func NewCommand(name, short string, flags *Flags, run func(cmd *cobra.Command, profile string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name + " [1 | 2]",
		Short:         short,
		Args:          profileArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	cmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		return ErrUsage
	})
	cmd.Flags().StringVar(&flags.ConfigPath, "config", "", "Directory containing trivia.yaml")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")

	return cmd
}

func profileArgs(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if args[0] != config.ProfileLocal && args[0] != config.ProfileRemote {
		return ErrUsage
	}
	return nil
}

// Usage returns the one-line usage message.
func Usage(name string) string {
	return fmt.Sprintf("\nusage: %s [1 | 2]\n", name)
}

// Setup loads the configuration and installs the default logger. A non-empty
// flags.LogLevel wins over the configured level.
func Setup(flags *Flags, logOut io.Writer) (*config.Config, error) {
	cfg, err := config.LoadConfig(flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if flags.LogLevel != "" {
		level = flags.LogLevel
	}
	slog.SetDefault(logger.New(logOut, logger.ParseLevel(level)))

	return cfg, nil
}

// Execute runs cmd and maps its result to a process exit code, printing the usage
// line to stdout for ErrUsage.
func Execute(cmd *cobra.Command, stdout io.Writer) int {
	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintln(stdout, Usage(cmd.Name()))
		return 1
	default:
		slog.Error("fatal error", "error", err)
		return 1
	}
}

// Main is Execute followed by os.Exit.
func Main(cmd *cobra.Command) {
	os.Exit(Execute(cmd, os.Stdout))
}
