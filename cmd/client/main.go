package main

import (
	"fmt"
	"os"

	"github.com/KDT2006/trivia/internal/cli"
	"github.com/KDT2006/trivia/internal/client"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var flags cli.Flags

func main() {
	cli.Main(cli.NewCommand("client", "Play University of Minnesota trivia", &flags, run))
}

func run(_ *cobra.Command, profile string) error {
	cfg, err := cli.Setup(&flags, os.Stderr)
	if err != nil {
		return err
	}

	endpoint, err := cfg.Client.Select(profile)
	if err != nil {
		return err
	}
	if !endpoint.Configured() {
		return fmt.Errorf("server address for profile %s is not configured (set client.remote in trivia.yaml)", profile)
	}

	return client.New(endpoint.Addr(), client.WithWidth(ruleWidth())).Run()
}

// ruleWidth fits the question rules to the terminal, capped at the default width.
func ruleWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return client.DefaultWidth
	}
	if width, _, err := term.GetSize(fd); err == nil && width > 0 && width < client.DefaultWidth {
		return width
	}
	return client.DefaultWidth
}
