package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KDT2006/trivia/internal/bank"
	"github.com/KDT2006/trivia/internal/cli"
	"github.com/KDT2006/trivia/internal/server"
	"github.com/spf13/cobra"
)

var flags cli.Flags

func main() {
	cli.Main(cli.NewCommand("server", "Host the trivia game over TCP", &flags, run))
}

func run(cmd *cobra.Command, profile string) error {
	cfg, err := cli.Setup(&flags, os.Stderr)
	if err != nil {
		return err
	}

	endpoint, err := cfg.Server.Select(profile)
	if err != nil {
		return err
	}

	questions, err := bank.Load(cfg.QuestionsFile)
	if err != nil {
		return err
	}
	slog.Info("loaded question bank", "file", cfg.QuestionsFile, "questions", questions.Len())

	srv, err := server.New(endpoint.Addr(), questions, server.WithQuestionsPerGame(cfg.QuestionsPerGame))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			slog.Info("received signal", "signal", sig)
			slog.Info("performing cleanup")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := srv.Start(ctx); err != nil {
		return err
	}

	slog.Info("exiting gracefully")
	return nil
}
