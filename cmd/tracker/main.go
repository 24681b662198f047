package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"leetcode_tracker/internal/cli"
	"leetcode_tracker/internal/client"
	"leetcode_tracker/internal/platform/config"
	"leetcode_tracker/internal/platform/logging"
	"leetcode_tracker/internal/platform/tokenstore"
	"leetcode_tracker/internal/store"
	"os"
	"time"

	"github.com/chzyer/readline"
)

func main() {
	cfg := config.Load()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tracker> ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	// Log lines go through readline so they do not clobber the prompt.
	logging.Configure(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: rl.Stderr()})
	logger := logging.GetLogger("tracker")

	ctx := context.Background()
	retention, closeRetention, err := tokenstore.FromConfig(ctx, cfg)
	if err != nil {
		logger.Error("token retention unavailable", "backend", cfg.TokenBackend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeRetention(); err != nil {
			logger.Warn("closing token retention", "error", err)
		}
	}()

	api := client.New(cfg.APIBaseURL, nil, cfg.HTTPTimeout)
	sessions := store.NewSessionStore(api, retention, logging.GetLogger("session"))
	collection := store.NewCollectionStore(api, sessions, logging.GetLogger("collection"))

	app := cli.NewCLI(sessions, collection, rl, rl.Stdout())

	fmt.Fprintf(rl.Stdout(), "LeetCode tracker (%s)\n", cfg.APIBaseURL)
	fmt.Fprintln(rl.Stdout(), "Type 'help' for a list of commands or 'exit' to quit.")

	initCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout+5*time.Second)
	if err := sessions.InitializeAuth(initCtx); err != nil {
		fmt.Fprintf(rl.Stdout(), "Saved session not restored: %s\n", client.Message(err, "Token validation failed"))
	} else if sessions.State().IsAuthenticated {
		fmt.Fprintln(rl.Stdout(), "Welcome back.")
		if err := app.ExecuteCommand(initCtx, []string{"sync"}); err != nil {
			fmt.Fprintln(rl.Stdout(), "Error:", err)
		}
	}
	cancel()
	rl.SetPrompt(app.Prompt())

	for {
		err := app.Run(ctx)
		if err == nil {
			continue
		}
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			fmt.Fprintln(rl.Stdout(), "Use 'exit' or 'quit' to exit the program.")
		case errors.Is(err, io.EOF), errors.Is(err, cli.ErrExit):
			return
		default:
			fmt.Fprintln(rl.Stdout(), "Error:", err)
		}
	}
}
