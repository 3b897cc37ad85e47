package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/nyanko/internal/config"
	"github.com/tomz197/nyanko/internal/game"
	"github.com/tomz197/nyanko/internal/loop"
	"github.com/tomz197/nyanko/internal/storage"
)

func main() {
	// The terminal belongs to the game, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv(config.EnvLogFile, ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "nyanko")

	tuning, err := config.LoadTuning(config.GetEnv(config.EnvTuning, ""))
	if err != nil {
		logger.Warn("Using default tuning", "err", err)
	}

	store, err := storage.OpenGData(config.AppName)
	if err != nil {
		logger.Warn("High scores will not be saved", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		Game: game.Options{
			Tuning:   tuning,
			Store:    store,
			Observer: game.NewLogObserver(logger),
		},
		Logger: logger,
	}
	if err := loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
