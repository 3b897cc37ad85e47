package main

import (
	"os"

	"github.com/tomz197/nyanko/internal/config"
	"github.com/tomz197/nyanko/internal/desktop"
	"github.com/tomz197/nyanko/internal/game"
	"github.com/tomz197/nyanko/internal/storage"
)

func main() {
	logger := config.NewLogger(os.Stderr, "nyanko")

	tuning, err := config.LoadTuning(config.GetEnv(config.EnvTuning, ""))
	if err != nil {
		logger.Warn("Using default tuning", "err", err)
	}

	store, err := storage.OpenGData(config.AppName)
	if err != nil {
		logger.Warn("High scores will not be saved", "err", err)
	}

	app := desktop.New(game.Options{
		Tuning:   tuning,
		Store:    store,
		Observer: game.NewLogObserver(logger),
	}, logger)

	if err := desktop.Run(app); err != nil {
		logger.Fatal("Window closed with error", "err", err)
	}
}
