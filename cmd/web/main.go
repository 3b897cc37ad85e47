package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/tomz197/nyanko/internal/config"
	"github.com/tomz197/nyanko/internal/game"
	"github.com/tomz197/nyanko/internal/storage"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	logger := config.NewLogger(os.Stderr, "web")
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)

	store, err := storage.OpenGData(config.AppName)
	if err != nil {
		logger.Warn("High score unavailable", "err", err)
	}

	page := strings.NewReplacer(
		"{{.SSHHost}}", config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		"{{.SSHPort}}", config.GetEnv("SSH_PORT", "2222"),
	).Replace(htmlPage)

	addr := net.JoinHostPort(host, port)
	logger.Info("Starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, newRouter(page, store, logger)); err != nil {
		logger.Fatal("Server error", "err", err)
	}
}

func newRouter(page string, store storage.Store, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	r.Get("/api/highscore", func(w http.ResponseWriter, r *http.Request) {
		board, err := game.LoadScoreboard(store, config.HighScoreKey)
		if err != nil {
			logger.Warn("Reading high score", "err", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			HighScore int `json:"highScore"`
		}{board.High})
	})

	return r
}
