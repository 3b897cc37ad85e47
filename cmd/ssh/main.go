package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomz197/nyanko/internal/config"
	"github.com/tomz197/nyanko/internal/draw"
	"github.com/tomz197/nyanko/internal/game"
	"github.com/tomz197/nyanko/internal/loop"
	"github.com/tomz197/nyanko/internal/metrics"
	"github.com/tomz197/nyanko/internal/storage"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultMetricsAddr = "127.0.0.1:9090"
)

// server holds what every SSH session shares.
type server struct {
	logger  *log.Logger
	tuning  config.Tuning
	store   storage.Store
	metrics *metrics.Metrics
	gate    *gate
	ctx     context.Context // Cancelled on shutdown
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	logger := config.NewLogger(os.Stderr, "ssh")
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	metricsAddr := config.GetEnv("METRICS_ADDR", defaultMetricsAddr)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "metrics", metricsAddr)

	tuning, err := config.LoadTuning(config.GetEnv(config.EnvTuning, ""))
	if err != nil {
		logger.Warn("Using default tuning", "err", err)
	}

	// One store for all sessions so concurrent games share the high score.
	store, err := storage.OpenGData(config.AppName)
	if err != nil {
		logger.Warn("High scores will not survive a restart", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &server{
		logger:  logger,
		tuning:  tuning,
		store:   store,
		metrics: metrics.New(prometheus.DefaultRegisterer),
		gate: newGate(
			float64(config.GetEnvInt("NYANKO_CONNECT_RATE", 5)),
			config.GetEnvInt("NYANKO_CONNECT_BURST", 10),
			config.GetEnvInt("NYANKO_MAX_SESSIONS", 64),
		),
		ctx: ctx,
	}

	metricsServer := &http.Server{Addr: metricsAddr, Handler: metricsRouter()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "err", err)
		}
	}()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("Failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Ends every running game; their sessions then close on their own.
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "err", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics shutdown error", "err", err)
	}
}

// metricsRouter serves prometheus metrics and a liveness probe.
func metricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return r
}

// gameMiddleware runs one independent game per SSH session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		release, reason := srv.gate.admit(time.Now())
		if release == nil {
			srv.metrics.Rejected(reason)
			srv.logger.Warn("Session rejected", "user", sess.User(), "reason", reason)
			fmt.Fprintln(sess, "The server is busy, please try again in a moment.")
			return
		}
		defer release()
		defer srv.metrics.SessionStarted()()

		logger := srv.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("New game session", "terminal", pty.Term,
			"size", strconv.Itoa(pty.Window.Width)+"x"+strconv.Itoa(pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(srv.ctx, cancel)
		defer stop()

		c := loop.NewClient(bufio.NewReader(sess), sess, loop.Options{
			Game: game.Options{
				Tuning:   srv.tuning,
				Store:    srv.store,
				Observer: game.Observers(game.NewLogObserver(logger), srv.metrics),
			},
			TermSizeFunc:   sizeTracker.getSize,
			Logger:         logger,
			Ticks:          srv.metrics,
			DisconnectIdle: true,
		})
		if err := c.Run(ctx); err != nil {
			logger.Error("Game error", "err", err)
		}

		logger.Info("Session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
