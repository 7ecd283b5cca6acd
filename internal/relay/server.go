// Package relay implements the trading-signal relay: the HTTP service the
// launch stage boots. It accepts signals from upstream automation, formats
// them through the Signal AI service, optionally attaches news analysis,
// and delivers them to Telegram chats with an interactive inline keyboard.
package relay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vk/bootgridgo/internal/ctxlog"
	"github.com/vk/bootgridgo/internal/relay/session"
	"github.com/vk/bootgridgo/internal/relay/telegram"
	"github.com/vk/bootgridgo/internal/relay/upstream"
)

// botAPI is the slice of the Telegram client the handlers need.
type botAPI interface {
	SendMessage(ctx context.Context, msg telegram.SendMessage) error
	EditMessageText(ctx context.Context, edit telegram.EditMessageText) error
}

// signalFormatter renders raw signal data into a message.
type signalFormatter interface {
	FormatSignal(ctx context.Context, signal map[string]any) (string, error)
}

// newsAnalyzer produces a sentiment analysis document for an instrument.
type newsAnalyzer interface {
	AnalyzeNews(ctx context.Context, instrument string, articles []any) (map[string]any, error)
}

// Server is the relay application. It satisfies the launcher's Application
// contract: it owns request handling, the boot layer owns the listener.
type Server struct {
	cfg      *Config
	sessions *session.Store
	bot      botAPI
	signals  signalFormatter
	news     newsAnalyzer
	metrics  *serverMetrics
	router   *mux.Router
}

// NewServer wires a relay server from its configuration.
func NewServer(cfg *Config) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: session.NewStore(cfg.SessionCapacity, cfg.SessionTTL),
		bot: telegram.NewClient(telegram.Config{
			Token:   cfg.BotToken,
			BaseURL: cfg.TelegramBaseURL,
		}),
		signals: upstream.NewSignalClient(cfg.SignalServiceURL),
		news:    upstream.NewNewsClient(cfg.NewsServiceURL),
		metrics: newServerMetrics(),
	}
	s.router = s.routes()
	return s
}

// routes builds the relay's router.
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.metrics.middleware)

	r.HandleFunc("/send-signal", s.handleSendSignal).Methods(http.MethodPost)
	r.HandleFunc("/callback/{data}", s.handleCallback).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return r
}

// Serve accepts connections on ln until the context is canceled or the
// server fails. A context-initiated shutdown is a clean return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := ctxlog.FromContext(ctx)

	httpServer := &http.Server{
		Handler: s.router,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Relay shutdown failed.", "error", err)
		}
	}()

	logger.Info("Relay serving.",
		"addr", ln.Addr().String(),
		"signal_service", s.cfg.SignalServiceURL,
		"news_service", s.cfg.NewsServiceURL,
		"scratch_dir", s.cfg.ScratchDir)

	err := httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		if ctx.Err() != nil {
			<-shutdownDone
			return nil
		}
		return nil
	}
	return fmt.Errorf("relay server failed: %w", err)
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}
