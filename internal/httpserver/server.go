// Package httpserver exposes the soil-advisory core over the REST
// surface the Nasgh dashboard and the ESP32 device talk to. It only
// parses requests and serializes results; all decisions live in the
// core packages.
package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/haithamsoil/nasgh/internal/advisor"
	"github.com/haithamsoil/nasgh/internal/domain"
	"github.com/haithamsoil/nasgh/internal/repository"
	"github.com/haithamsoil/nasgh/internal/targets"
)

// TargetResolver is the ideal-range resolution entry point.
type TargetResolver interface {
	Resolve(ctx context.Context, rawPlantName string, stage domain.Stage, snapshot domain.Reading) (*targets.Resolution, error)
}

// AdviceService produces advisory and chat text.
type AdviceService interface {
	Advise(ctx context.Context, req advisor.AdviceRequest) (string, error)
	Chat(ctx context.Context, req advisor.ChatRequest) (string, error)
}

// Server wires the core services to their HTTP routes.
type Server struct {
	resolver TargetResolver
	advisor  AdviceService
	readings repository.ReadingLog
	sessions repository.SessionStore
	logger   *slog.Logger
	origins  []string
}

// New creates a Server. A nil logger discards log output.
func New(resolver TargetResolver, advice AdviceService, readings repository.ReadingLog,
	sessions repository.SessionStore, allowedOrigins []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Server{
		resolver: resolver,
		advisor:  advice,
		readings: readings,
		sessions: sessions,
		logger:   logger,
		origins:  allowedOrigins,
	}
}

// Handler returns the routed HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/soil-data", s.handleIngestReading)
	mux.HandleFunc("GET /api/soil-data", s.handleLatestReading)
	mux.HandleFunc("GET /api/soil-history", s.handleHistory)
	mux.HandleFunc("POST /api/soil-session", s.handleSaveSession)
	mux.HandleFunc("GET /api/soil-sessions", s.handleListSessions)
	mux.HandleFunc("POST /api/nasgh-targets", s.handleTargets)
	mux.HandleFunc("POST /api/nasgh-ai", s.handleAdvice)
	mux.HandleFunc("POST /api/nasgh-chat", s.handleChat)
	return s.cors(mux)
}

// cors adds the response headers the browser dashboard needs and
// answers preflight requests.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed := s.allowOrigin(origin); allowed != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowOrigin(origin string) string {
	for _, o := range s.origins {
		if o == "*" {
			return "*"
		}
		if origin != "" && o == origin {
			return origin
		}
	}
	return ""
}
