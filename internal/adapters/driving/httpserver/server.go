// Package httpserver exposes the dashboard API and static frontend.
// Handlers are thin: they validate input, gate on authentication,
// consult the result cache and delegate to the driven ports.
package httpserver

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/deskhub/internal/core/ports/driven"
	"github.com/custodia-labs/deskhub/internal/core/ports/driving"
	"github.com/custodia-labs/deskhub/internal/workerpool"
)

// Options carries the dependencies of a Server.
type Options struct {
	Log       zerolog.Logger
	Auth      driving.AuthService
	Mail      driven.MailSource
	Files     driven.FileSource
	Calendar  driven.CalendarSource
	Docs      driven.DocWriter
	Sheets    driven.SheetWriter
	LLM       driven.LLMService
	Extractor driven.TextExtractor
	Cache     driven.ResultCache
	Pool      *workerpool.Pool
	Telemetry driven.TelemetryStore

	// StaticDir is the directory served at / (the frontend bundle).
	StaticDir string

	// MaxUploadBytes bounds document uploads. Zero applies the default.
	MaxUploadBytes int64
}

// DefaultMaxUploadBytes bounds uploads to 10 MB, matching the client.
const DefaultMaxUploadBytes = 10 << 20

// Server routes dashboard requests to the core services and Google
// Workspace adapters.
type Server struct {
	log       zerolog.Logger
	auth      driving.AuthService
	mail      driven.MailSource
	files     driven.FileSource
	calendar  driven.CalendarSource
	docs      driven.DocWriter
	sheets    driven.SheetWriter
	llm       driven.LLMService
	extractor driven.TextExtractor
	cache     driven.ResultCache
	pool      *workerpool.Pool
	telemetry driven.TelemetryStore
	staticDir string
	maxUpload int64
}

// New creates a Server from its dependencies.
func New(opts Options) *Server {
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}

	return &Server{
		log:       opts.Log,
		auth:      opts.Auth,
		mail:      opts.Mail,
		files:     opts.Files,
		calendar:  opts.Calendar,
		docs:      opts.Docs,
		sheets:    opts.Sheets,
		llm:       opts.LLM,
		extractor: opts.Extractor,
		cache:     opts.Cache,
		pool:      opts.Pool,
		telemetry: opts.Telemetry,
		staticDir: opts.StaticDir,
		maxUpload: maxUpload,
	}
}

// Handler builds the route table wrapped in the logging and recovery
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /auth/google", s.handleAuthRedirect)
	mux.HandleFunc("GET /auth/google/callback", s.handleAuthCallback)
	mux.HandleFunc("GET /auth/status", s.handleAuthStatus)

	mux.HandleFunc("GET /api/emails", s.requireAuth(s.handleEmails))
	mux.HandleFunc("POST /api/process-email-attachments", s.requireAuth(s.handleEmailAttachments))
	mux.HandleFunc("POST /api/process-document", s.requireAuth(s.handleProcessDocument))

	mux.HandleFunc("GET /api/calendar", s.requireAuth(s.handleCalendarList))
	mux.HandleFunc("POST /api/calendar", s.requireAuth(s.handleCalendarCreate))

	mux.HandleFunc("GET /api/docs", s.requireAuth(s.handleDocsList))
	mux.HandleFunc("GET /api/sheets", s.requireAuth(s.handleSheetsList))
	mux.HandleFunc("POST /api/docs/{id}", s.requireAuth(s.handleDocsAppend))
	mux.HandleFunc("POST /api/sheets/{id}", s.requireAuth(s.handleSheetsAppend))

	mux.HandleFunc("POST /api/query", s.handleQuery)
	mux.HandleFunc("POST /api/metrics", s.handleMetrics)

	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}

	return s.withRequestLog(s.withRecovery(mux))
}
