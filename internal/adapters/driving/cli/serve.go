package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"

	"github.com/custodia-labs/deskhub/internal/adapters/driven/cache/memory"
	configfile "github.com/custodia-labs/deskhub/internal/adapters/driven/config/file"
	"github.com/custodia-labs/deskhub/internal/adapters/driven/extract"
	"github.com/custodia-labs/deskhub/internal/adapters/driven/llm/anthropic"
	storefile "github.com/custodia-labs/deskhub/internal/adapters/driven/store/file"
	telemetrysqlite "github.com/custodia-labs/deskhub/internal/adapters/driven/telemetry/sqlite"
	"github.com/custodia-labs/deskhub/internal/adapters/driving/httpserver"
	"github.com/custodia-labs/deskhub/internal/connectors/google"
	gcalendar "github.com/custodia-labs/deskhub/internal/connectors/google/calendar"
	gdocs "github.com/custodia-labs/deskhub/internal/connectors/google/docs"
	gdrive "github.com/custodia-labs/deskhub/internal/connectors/google/drive"
	ggmail "github.com/custodia-labs/deskhub/internal/connectors/google/gmail"
	gsheets "github.com/custodia-labs/deskhub/internal/connectors/google/sheets"
	"github.com/custodia-labs/deskhub/internal/core/ports/driven"
	"github.com/custodia-labs/deskhub/internal/core/services"
	"github.com/custodia-labs/deskhub/internal/logger"
	"github.com/custodia-labs/deskhub/internal/workerpool"
)

// shutdownTimeout bounds the drain of in-flight requests on exit.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long: `Starts the HTTP server that backs the dashboard frontend.

The server links one Google account via OAuth (visit /auth/google) and
then serves email, calendar, docs and sheets data to the browser UI.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := logger.New(verbose)

	cfg, err := configfile.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" {
		return errors.New("google client_id and client_secret must be configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storefile.NewCredentialsStore(cfg.DataDir, log)
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Scopes:       cfg.Google.Scopes,
		Endpoint:     oauthgoogle.Endpoint,
	}
	manager := services.NewAuthManager(oauthCfg, store, log)

	// Pick up credential changes made outside this process, such as a
	// manual token.json replacement.
	go func() {
		if err := store.Watch(ctx, manager.Replace); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("credential watcher stopped")
		}
	}()

	mail, files, calendarSource, docWriter, sheetWriter, err := buildGoogleAdapters(ctx, manager)
	if err != nil {
		return err
	}

	cache := memory.New(memory.DefaultTTL)
	defer cache.Close()

	pool := workerpool.New(cfg.Limits.OCRWorkers, cfg.Limits.OCRQueueSize)
	defer pool.Close()

	telemetry, err := telemetrysqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening telemetry store: %w", err)
	}
	defer telemetry.Close()

	var llm driven.LLMService
	if cfg.Anthropic.APIKey != "" {
		llm, err = anthropic.NewLLMService(anthropic.Config{
			APIKey: cfg.Anthropic.APIKey,
			Model:  cfg.Anthropic.Model,
		})
		if err != nil {
			return fmt.Errorf("configuring chat service: %w", err)
		}
		defer llm.Close()
		log.Info().Str("model", llm.ModelName()).Msg("chat endpoint enabled")
	} else {
		log.Warn().Msg("no Anthropic API key configured, /api/query disabled")
	}

	server := httpserver.New(httpserver.Options{
		Log:            log,
		Auth:           manager,
		Mail:           mail,
		Files:          files,
		Calendar:       calendarSource,
		Docs:           docWriter,
		Sheets:         sheetWriter,
		LLM:            llm,
		Extractor:      extract.New(),
		Cache:          cache,
		Pool:           pool,
		Telemetry:      telemetry,
		StaticDir:      cfg.StaticDir,
		MaxUploadBytes: cfg.Limits.UploadMaxBytes,
	})

	return serveHTTP(ctx, log, cfg.ListenAddr, server.Handler())
}

// buildGoogleAdapters constructs the Workspace API clients over a
// shared refreshing token source.
func buildGoogleAdapters(ctx context.Context, manager *services.AuthManager) (
	driven.MailSource,
	driven.FileSource,
	driven.CalendarSource,
	driven.DocWriter,
	driven.SheetWriter,
	error,
) {
	ts := google.NewTokenSource(ctx, manager)

	gmailSvc, err := google.NewGmailService(ctx, ts)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("creating gmail client: %w", err)
	}
	driveSvc, err := google.NewDriveService(ctx, ts)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("creating drive client: %w", err)
	}
	calendarSvc, err := google.NewCalendarService(ctx, ts)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("creating calendar client: %w", err)
	}
	docsSvc, err := google.NewDocsService(ctx, ts)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("creating docs client: %w", err)
	}
	sheetsSvc, err := google.NewSheetsService(ctx, ts)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("creating sheets client: %w", err)
	}

	return ggmail.NewSource(gmailSvc),
		gdrive.NewSource(driveSvc),
		gcalendar.NewSource(calendarSvc),
		gdocs.NewWriter(docsSvc),
		gsheets.NewWriter(sheetsSvc),
		nil
}

// serveHTTP runs the server until the context is cancelled, then
// drains in-flight requests.
func serveHTTP(ctx context.Context, log zerolog.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
