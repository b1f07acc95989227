package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/event-announcer/common/config"
	"github.com/event-announcer/common/httpadapter"
	"github.com/event-announcer/common/logger"
	"github.com/event-announcer/common/metrics"
	"github.com/event-announcer/services/announcement-lambda/app"
	"github.com/event-announcer/services/announcement-lambda/handler"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "announcer",
		Short:         "Event announcement service (local runner for the Lambda handler)",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		envFile string
		port    string
		backend string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the announcement handler over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadEnvFile(envFile)

			cfg, err := resolveConfig(port, backend)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	cmd.Flags().StringVar(&backend, "backend", "", "notification backend: sns or memory (overrides NOTIFY_BACKEND)")
	return cmd
}

// resolveConfig reads the environment and applies flag overrides
func resolveConfig(port, backend string) (*config.Config, error) {
	cfg := config.Load()
	if port != "" {
		cfg.Port = port
	}
	if backend != "" {
		normalized, ok := config.NormalizeBackend(backend)
		if !ok {
			return nil, fmt.Errorf("invalid --backend %q: want %s or %s", backend, config.BackendSNS, config.BackendMemory)
		}
		cfg.Backend = normalized
	}
	return cfg, nil
}

// loadEnvFile loads a dotenv file if present; real environment variables win
func loadEnvFile(filename string) {
	if err := godotenv.Load(filename); err != nil {
		logger.Info("No %s file loaded, using system environment variables", filename)
		return
	}
	logger.Info("Loaded environment variables from %s", filename)
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Default()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	announcementHandler, cleanup, err := app.Build(ctx, cfg, log, metrics.NewRecorder(reg))
	if err != nil {
		return fmt.Errorf("failed to initialize handler: %w", err)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(announcementHandler, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("Event announcer listening on :%s (backend=%s, topic=%s)", cfg.Port, cfg.Backend, cfg.TopicARN)
	log.Info("  GET  /events             - Recent announcements")
	log.Info("  POST /events             - Publish an announcement")
	log.Info("  POST /events/subscribe   - Subscribe email/sms endpoint")
	log.Info("  POST /events/unsubscribe - Remove a subscription")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// newRouter mounts health and metrics ahead of the catch-all proxy route;
// the handler does its own method/path dispatch.
func newRouter(h *handler.AnnouncementHandler, reg *prometheus.Registry) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.PathPrefix("/").Handler(httpadapter.Handler(h.Handle))
	return r
}
