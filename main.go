package main

import (
	chart "Olson/internal/calc/chart"
	export "Olson/internal/calc/export"
	olson "Olson/internal/calc/olson"
	config "Olson/internal/config"
	live "Olson/internal/live"
	log "Olson/internal/log"
	middleware "Olson/internal/middleware"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var version = "dev"

var wg sync.WaitGroup

func HandleList(router *mux.Router, cfg *config.Config) {
	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	olsonH := &olson.Handler{Defaults: cfg.Defaults.Form(), MaxYears: cfg.Limits.MaxYears}
	chartH := &chart.Handler{MaxYears: cfg.Limits.MaxYears}
	exportH := &export.Handler{MaxYears: cfg.Limits.MaxYears}

	api.HandleFunc("/tools/olson/defaults", olsonH.GetDefaults).Methods("GET")
	api.HandleFunc("/tools/olson/calc", olsonH.Calc).Methods("POST")
	api.HandleFunc("/tools/olson/chart", chartH.Empty).Methods("GET")
	api.HandleFunc("/tools/olson/chart", chartH.Generate).Methods("POST")
	api.HandleFunc("/tools/olson/export", exportH.Workbook).Methods("POST")

	liveS := live.NewServer(websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}, limiter, cfg.Limits.MaxYears)
	router.HandleFunc("/ws", liveS.ServeWs)

	mainFileServer := http.FileServer(http.Dir(cfg.Server.StaticDir))
	router.PathPrefix("/").Handler(mainFileServer)
}

func serve(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	router := mux.NewRouter()
	HandleList(router, cfg)
	handler := middleware.Logging(middleware.CORS(router))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Infow("starting server", "addr", cfg.Server.Addr, "tls", cfg.Server.TLSEnabled())
	errCh := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.Server.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.Server.TLSCert, cfg.Server.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		wg.Wait()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	log.Infow("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	wg.Wait()
	log.Infow("server stopped")
	return nil
}

func newServeCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		debug      bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the fuel load form, chart and API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if err := log.Init(debug || cfg.Logging.Debug); err != nil {
				return err
			}
			defer log.Sync()
			return serve(cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default ./config.yaml)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides server.addr")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	return cmd
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "olsonfuel",
		Short: "Olson fuel load calculator",
		Long: `Computes and plots the Olson fuel accumulation curve.

Examples:
  olsonfuel serve
  olsonfuel serve --addr :9000 --debug
  OLSON_DEFAULTS_YEARS_SINCE_FIRE=20 olsonfuel serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
