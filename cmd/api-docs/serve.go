package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/db"
	"github.com/joestump/api-docs/internal/handler"
	"github.com/joestump/api-docs/internal/session"
	"github.com/joestump/api-docs/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, ctx, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			database, err := db.New(ctx, cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			sessionManager := session.NewManager(database, cfg.DB.Driver, cfg.SessionLifetime, !cfg.InsecureCookies)
			prefs := store.NewPreferenceStore(database)

			client := &http.Client{Timeout: cfg.Tester.Timeout}
			catalogStore := catalog.NewStore(cfg.Catalog.Source, client, logger)
			// A failed first load is shown in the UI with a retry button.
			_ = catalogStore.Reload(ctx)

			router := handler.NewRouter(handler.Deps{
				Logger:         logger,
				SessionManager: sessionManager,
				Catalog:        catalogStore,
				Preferences:    prefs,
				BaseURL:        cfg.API.BaseURL,
				SortLocale:     cfg.SortLocale,
				TesterClient:   client,
				CORSOrigins:    cfg.API.CORSOrigins,
			})

			eg, egctx := errgroup.WithContext(ctx)
			srv := &http.Server{
				Addr:    cfg.HTTP.Addr,
				Handler: router,
				BaseContext: func(_ net.Listener) context.Context {
					return egctx
				},
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      cfg.Tester.Timeout + 15*time.Second,
				IdleTimeout:       60 * time.Second,
			}

			if cfg.Catalog.Watch {
				eg.Go(func() error {
					return catalogStore.Watch(egctx)
				})
			}

			eg.Go(func() error {
				logger.Info("listening", "addr", cfg.HTTP.Addr, "catalog", cfg.Catalog.Source)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			})

			eg.Go(func() error {
				<-egctx.Done()
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			return eg.Wait()
		},
	}
}
