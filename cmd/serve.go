package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"prospector/internal/api"
	"prospector/internal/config"
	"prospector/internal/extract"
	"prospector/internal/pipeline"
	"prospector/internal/runner"
	"prospector/pkg/dedup"
	"prospector/pkg/logger"
	"prospector/pkg/metrics"
	"prospector/pkg/search"
	"prospector/pkg/search/duckduckgo"
	"prospector/pkg/search/places"
	"prospector/pkg/storage"
	"prospector/pkg/uploader/brevo"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, run *runner.Runner, cfg *config.Config) func(ctx context.Context) {
	server := api.NewServer(run, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// setupDedup picks the dedup store implementation: Redis when configured,
// otherwise the process-lifetime in-memory set.
func setupDedup(ctx context.Context, cfg *config.Config) dedup.Store {
	if cfg.Redis.Addr == "" {
		return dedup.NewMemory()
	}

	logger.Info(ctx, "using redis dedup store", zap.String("addr", cfg.Redis.Addr))

	return dedup.NewRedis(redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}))
}

// setupSearcher picks the search provider selected in the configuration.
func setupSearcher(cfg *config.Config) search.Provider {
	httpClient := &http.Client{Timeout: cfg.Scraper.FetchTimeout}

	if cfg.Search.Provider == config.ProviderPlaces {
		return places.New(httpClient, places.Options{
			BaseURL:    cfg.Search.PlacesBaseURL,
			Key:        cfg.Search.PlacesAPIKey,
			MaxResults: cfg.Search.MaxResults,
		})
	}

	return duckduckgo.New(httpClient, duckduckgo.Options{
		UserAgent:  cfg.Scraper.UserAgent,
		MaxResults: cfg.Search.MaxResults,
	})
}

// warmDedup seeds the dedup store with every email already archived, so
// restarts do not re-upload known contacts.
func warmDedup(ctx context.Context, store dedup.Store, archive storage.Storage) {
	emails, err := archive.LeadEmails(ctx)
	if err != nil {
		logger.Warn(ctx, "could not warm dedup store from archive", zap.Error(err))

		return
	}

	for _, email := range emails {
		if err := store.Mark(ctx, email); err != nil {
			logger.Warn(ctx, "could not warm dedup store entry", zap.Error(err))

			return
		}
	}

	logger.Info(ctx, "warmed dedup store from archive", zap.Int("emails", len(emails)))
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the dashboard server and the scraping pipeline",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			m := metrics.New(prometheus.DefaultRegisterer)
			dedupStore := setupDedup(ctx, cfg)

			// the lead archive is optional; without it all state is
			// process-lifetime only
			var archive storage.Storage
			if cfg.Database.Host != "" {
				pgsql, closeStrg := getPostgres(ctx, cfg)
				defer closeStrg()
				archive = pgsql

				warmDedup(ctx, dedupStore, archive)
			}

			uploadClient := brevo.New(&http.Client{Timeout: cfg.Scraper.FetchTimeout}, brevo.Options{
				BaseURL: cfg.Brevo.BaseURL,
				APIKey:  cfg.Brevo.APIKey,
				ListID:  cfg.Brevo.ListID,
			})

			pl := pipeline.New(
				extract.New(extract.NewOptions(cfg)),
				uploadClient,
				dedupStore,
				archive,
				m,
				pipeline.NewOptions(cfg),
			)
			run := runner.New(setupSearcher(cfg), pl, m, runner.NewOptions(cfg))

			stopWebserver := setupServer(ctx, run, cfg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
