package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mapleleafu/spritedex/auth"
	"github.com/mapleleafu/spritedex/handlers"
	"github.com/mapleleafu/spritedex/metrics"
	"github.com/mapleleafu/spritedex/services"
	"github.com/spf13/cobra"
)

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and socket gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*envFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			m := metrics.New()
			tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
			users := services.NewUsersService(db, cfg.BcryptCost, logger)
			pokemon := services.NewPokemonService(cfg.PokeAPIBaseURL, cfg.PokemonMaxID,
				services.WithHTTPClient(&http.Client{Timeout: cfg.PokeAPITimeout}),
				services.WithMetrics(m),
				services.WithLogger(logger),
			)
			hub := handlers.NewHub(m)
			origins := cfg.AllowedOrigins()

			router := handlers.NewRouter(&handlers.API{
				Users:          users,
				Auth:           services.NewAuthService(users, tokens, logger),
				Pokemon:        pokemon,
				Tokens:         tokens,
				DB:             db,
				Gateway:        handlers.NewGateway(pokemon, tokens, hub, origins, m, logger),
				Metrics:        m,
				Logger:         logger,
				SecureCookies:  cfg.IsProduction(),
				Development:    !cfg.IsProduction(),
				AllowedOrigins: origins,
			})

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening", "addr", srv.Addr, "env", cfg.Env, "db_driver", cfg.DBDriver)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			err = srv.Shutdown(shutdownCtx)
			hub.CloseAll()
			if err != nil {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}
}
