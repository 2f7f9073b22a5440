package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/cache"
	"github.com/dcode-github/hostel_listing_system/backend/config"
	"github.com/dcode-github/hostel_listing_system/backend/repository"
	"github.com/dcode-github/hostel_listing_system/backend/routes"
	"github.com/dcode-github/hostel_listing_system/backend/utils"
	"github.com/dcode-github/hostel_listing_system/backend/viewmode"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(cfg.Log.Level, cfg.Log.Format, "hostel-api")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if err := serve(cmd.Context(), cfg, logger); err != nil {
				logger.Error("server stopped with error", zap.Error(err))
				return err
			}
			return nil
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := config.ConnectDB(ctx, cfg.Mongo.URI, logger)
	if err != nil {
		return err
	}
	defer config.CloseDBConnection(client, logger)

	colls := config.InitCollections(client, cfg.Mongo.Database)

	var hostels repository.HostelStore
	switch cfg.Source {
	case config.SourcePayload:
		hostels = repository.NewPayloadHostelStore(cfg.Payload.BaseURL, cfg.Payload.APIKey, logger)
	default:
		hostels = repository.NewMongoHostelStore(colls.Hostels)
	}
	logger.Info("hostel source selected", zap.String("source", cfg.Source))

	rdb, err := config.InitRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Warn("redis unavailable, serving hostels uncached", zap.Error(err))
	} else {
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("error closing redis connection", zap.Error(err))
			}
		}()
		hostels = repository.NewCachedHostelStore(hostels, cache.NewRedisKVStore(rdb, logger), cfg.Redis.CacheTTL, logger)
	}

	tenants := repository.NewMongoTenantStore(colls.Tenants)
	if err := tenants.EnsureIndexes(ctx); err != nil {
		logger.Warn("could not ensure tenant indexes", zap.Error(err))
	}

	db, err := viewmode.OpenSQLite(cfg.SQLite.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	handler := routes.Handler(routes.Deps{
		Hostels:  hostels,
		Tenants:  tenants,
		Payments: repository.NewMongoPaymentStore(colls.Payments),
		Admins:   repository.NewMongoAdminStore(colls.Admins),
		Prefs:    viewmode.NewPreferences(viewmode.NewSQLiteStore(db), logger),
		Tokens:   utils.NewJWTManager(cfg.Auth.JWTKey, cfg.Auth.TokenTTL, cfg.Auth.Issuer),
		PageSize: cfg.Listing.PageSize,
		Logger:   logger,
	})

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:           ":" + cfg.Server.Port,
		Handler:        corsOptions.Handler(handler),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server gracefully stopped")
	return nil
}
