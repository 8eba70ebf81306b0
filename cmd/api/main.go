// @title                       Realty Listing API
// @version                     1.0
// @description                 Real-estate listings with role-scoped access for buyers, realtors and admins.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/realtyhub/listing-api/docs"
	"github.com/realtyhub/listing-api/internal/api"
	"github.com/realtyhub/listing-api/internal/api/middleware"
	"github.com/realtyhub/listing-api/internal/core/ports"
	"github.com/realtyhub/listing-api/internal/core/service"
	"github.com/realtyhub/listing-api/internal/infrastructure/config"
	mongodb "github.com/realtyhub/listing-api/internal/infrastructure/db/mongo"
	"github.com/realtyhub/listing-api/internal/infrastructure/db/postgres"
	redisdb "github.com/realtyhub/listing-api/internal/infrastructure/db/redis"
	"github.com/realtyhub/listing-api/internal/infrastructure/http/handlers"
	"github.com/realtyhub/listing-api/internal/infrastructure/queue"
	"github.com/realtyhub/listing-api/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx := context.Background()

	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg := config.MustLoad(ctx)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "listing-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	homeRepo := mongodb.NewHomeRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	indexers := []mongodb.Indexer{homeRepo, messageRepo, auditRepo}

	checks := map[string]handlers.PingFunc{
		"mongo": handlers.MongoPing(db),
		"redis": handlers.RedisPing(rdb),
	}

	var users ports.UserRepository
	switch cfg.UserStore {
	case "postgres":
		pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
		if err != nil {
			return err
		}
		defer pool.Close()
		pgUsers := postgres.NewUserRepository(pool)
		if err := pgUsers.EnsureSchema(ctx); err != nil {
			return err
		}
		users = pgUsers
		checks["postgres"] = handlers.PostgresPing(pool)
	default:
		mongoUsers := mongodb.NewUserRepository(db)
		indexers = append(indexers, mongoUsers)
		users = mongoUsers
	}
	log.Info().Str("user_store", cfg.UserStore).Msg("credential store ready")

	if err := mongodb.EnsureIndexes(ctx, indexers...); err != nil {
		return err
	}

	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret: []byte(cfg.Auth.JWTSecret),
		TTL:    cfg.Auth.JWTTTL,
		Issuer: cfg.Auth.JWTIssuer,
	})
	if err != nil {
		return err
	}

	authSvc := service.NewAuthService(users, tokens, cfg.Auth.ProductKeySecret,
		logger.Component("auth"),
		service.WithLoginLimiter(redisdb.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)),
	)
	homeSvc := service.NewHomeService(homeRepo, messageRepo, users, logger.Component("homes"))

	source, err := middleware.ParseRoleSource(cfg.RoleSource)
	if err != nil {
		return err
	}

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	audit := queue.NewAuditDispatcher(cfg.Audit.Workers, auditRepo, logger.Component("audit"))
	audit.Start(workerCtx)

	guard := middleware.NewGuard(tokens, users, source, logger.Component("guard"), middleware.WithAuditSink(audit))
	log.Info().Str("role_source", source.String()).Msg("authorization guard ready")

	e := api.NewRouter(api.Deps{
		Log:          log,
		Guard:        guard,
		AuthService:  authSvc,
		HomeService:  homeSvc,
		HealthChecks: checks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	audit.Stop()
	log.Info().Msg("server exited")
	return nil
}
