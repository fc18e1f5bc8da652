// @title						Feedback API
// @version					1.0
// @description				Manager and peer feedback tracking.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/feedbackhub/feedback-api/internal/api"
	"github.com/feedbackhub/feedback-api/internal/core/service"
	"github.com/feedbackhub/feedback-api/internal/infrastructure/config"
	"github.com/feedbackhub/feedback-api/internal/infrastructure/db/mongo"
	"github.com/feedbackhub/feedback-api/internal/infrastructure/db/redis"
	"github.com/feedbackhub/feedback-api/internal/infrastructure/http/handlers"
	"github.com/feedbackhub/feedback-api/internal/infrastructure/mail"
	"github.com/feedbackhub/feedback-api/internal/infrastructure/security"
	"github.com/feedbackhub/feedback-api/pkg/logger"
)

const serviceName = "feedback-api"

func main() {
	if err := run(); err != nil {
		// Init is a no-op when run already built the logger.
		log := logger.Init(logger.Options{Service: serviceName})
		log.Fatal().Err(err).Msg("feedback-api stopped")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := security.ValidateSecret(cfg.JWTSecret); err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	users := mongo.NewUserRepository(db)
	feedback := mongo.NewFeedbackRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := feedback.EnsureIndexes(ctx); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	gateway := mail.NewGateway(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		LoginURL: cfg.SMTP.LoginURL,
	}, logger.Component("mail"))
	if !gateway.Configured() {
		log.Warn().Msg("SMTP credentials missing, feedback requests will fail")
	}

	authService := service.NewAuthService(
		users,
		security.NewBcryptHasher(cfg.BcryptCost),
		security.NewJWTService(cfg.JWTSecret, cfg.JWTTTL),
		logger.Component("auth"),
	)
	directoryService := service.NewDirectoryService(
		users,
		gateway,
		redis.NewRequestThrottle(rdb),
		cfg.FeedbackRequestCooldown,
		logger.Component("directory"),
	)
	feedbackService := service.NewFeedbackService(feedback, users, logger.Component("feedback"))

	e := api.NewRouter(api.RouterConfig{
		Auth:      authService,
		Directory: directoryService,
		Feedback:  feedbackService,
		Readiness: handlers.NewReadinessHandler(map[string]handlers.Check{
			"mongo": handlers.MongoCheck(db),
			"redis": handlers.RedisCheck(rdb),
		}),
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return shutdown(e.Shutdown, cfg, log)
}

func shutdown(fn func(context.Context) error, cfg *config.Config, log zerolog.Logger) error {
	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		return err
	}
	log.Info().Msg("http server stopped")
	return nil
}
