package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parking-service/internal/auth"
	"parking-service/internal/config"
	"parking-service/internal/db"
	httpapi "parking-service/internal/http"
	"parking-service/internal/logging"
	"parking-service/internal/repository"
	"parking-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("info")
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logging.New(cfg.Log.Level)

	gdb, err := db.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := db.RunMigrations(gdb, cfg.Bootstrap.AdminEmail); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	users := repository.NewUserRepository(gdb)
	vehicles := repository.NewVehicleRepository(gdb)
	sessions := repository.NewSessionRepository(gdb)
	violations := repository.NewViolationRepository(gdb)

	identity := service.NewIdentityService(users, log)
	vehicleService := service.NewVehicleService(vehicles, log)
	sessionService := service.NewSessionService(sessions, vehicles, log)
	violationService := service.NewViolationService(violations, vehicles, log)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))
	engine.Use(cors.Default())

	handler := httpapi.NewHandler(vehicleService, sessionService, violationService, tokens, cfg.Auth.DevTokens, log)
	handler.Register(engine, httpapi.AuthMiddleware(tokens, identity, log))

	addr := net.JoinHostPort(cfg.Server.Address, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
