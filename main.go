package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vidvault/backend/internal/config"
	"github.com/vidvault/backend/internal/db"
	"github.com/vidvault/backend/internal/handler"
	"github.com/vidvault/backend/internal/obs"
	"github.com/vidvault/backend/internal/service"
)

// @title VidVault API
// @version 1.0
// @description Authenticated video access API with revocable bearer tokens.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	store := &db.Postgres{Pool: pool}
	if err := store.EnsureUserSchema(ctx); err != nil {
		log.Fatalf("user schema: %v", err)
	}
	if err := store.EnsureRevocationSchema(ctx); err != nil {
		log.Fatalf("revocation schema: %v", err)
	}
	if err := store.EnsureVideoSchema(ctx); err != nil {
		log.Fatalf("video schema: %v", err)
	}

	authService, err := service.NewAuthService(store, cfg.Auth)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}
	authService.StartRevocationSweeper(ctx)

	videoService := service.NewVideoService(store)
	if err := videoService.Seed(ctx); err != nil {
		log.Fatalf("video seed: %v", err)
	}

	authHandler := handler.NewAuthHandler(authService)
	videoHandler := handler.NewVideoHandler(videoService)

	signupLimiter := handler.NewRateLimiter(mustRate(cfg.RateLimit.SignupPerHour, "SIGNUP_RATE_PER_HOUR"))
	loginLimiter := handler.NewRateLimiter(mustRate(cfg.RateLimit.LoginPerHour, "LOGIN_RATE_PER_HOUR"))
	defer signupLimiter.Stop()
	defer loginLimiter.Stop()

	obs.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.RequestLogger())
	router.Use(obs.Instrument())
	router.Use(handler.CORSMiddleware(strings.Split(cfg.HTTP.CORSOrigins, ",")))

	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(obs.Handler()))
	router.GET("/openapi.json", handler.OpenAPIDoc)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", signupLimiter.Middleware("signup"), authHandler.Signup)
		auth.POST("/login", loginLimiter.Middleware("login"), authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", handler.AuthMiddleware(authService), authHandler.Me)
	}

	protected := router.Group("/", handler.AuthMiddleware(authService))
	{
		protected.GET("/dashboard", videoHandler.Dashboard)
		protected.GET("/video/:id/play", videoHandler.Play)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func mustRate(value, name string) int {
	perHour, err := strconv.Atoi(value)
	if err != nil || perHour <= 0 {
		log.Fatalf("invalid %s: %q", name, value)
	}
	return perHour
}
