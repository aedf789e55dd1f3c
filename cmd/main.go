package main

import (
	"context"
	"course-platform-auth/config"
	_ "course-platform-auth/docs"
	"course-platform-auth/internal/handler"
	"course-platform-auth/internal/ports"
	"course-platform-auth/internal/repository"
	"course-platform-auth/internal/security"
	"course-platform-auth/internal/service"
	"course-platform-auth/internal/util"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Course platform auth
// @version 1.0
// @description Сессии платформы курсов: вход, регистрация, обновление токенов, csrf и администрирование пользователей

// @host localhost:8080
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	util.SetLogger(util.NewLogger(cfg.IsProduction()))

	secret, err := config.ResolveSigningSecret(cfg.Environment, cfg.JWT.SecretKey)
	if err != nil {
		log.Fatalf("Ошибка секрета подписи: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			util.Logger().Error("ошибка при закрытии БД", "error", err)
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Не удалось применить миграции: %v", err)
	}

	healthChecks := map[string]handler.Pinger{"postgres": db}

	var denylist ports.TokenDenylist
	if cfg.RedisConfig.Enabled {
		redisClient, err := config.SetupRedis(&cfg.RedisConfig)
		if err != nil {
			log.Fatalf("Ошибка подключения к Redis: %v", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				util.Logger().Error("ошибка при закрытии Redis", "error", err)
			}
		}()

		denylist = repository.NewTokenDenylistRepository(redisClient)
		healthChecks["redis"] = handler.PingerFunc(func(ctx context.Context) error {
			return redisClient.Client.Ping(ctx).Err()
		})
	}

	codec, err := security.NewTokenCodec(secret, &cfg.JWT)
	if err != nil {
		log.Fatalf("Ошибка настройки JWT: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	rateLimitRepo := repository.NewRateLimitRepository(db)

	authService := service.NewAuthenticationService(userRepo, codec, refreshRepo, denylist)
	userService := service.NewUserService(userRepo, refreshRepo)
	rateLimiter := service.NewRateLimiter(rateLimitRepo)

	if err := userService.EnsureAdmin(ctx, &cfg.Admin); err != nil {
		log.Fatalf("Не удалось подготовить администратора: %v", err)
	}

	cleanupInterval, _ := time.ParseDuration(cfg.Cleanup.Interval) // проверено в config.Validate
	janitor := service.NewJanitor(refreshRepo, rateLimitRepo, cleanupInterval)
	go janitor.Run(ctx)

	loginWindow, _ := cfg.RateLimit.Login.WindowDuration()
	registerWindow, _ := cfg.RateLimit.Register.WindowDuration()

	csrfGuard := security.NewCSRFGuard(cfg.IsProduction())
	cookies := security.NewCookieManager(cfg.IsProduction(), codec.AccessTTL(), codec.RefreshTTL())
	sessions := security.NewSessionResolver(codec, denylist)

	authHandler := handler.NewAuthenticationHandler(authService, rateLimiter, csrfGuard, cookies, handler.AuthenticationHandlerConfig{
		Login:       handler.RateLimitPolicy{Limit: cfg.RateLimit.Login.Limit, Window: loginWindow},
		Register:    handler.RateLimitPolicy{Limit: cfg.RateLimit.Register.Limit, Window: registerWindow},
		Development: cfg.IsDevelopment(),
	})
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(healthChecks)

	srv, router := config.SetupServer(cfg.ServerAddr)

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/healthz", healthHandler.Health)

	setupAuthRoutes(router, authHandler, sessions)
	setupAdminRoutes(router, userHandler, sessions, csrfGuard)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, sessions *security.SessionResolver) {
	r.Route("/auth", func(r chi.Router) {
		r.Get("/csrf-token", h.CsrfToken)
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/refresh", h.RefreshToken)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(sessions.Authenticate)
			r.Get("/me", h.GetCurrentUser)
		})
	})
}

func setupAdminRoutes(r chi.Router, h *handler.UserHandler, sessions *security.SessionResolver, csrfGuard *security.CSRFGuard) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(sessions.RequireAdminMiddleware)

		r.Get("/users", h.ListUsers)

		r.Group(func(r chi.Router) {
			r.Use(csrfGuard.Middleware)
			r.Patch("/users/{id}", h.UpdateUser)
			r.Delete("/users/{id}", h.DeleteUser)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		util.Logger().Info("сервер запущен", "addr", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		util.Logger().Info("получен сигнал остановки работы сервера", "signal", sig.String())
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		util.Logger().Error("ошибка при остановке сервера", "error", err)
	} else {
		util.Logger().Info("сервер успешно остановлен")
	}
}
