package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prevently/db"
	"prevently/internal/config"
	"prevently/internal/handler"
	"prevently/internal/prompt"
	"prevently/internal/repository"
	"prevently/internal/service"
	"prevently/internal/session"
	"prevently/pkg/identity"
	"prevently/pkg/llm"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	ctx := context.Background()

	store, err := db.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("error connecting to store: %v", err)
	}
	defer store.Close()

	slog.Info("document store connected", "backend", cfg.Store.Backend)

	var revoker session.Revoker = session.NopRevoker{}
	if cfg.Redis.URL != "" {
		rdb, err := db.ConnectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer rdb.Close()
		revoker = session.NewRedisRevoker(rdb)
	} else {
		slog.Warn("REDIS_URL is not set, logout will not revoke refresh tokens")
	}

	router := &llm.Router{}
	if cfg.LLM.AnthropicAPIKey != "" {
		router.Anthropic = llm.NewAnthropicClient(cfg.LLM.AnthropicAPIKey)
	}
	if cfg.LLM.OpenAIAPIKey != "" {
		router.OpenAI = llm.NewOpenAIClient(cfg.LLM.OpenAIAPIKey)
	}
	if router.Anthropic == nil && router.OpenAI == nil {
		slog.Warn("no LLM API key configured, chat requests will fail")
	}

	systemPrompt, err := prompt.Load(cfg.LLM.SystemPromptPath)
	if err != nil {
		log.Fatalf("error loading system prompt: %v", err)
	}

	if cfg.Firebase.APIKey == "" {
		slog.Warn("FIREBASE_API_KEY is not set, auth endpoints will fail")
	}

	articleRepo := repository.NewArticleRepository(store)
	domainRepo := repository.NewDomainRepository(store)
	userRepo := repository.NewUserRepository(store)
	imageRepo := repository.NewImageRepository(store)

	newsService := service.NewNewsService(articleRepo)
	analyticsService := service.NewAnalyticsService(articleRepo, cfg.Location())
	chatService := service.NewChatService(
		service.NewChatContext(newsService, analyticsService),
		router,
		systemPrompt,
	)

	gin.SetMode(gin.ReleaseMode)

	r := handler.NewRouter(handler.Handlers{
		News:      handler.NewNewsHandler(newsService),
		Analytics: handler.NewAnalyticsHandler(analyticsService),
		Chat:      handler.NewChatHandler(chatService),
		Domains:   handler.NewDomainHandler(domainRepo),
		Auth:      handler.NewAuthHandler(identity.NewClient(cfg.Firebase.APIKey), userRepo, revoker, cfg.Firebase.GoogleRedirectURI),
		Images:    handler.NewImageHandler(imageRepo, userRepo),
	}, cfg.Server.FrontendURL)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("api listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
}
