package main

import (
	"context"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"ai-trade-pro/internal/bot"
	"ai-trade-pro/internal/cache"
	"ai-trade-pro/internal/config"
	"ai-trade-pro/internal/db"
	"ai-trade-pro/internal/handler"
	"ai-trade-pro/internal/news"
	"ai-trade-pro/internal/notify"
	"ai-trade-pro/internal/prompt"
	"ai-trade-pro/internal/provider"
	"ai-trade-pro/internal/repository"
	"ai-trade-pro/internal/service"
	"ai-trade-pro/pkg/tracing"

	_ "ai-trade-pro/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initPostgresFunc       = db.InitPostgres
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newAnalysisLogRepoFunc = repository.NewAnalysisLogRepository
	newCredentialStoreFunc = cache.NewCredentialStore
	newNewsFetcherFunc     = news.NewFetcher
	newOpenRouterFunc      = provider.NewOpenRouter
	newWebhookFunc         = notify.NewWebhookNotifier
	startTelegramBotFunc   = bot.StartTelegramBot
	newAnalysisServiceFunc = service.NewAnalysisService
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           AI Trade Pro API
// @version         1.0
// @description     Chart analysis backend: prompt assembly, model proxy, signal extraction, and an analysis journal.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initPostgresFunc(ctx, cfg.DatabaseURL)
	initRedisFunc(ctx, cfg.RedisURL)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	var logRepo *repository.AnalysisLogRepository
	var logStore service.AnalysisLogStore
	var journal bot.JournalLister
	if db.Pool != nil {
		logRepo = newAnalysisLogRepoFunc(db.Pool, tracer)
		if err := logRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		logStore = logRepo
		journal = logRepo
	}

	credStore := newCredentialStoreFunc(cache.Client)
	newsFetcher := newNewsFetcherFunc()
	assembler := prompt.NewAssembler(newsFetcher)
	openRouter := newOpenRouterFunc(cfg.OpenRouterBaseURL)
	webhook := newWebhookFunc(cfg.SignalWebhookURL)

	alerts := startTelegramBotFunc(cfg.TelegramBotToken, journal)

	analysisService := newAnalysisServiceFunc(
		tracer, assembler, openRouter, logStore, credStore, webhook, alerts, cfg.DefaultModel,
	)

	h := newHandlerFunc(tracer, analysisService, newsFetcher, openRouter, credStore, cfg.AdminToken)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("ai-trade-pro"))
	r.Use(cors.Default())

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    httpAddr(cfg.Port),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

func httpAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
