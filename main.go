package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	mongo_client "estatebackend/clients/mongo"
	rabbitmq_client "estatebackend/clients/rabbitmq"
	"estatebackend/config"
	"estatebackend/controllers"
	"estatebackend/middleware"
	"estatebackend/repository"
	"estatebackend/routes"
	"estatebackend/services"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// GracefulShutdown handles graceful shutdown of the server
func GracefulShutdown(server *http.Server) {
	stopper := make(chan os.Signal, 1)
	signal.Notify(stopper, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-stopper
		zap.L().Info("Shutting down gracefully...")

		rabbitmq_client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			zap.L().Error("Server shutdown failed", zap.Error(err))
			return
		}
		zap.L().Info("Server exited gracefully")
	}()
}

func setupSentry() {
	tracesSampleRate, err := strconv.ParseFloat(os.Getenv("SENTRY_SAMPLE_RATE"), 64)
	if err != nil {
		tracesSampleRate = 1.0
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("SENTRY_DSN"),
		Environment:      os.Getenv("ENVIRONMENT"),
		EnableTracing:    true,
		TracesSampleRate: tracesSampleRate, // 1.0 by default if ENV SENTRY_SAMPLE_RATE not set
	}); err != nil {
		zap.L().Error("Sentry initialization failed: ", zap.Any("error", err.Error()))
	}
}

// negotiationRepository picks mongo when MONGO_URI is set, otherwise an
// in-memory store so the engine still answers.
func negotiationRepository() repository.NegotiationRepository {
	if os.Getenv("MONGO_URI") == "" {
		zap.L().Warn("MONGO_URI not set, negotiation records are kept in memory")
		return repository.NewNegotiationRepositoryMemory()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := mongo_client.Connect(ctx); err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
	}
	return repository.NewNegotiationRepositoryMongo(mongo_client.NegotiationCollection())
}

func eventPublisher() repository.EventPublisher {
	if err := rabbitmq_client.Connect(); err != nil {
		zap.L().Warn("RabbitMQ unavailable, negotiation events will not be published", zap.Error(err))
		return repository.NoopPublisher{}
	}
	return repository.AMQPPublisher{}
}

func calculatorCache() repository.CacheRepository {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		zap.L().Warn("REDIS_ADDR not set, calculator responses are cached in process memory")
		return repository.NewMockCache()
	}
	return repository.NewRedisCache(addr)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	logConfig := zap.NewProductionConfig()
	logConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	logger, _ := logConfig.Build()
	zap.ReplaceGlobals(logger)

	setupSentry()

	policy, err := config.Load(os.Getenv("POLICY_FILE"))
	if err != nil {
		log.Fatalf("Error loading policy tables: %v", err)
	}

	eligibilityService := services.NewEligibilityService(policy.Lending, policy.Banks)
	budgetService := services.NewBudgetService(policy.Budget)
	roiService := services.NewROIService(policy.ROI)
	negotiationService := services.NewNegotiationService(policy.Negotiation, negotiationRepository(), eventPublisher())

	calculatorController := controllers.NewCalculatorController(eligibilityService, budgetService, roiService, calculatorCache())
	negotiationController := controllers.NewNegotiationController(negotiationService)
	comparableController := controllers.NewComparableController(services.ComparableService)

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(sentrygin.New(sentrygin.Options{}))
	router.Use(middleware.CORSMiddleware())

	routes.Routes(router, calculatorController, negotiationController, comparableController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	GracefulShutdown(server)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Error starting server: %v", err)
	}
}
