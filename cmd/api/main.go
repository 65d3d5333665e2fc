package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "github.com/SudoBobo/RestaurantAPIExercise/docs"
	"github.com/SudoBobo/RestaurantAPIExercise/pkg/api"
	"github.com/SudoBobo/RestaurantAPIExercise/pkg/logger"
	"github.com/SudoBobo/RestaurantAPIExercise/pkg/order/memory"
	"github.com/SudoBobo/RestaurantAPIExercise/pkg/otel"
)

const serviceName = "restaurant-api"

var (
	log    *logger.Logger
	tracer trace.Tracer
)

type config struct {
	HTTPAddr        string
	LogLevel        string
	OtelHost        string
	OtelProbability float64
	ShutdownTimeout time.Duration
}

// @title Restaurant API
// @version 1.0
// @description Order tracking for restaurant tables.
// @host localhost:8080
// @BasePath /
func main() {
	godotenv.Load()
	cfg := loadConfig()

	log = logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel), serviceName, otel.GetTraceID)

	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: serviceName,
		Host:        cfg.OtelHost,
		Probability: cfg.OtelProbability,
	})
	if err != nil {
		log.Error(context.Background(), "init tracing", "error", err)
		os.Exit(1)
	}
	defer shutdown(context.Background())
	tracer = tp.Tracer(serviceName)

	r := api.New(memory.New(), log).Router()
	r.Use(traceMiddleware)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info(context.Background(), "http server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(context.Background(), "http server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info(context.Background(), "shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(context.Background(), "shutdown", "error", err)
	}
}

func loadConfig() config {
	cfg := config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		OtelHost:        getEnv("OTEL_HOST", ""),
		OtelProbability: 1,
		ShutdownTimeout: 10 * time.Second,
	}
	if v := os.Getenv("OTEL_PROBABILITY"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.OtelProbability = p
		}
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShutdownTimeout = d
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
