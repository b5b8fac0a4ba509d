package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/tourist-safety-service/internal/auth"
	"github.com/teresa-solution/tourist-safety-service/internal/monitoring"
	"github.com/teresa-solution/tourist-safety-service/internal/notify"
	"github.com/teresa-solution/tourist-safety-service/internal/service"
	"github.com/teresa-solution/tourist-safety-service/internal/store"
	transporthttp "github.com/teresa-solution/tourist-safety-service/internal/transport/http"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		port      = flag.Int("port", 8080, "Port for the API server")
		sidePort  = flag.Int("side-port", 8081, "Port for health checks and metrics")
		dbHost    = flag.String("db-host", "localhost", "Database host")
		dbPort    = flag.Int("db-port", 5432, "Database port")
		dbUser    = flag.String("db-user", "admin", "Database user")
		dbPass    = flag.String("db-pass", "securepassword", "Database password")
		dbName    = flag.String("db-name", "tourist_safety", "Database name")
		redisAddr = flag.String("redis-addr", "localhost:6379", "Redis address (empty disables caching)")
	)
	flag.Parse()

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		*dbHost, *dbPort, *dbUser, *dbPass, *dbName)

	var redisClient store.RedisClient
	if *redisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: *redisAddr})
	}

	repo, err := store.NewRepository(dsn, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer repo.Close()

	monitoring.InitMetrics()

	identity := service.NewIdentityService(repo)
	ingestion := service.NewIngestionService(repo)
	dispatcher := service.NewDispatchService(repo, notify.LogNotifier{})
	actions := service.NewActionService(identity, ingestion, dispatcher)
	lifecycle := service.NewLifecycleService(repo)
	query := service.NewQueryService(repo)
	recommend := service.NewRecommendationService(repo)

	// Dev tokens only; production deployments plug a real identity provider
	// into the Verifier seam.
	verifier := auth.NewStaticVerifier(tokensFromEnv())

	server := transporthttp.NewServer(actions, lifecycle, query, recommend, verifier)

	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: server.Router(),
	}

	log.Info().Msgf("Starting Tourist Safety Service on port %d", *port)

	go func() {
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start API server")
		}
	}()

	go func() {
		sideMux := http.NewServeMux()
		sideMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		sideMux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			if err := repo.Ready(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})
		sideMux.Handle("/metrics", promhttp.Handler())

		sideServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", *sidePort),
			Handler: sideMux,
		}

		log.Info().Msgf("HTTP server for health checks and metrics started on port %d", *sidePort)
		if err := sideServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("API server shutdown error")
	}
	log.Info().Msg("Server exiting")
}

// tokensFromEnv parses SAFETY_DEV_TOKENS ("token=principal,token=principal").
func tokensFromEnv() map[string]string {
	tokens := map[string]string{}
	for _, pair := range strings.Split(os.Getenv("SAFETY_DEV_TOKENS"), ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && kv[0] != "" {
			tokens[kv[0]] = kv[1]
		}
	}
	return tokens
}
