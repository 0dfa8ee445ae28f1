// cmd/nba-query/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ghadfield32/nba-query-engine/internal/common/config"
	"github.com/ghadfield32/nba-query-engine/internal/common/database"
	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/common/observability"
	"github.com/ghadfield32/nba-query-engine/internal/pipeline"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
	"github.com/ghadfield32/nba-query-engine/internal/provider/cache"
	pgprovider "github.com/ghadfield32/nba-query-engine/internal/provider/postgres"
	"github.com/ghadfield32/nba-query-engine/internal/provider/quota"
	"github.com/ghadfield32/nba-query-engine/internal/provider/statsapi"
	"github.com/ghadfield32/nba-query-engine/internal/resolve"
	"github.com/ghadfield32/nba-query-engine/internal/server"
	"github.com/ghadfield32/nba-query-engine/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	serve := flag.Bool("serve", false, "run the HTTP server instead of answering one question")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting nba-query-engine",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("nba-query-engine")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Template registry ---
	var reg *registry.Registry
	if cfg.Registry.Path != "" {
		reg, err = registry.Load(cfg.Registry.Path)
	} else {
		reg, err = registry.Builtin()
	}
	if err != nil {
		zapLog.Fatal("registry load failed", zap.Error(err))
	}
	zapLog.Info("Template registry loaded", zap.String("version", reg.Version()), zap.Int("templates", len(reg.Templates())))

	// --- Data provider: warehoused postgres when configured, HTTP stats api otherwise ---
	var base provider.Invoker
	if cfg.Database.Postgres.Host != "" {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")
		base = pgprovider.NewProvider(pg.DB, log)
	} else {
		base = statsapi.NewClient(&statsapi.Config{
			BaseURL:    cfg.StatsAPI.BaseURL,
			APIKey:     cfg.StatsAPI.APIKey,
			Timeout:    config.GetDuration(cfg.StatsAPI.Timeout),
			MaxRetries: cfg.StatsAPI.MaxRetries,
		}, log)
		zapLog.Info("Stats API client initialized", zap.String("baseUrl", cfg.StatsAPI.BaseURL))
	}

	// --- Provider middleware: cache outermost so hits skip the quota ---
	var middlewares []provider.Middleware
	if cfg.Cache.Enabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")
		middlewares = append(middlewares, cache.Wrap(redis.Client, &cache.Config{
			TTL: time.Duration(cfg.Cache.TTL) * time.Second,
		}, log))
	}
	quotaCfg := &quota.Config{
		RequestsPerSecond: cfg.Quota.RequestsPerSecond,
		Burst:             cfg.Quota.Burst,
		BreakerMaxFails:   cfg.Quota.BreakerMaxFails,
		BreakerCooldown:   time.Duration(cfg.Quota.BreakerCooldown) * time.Second,
	}
	middlewares = append(middlewares, quota.WrapLimiter(quotaCfg, log), quota.WrapBreaker(quotaCfg, log))
	inv := provider.Chain(base, middlewares...)

	// --- Entity resolver: lexicon first, elasticsearch fuzzy fallback ---
	var resolver resolve.Resolver = resolve.NewLexiconResolver()
	if len(cfg.Database.Elasticsearch.Addresses) > 0 {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 5, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
		resolver = resolve.NewChainResolver(
			resolver,
			resolve.NewElasticResolver(esClient.Client, cfg.Database.Elasticsearch.PlayerIdx, cfg.Database.Elasticsearch.TeamIdx, log),
		)
	}

	pipe := pipeline.New(reg, resolver, inv, cfg.Pipeline, log)

	if *serve {
		runServer(ctx, pipe, cfg, zapLog, log)
		return
	}

	if question := strings.TrimSpace(strings.Join(flag.Args(), " ")); question != "" {
		runOnce(ctx, pipe, obs, question)
		return
	}

	runREPL(ctx, pipe, obs)
}

func runOnce(ctx context.Context, pipe *pipeline.Pipeline, obs *observability.Observability, question string) {
	started := time.Now()
	answer := pipe.Answer(ctx, question)
	obs.RecordQueryDuration(ctx, time.Since(started), status(answer.Partial))

	fmt.Println(answer.Text)
	fmt.Printf("\n(confidence %.2f, %dms", answer.Confidence, answer.TookMs)
	if answer.Partial {
		fmt.Print(", partial data")
	}
	fmt.Println(")")
}

func runREPL(ctx context.Context, pipe *pipeline.Pipeline, obs *observability.Observability) {
	fmt.Println("nba-query interactive mode. Ask a question, or \"quit\" to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		question := strings.TrimSpace(scanner.Text())
		switch question {
		case "":
			continue
		case "quit", "exit":
			return
		}
		runOnce(ctx, pipe, obs, question)
		fmt.Println()
	}
}

func runServer(ctx context.Context, pipe *pipeline.Pipeline, cfg *config.Config, zapLog *zap.Logger, log logger.Logger) {
	srv := server.New(pipe, cfg.Server, log)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Metrics endpoint (with pprof via the default mux).
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Metrics server listening", zap.String("address", cfg.Server.MetricsAddress))
		if err := http.ListenAndServe(cfg.Server.MetricsAddress, nil); err != nil {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("shutdown incomplete", zap.Error(err))
	}
	zapLog.Info("Stopped")
}

func status(partial bool) string {
	if partial {
		return "partial"
	}
	return "complete"
}
