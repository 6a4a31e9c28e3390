package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"sportspulse/internal/config"
	"sportspulse/internal/publisher"
	"sportspulse/internal/registry"
	"sportspulse/internal/scheduler"
	"sportspulse/internal/service"
	"sportspulse/internal/storage/memory"
	"sportspulse/internal/storage/postgres"
	"sportspulse/internal/web"
	"sportspulse/migrations"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	var (
		prefStore       service.PreferenceStore = memory.NewPreferenceStore()
		subscriberStore service.SubscriberStore = memory.NewSubscriberStore()
	)

	if cfg.Database.Enabled {
		db, err := sqlx.Connect("postgres", cfg.Database.DSN())
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}

		if err := migrations.Run(db.DB); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("connected to database", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)

		prefStore = postgres.NewPreferenceStore(db)
		subscriberStore = postgres.NewSubscriberStore(db)
	} else {
		logger.Info("database disabled, using in-memory stores")
	}

	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:               cfg.RabbitMQ.URL,
			Exchange:          cfg.RabbitMQ.Exchange,
			MatchRoutingKey:   cfg.RabbitMQ.MatchRoutingKey,
			ArticleRoutingKey: cfg.RabbitMQ.ArticleRoutingKey,
			QueueName:         cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	seed := cfg.Ticker.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	matches := registry.NewMatchRegistry(rand.New(rand.NewPCG(seed, seed)), registry.DefaultMatches())
	articles := registry.NewArticleRegistry(registry.DefaultArticles(time.Now()))

	hub := web.NewHub(logger)

	// The tick draw gets its own source; *rand.Rand is not safe to share
	// between the ticker and request handlers.
	tickRand := rand.New(rand.NewPCG(seed, seed+1))
	liveScores := service.NewLiveScoreService(matches, pub, hub, tickRand, cfg.Ticker.UpdateProbability, logger)
	news := service.NewNewsService(articles, pub, hub, logger)
	preferences := service.NewPreferenceService(prefStore, logger)
	newsletter := service.NewNewsletterService(subscriberStore, logger)

	server := web.NewServer(cfg.HTTP, web.Deps{
		Matches:     matches,
		Articles:    articles,
		LiveScores:  liveScores,
		News:        news,
		Preferences: preferences,
		Newsletter:  newsletter,
		Hub:         hub,
	}, logger)

	sched := scheduler.NewScheduler(liveScores, cfg.Ticker.InitialDelay, cfg.Ticker.Interval, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting sportspulse",
		"addr", cfg.HTTP.Addr,
		"database", cfg.Database.Enabled,
		"rabbitmq", cfg.RabbitMQ.Enabled,
		"tick_interval", cfg.Ticker.Interval,
		"update_probability", cfg.Ticker.UpdateProbability,
		"seed", seed,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return sched.Start(gctx)
	})
	g.Go(func() error {
		return server.Start(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("sportspulse stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("sportspulse stopped")
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
