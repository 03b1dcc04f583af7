package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Skotchmaster/aura_shop/internal/auth"
	"github.com/Skotchmaster/aura_shop/internal/cart"
	"github.com/Skotchmaster/aura_shop/internal/catalog"
	"github.com/Skotchmaster/aura_shop/internal/changefeed"
	"github.com/Skotchmaster/aura_shop/internal/httpserver"
	"github.com/Skotchmaster/aura_shop/internal/middleware/csrf"
	"github.com/Skotchmaster/aura_shop/internal/mykafka"
	"github.com/Skotchmaster/aura_shop/internal/notify"
	"github.com/Skotchmaster/aura_shop/internal/order"
	"github.com/Skotchmaster/aura_shop/internal/search"
	"github.com/Skotchmaster/aura_shop/pkg/config"
	"github.com/Skotchmaster/aura_shop/pkg/db"
	"github.com/Skotchmaster/aura_shop/pkg/logging"
	authmw "github.com/Skotchmaster/aura_shop/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/aura_shop/pkg/middleware/logging"
	"github.com/Skotchmaster/aura_shop/pkg/telemetry"
)

func main() {
	cfg := config.Load()
	cfg.Validate()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server_exit", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.Init(cfg.ServiceName, cfg.TracingEnabled, os.Stdout)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing_shutdown_failed", "error", err)
		}
	}()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Warn("db_close_failed", "error", err)
		}
	}()

	var cache catalog.Cache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		cache = catalog.NewRedisCache(rdb, cfg.CatalogCacheTTL)
	}

	catalogRepo := &catalog.GormRepo{DB: gdb}
	reader := catalog.NewReader(catalogRepo, cache)
	if err := reader.Refresh(ctx); err != nil {
		// served as an error state until the next change arrives
		logger.Warn("catalog_initial_load_failed", "error", err)
	}

	sources := []changefeed.Source{changefeed.NewPGListener(cfg.DatabaseURL, db.ProductsChannel)}
	if len(cfg.KafkaBrokers) > 0 {
		groupID := cfg.ServiceName + "-" + uuid.NewString()
		sources = append(sources, changefeed.NewKafkaSubscriber(cfg.KafkaBrokers, cfg.ProductEventsTopic, groupID))
	}
	feed := changefeed.New(64, sources...)
	feed.Start(ctx)
	go reader.Run(ctx, feed.Events())

	catalogSvc := &catalog.Service{Repo: catalogRepo, Topic: cfg.ProductEventsTopic}
	if len(cfg.KafkaBrokers) > 0 {
		prod, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer func() {
			if err := prod.Close(); err != nil {
				logger.Warn("kafka_close_failed", "error", err)
			}
		}()
		catalogSvc.Publisher = prod
	}

	var searcher search.Searcher = search.SnapshotSearcher{Source: reader}
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			return fmt.Errorf("elasticsearch client: %w", err)
		}
		es := &search.ESSearcher{ES: esClient, Index: cfg.ESIndex}
		if err := es.Ping(ctx); err != nil {
			logger.Warn("elasticsearch_unavailable", "error", err)
		} else if err := es.Reindex(ctx, reader.Products()); err != nil {
			logger.Warn("elasticsearch_reindex_failed", "error", err)
		}
		catalogSvc.Indexer = es
		searcher = search.Fallback{Primary: es, Secondary: searcher}
	}

	var sink notify.Sink = notify.LogSink{}
	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			return fmt.Errorf("rabbitmq dial: %w", err)
		}
		defer conn.Close()
		amqpSink, err := notify.NewAMQPSink(conn, cfg.NotifyQueue)
		if err != nil {
			return fmt.Errorf("rabbitmq sink: %w", err)
		}
		defer amqpSink.Close()
		sink = amqpSink
	}

	authSvc := &auth.Service{
		Repo:          &auth.GormRepo{DB: gdb},
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AdminEmails:   cfg.AdminEmails,
	}
	gate := authmw.NewAutoRefreshMiddleware(cfg.JWTAccessSecret, authSvc, cfg.CookieSecure)

	sessions := cart.NewSessions(cfg.CartSessionTTL)
	sessions.StartJanitor(time.Minute, func(n int) {
		logger.Info("cart_sessions_evicted", "count", n)
	})
	defer sessions.Close()
	carts := &httpserver.SessionCarts{Sessions: sessions, TTL: cfg.CartSessionTTL, CookieSecure: cfg.CookieSecure}

	orderRepo := &order.GormRepo{DB: gdb}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Ready: func(ctx context.Context) error { return db.Ping(ctx, gdb) },
		Catalog: &httpserver.CatalogHTTP{
			Reader:         reader,
			Searcher:       searcher,
			WhatsAppNumber: cfg.WhatsAppNumber,
		},
		Cart: &httpserver.CartHTTP{Carts: carts, Reader: reader},
		Checkout: &httpserver.CheckoutHTTP{
			Carts: carts,
			Submitter: &order.Submitter{
				Repo:           orderRepo,
				Sink:           sink,
				WhatsAppNumber: cfg.WhatsAppNumber,
				RedirectAfter:  cfg.CheckoutRedirectDelay,
			},
		},
		Auth: &httpserver.AuthHTTP{
			Svc:              authSvc,
			AdminRedirectURL: cfg.AdminRedirectURL,
			CookieSecure:     cfg.CookieSecure,
		},
		Admin:     &httpserver.AdminHTTP{Catalog: catalogSvc, Orders: &order.AdminService{Repo: orderRepo}},
		AdminGate: gate.RequireAdmin,
		CSRF:      csrf.Middleware(csrf.Config{Secure: cfg.CookieSecure, EnforceSameOrigin: true}),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           telemetry.Middleware(cfg.ServiceName, e, "/health/live", "/health/ready"),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	logger.Info("shutting_down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	feed.Wait()
	logger.Info("shutdown_complete")
	return nil
}
