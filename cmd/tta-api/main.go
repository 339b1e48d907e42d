package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/metrics"
	"github.com/goodnatureofminers/tta-backend/internal/near/balance"
	"github.com/goodnatureofminers/tta-backend/internal/near/chain"
	"github.com/goodnatureofminers/tta-backend/internal/near/report"
	"github.com/goodnatureofminers/tta-backend/internal/near/repository/clickhouse"
	"github.com/goodnatureofminers/tta-backend/internal/near/repository/postgres"
	"github.com/goodnatureofminers/tta-backend/internal/near/rpc"
	"github.com/goodnatureofminers/tta-backend/internal/near/token"
	"github.com/goodnatureofminers/tta-backend/internal/transport"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type config struct {
	Addr          string `long:"addr" env:"TTA_ADDR" description:"HTTP listen address" default:":8080"`
	LogProduction bool   `long:"log-production" env:"TTA_LOG_PRODUCTION" description:"use the JSON production logger"`

	Store                  string `long:"store" env:"TTA_STORE" description:"transaction store backend" choice:"clickhouse" choice:"postgres" default:"clickhouse"`
	ClickhouseDSN          string `long:"clickhouse-dsn" env:"TTA_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	ClickhouseMaxOpenConns int    `long:"clickhouse-max-open-conns" env:"TTA_CLICKHOUSE_MAX_OPEN_CONNS" description:"ClickHouse pool size" default:"10"`
	PostgresDSN            string `long:"postgres-dsn" env:"TTA_POSTGRES_DSN" description:"indexer PostgreSQL DSN"`
	PostgresMaxConns       int32  `long:"postgres-max-conns" env:"TTA_POSTGRES_MAX_CONNS" description:"PostgreSQL pool size" default:"10"`
	PageSize               int    `long:"page-size" env:"TTA_PAGE_SIZE" description:"transactions fetched per store query" default:"1000"`

	RPCURL              string        `long:"rpc-url" env:"TTA_RPC_URL" description:"NEAR archival RPC URL" default:"https://archival-rpc.mainnet.near.org"`
	RPCNetwork          string        `long:"rpc-network" env:"TTA_RPC_NETWORK" description:"network label for metrics" default:"mainnet"`
	RPCHTTPTimeout      time.Duration `long:"rpc-http-timeout" env:"TTA_RPC_HTTP_TIMEOUT" description:"HTTP timeout for RPC requests" default:"30s"`
	RPCRPS              float64       `long:"rpc-rps" env:"TTA_RPC_RPS" description:"RPC requests per second" default:"4"`
	RPCBurst            int           `long:"rpc-burst" env:"TTA_RPC_BURST" description:"RPC burst size" default:"4"`
	RPCAdmissionTimeout time.Duration `long:"rpc-admission-timeout" env:"TTA_RPC_ADMISSION_TIMEOUT" description:"longest wait for a rate limiter slot" default:"10s"`
	RPCCallTimeout      time.Duration `long:"rpc-call-timeout" env:"TTA_RPC_CALL_TIMEOUT" description:"timeout of a single RPC attempt" default:"20s"`
	RPCMaxAttempts      int           `long:"rpc-max-attempts" env:"TTA_RPC_MAX_ATTEMPTS" description:"attempts per RPC call" default:"5"`
	RPCBackoffInitial   time.Duration `long:"rpc-backoff-initial" env:"TTA_RPC_BACKOFF_INITIAL" description:"first retry delay" default:"200ms"`
	RPCBackoffMax       time.Duration `long:"rpc-backoff-max" env:"TTA_RPC_BACKOFF_MAX" description:"retry delay cap" default:"5s"`

	BalanceCacheSize       int           `long:"balance-cache-size" env:"TTA_BALANCE_CACHE_SIZE" description:"in-process balance cache entries" default:"4096"`
	CoalesceBalanceLookups bool          `long:"coalesce-balance-lookups" env:"TTA_COALESCE_BALANCE_LOOKUPS" description:"share concurrent lookups of the same balance"`
	RedisAddr              string        `long:"redis-addr" env:"TTA_REDIS_ADDR" description:"optional Redis address for the shared balance cache"`
	RedisPassword          string        `long:"redis-password" env:"TTA_REDIS_PASSWORD" description:"Redis password"`
	RedisDB                int           `long:"redis-db" env:"TTA_REDIS_DB" description:"Redis database" default:"0"`
	RedisTTL               time.Duration `long:"redis-ttl" env:"TTA_REDIS_TTL" description:"shared balance cache TTL" default:"168h"`
	TokenCacheSize         int           `long:"token-cache-size" env:"TTA_TOKEN_CACHE_SIZE" description:"cached ft_metadata entries" default:"1024"`

	BalanceWorkers    int           `long:"balance-workers" env:"TTA_BALANCE_WORKERS" description:"accounts resolved concurrently by /balances" default:"4"`
	SkipZeroValueRows bool          `long:"skip-zero-value-rows" env:"TTA_SKIP_ZERO_VALUE_ROWS" description:"omit rows that move no NEAR, stake or tokens"`
	FlushSize         int           `long:"flush-size" env:"TTA_FLUSH_SIZE" description:"CSV records per response flush" default:"256"`
	FlushInterval     time.Duration `long:"flush-interval" env:"TTA_FLUSH_INTERVAL" description:"longest delay before buffered CSV records are flushed" default:"200ms"`
	FlushRPS          int           `long:"flush-rps" env:"TTA_FLUSH_RPS" description:"response flushes per second" default:"1000"`
}

type store interface {
	report.BlockIndex
	report.TransactionStore
	io.Closer
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "failed to parse flags: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogProduction)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("tta api failed", zap.Error(err))
	}
}

func newLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close store", zap.Error(err))
		}
	}()

	node, err := rpc.NewClient(cfg.RPCURL, &http.Client{Timeout: cfg.RPCHTTPTimeout}, metrics.NewRPCClient(cfg.RPCNetwork))
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	chainClient, err := chain.NewClient(node, chain.Options{
		RPS:              cfg.RPCRPS,
		Burst:            cfg.RPCBurst,
		AdmissionTimeout: cfg.RPCAdmissionTimeout,
		CallTimeout:      cfg.RPCCallTimeout,
		MaxAttempts:      cfg.RPCMaxAttempts,
		BackoffInitial:   cfg.RPCBackoffInitial,
		BackoffMax:       cfg.RPCBackoffMax,
	}, metrics.NewChainClient(), logger)
	if err != nil {
		return fmt.Errorf("init chain client: %w", err)
	}

	resolver, closeShared, err := newBalanceResolver(ctx, cfg, chainClient, logger)
	if err != nil {
		return err
	}
	defer closeShared()

	tokens, err := token.NewMetadataCache(chainClient, cfg.TokenCacheSize)
	if err != nil {
		return fmt.Errorf("init token metadata cache: %w", err)
	}

	heights, err := report.NewHeightResolver(st)
	if err != nil {
		return fmt.Errorf("init height resolver: %w", err)
	}
	reader, err := report.NewTransactionReader(st, cfg.PageSize)
	if err != nil {
		return fmt.Errorf("init transaction reader: %w", err)
	}
	reports, err := report.NewReportAssembler(
		heights,
		reader,
		resolver,
		tokens,
		report.ReportConfig{SkipZeroValueRows: cfg.SkipZeroValueRows},
		metrics.NewReport("tta"),
		logger,
	)
	if err != nil {
		return fmt.Errorf("init report assembler: %w", err)
	}
	balances, err := report.NewBalancesAssembler(heights, resolver, cfg.BalanceWorkers, metrics.NewReport("balances"), logger)
	if err != nil {
		return fmt.Errorf("init balances assembler: %w", err)
	}

	handler, err := transport.NewHandler(reports, balances, transport.SinkConfig{
		FlushSize:     cfg.FlushSize,
		FlushInterval: cfg.FlushInterval,
		FlushRPS:      cfg.FlushRPS,
	}, logger)
	if err != nil {
		return fmt.Errorf("init handler: %w", err)
	}

	router := handler.Router()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return serve(ctx, cfg.Addr, cors.Default().Handler(router), logger)
}

func openStore(ctx context.Context, cfg config) (store, error) {
	switch cfg.Store {
	case "postgres":
		return postgres.NewRepository(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns, metrics.NewRepository("postgres"))
	default:
		return clickhouse.NewRepository(cfg.ClickhouseDSN, clickhouse.Options{
			MaxOpenConns: cfg.ClickhouseMaxOpenConns,
			MaxIdleConns: cfg.ClickhouseMaxOpenConns,
		}, metrics.NewRepository("clickhouse"))
	}
}

func newBalanceResolver(ctx context.Context, cfg config, fetcher balance.Fetcher, logger *zap.Logger) (*balance.Resolver, func(), error) {
	cacheMetrics := metrics.NewBalanceCache()
	local, err := balance.NewCache(cfg.BalanceCacheSize, cacheMetrics)
	if err != nil {
		return nil, nil, fmt.Errorf("init balance cache: %w", err)
	}

	closeShared := func() {}
	var shared balance.SharedCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		redisCache, err := balance.NewRedisCache(client, cfg.RedisTTL, cacheMetrics)
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("init redis balance cache: %w", err)
		}
		shared = redisCache
		closeShared = func() {
			if err := client.Close(); err != nil {
				logger.Error("failed to close redis client", zap.Error(err))
			}
		}
		logger.Info("shared balance cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	resolver, err := balance.NewResolver(local, shared, fetcher, cfg.CoalesceBalanceLookups, logger)
	if err != nil {
		closeShared()
		return nil, nil, fmt.Errorf("init balance resolver: %w", err)
	}
	return resolver, closeShared, nil
}

func serve(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}
