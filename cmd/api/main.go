package main

import (
	"context"
	"log"

	"molecule-ledger/config"
	"molecule-ledger/internal/blockchain"
	"molecule-ledger/internal/handler"
	ledger_redis "molecule-ledger/internal/redis"
	"molecule-ledger/internal/repository"
	"molecule-ledger/internal/server"
	"molecule-ledger/internal/services"
	"molecule-ledger/pkg/database"
	"molecule-ledger/pkg/logger"
	"molecule-ledger/pkg/password"
	"molecule-ledger/pkg/token"
)

const version = "0.1.0"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx := context.Background()

	// Account directory: Postgres when configured, in-memory otherwise.
	var accounts repository.AccountRepository
	var healthCheck func(context.Context) error
	if cfg.DatabaseDSN != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		if err := repository.InitSchema(ctx, pool); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}

		accounts = repository.NewPostgresAccountRepository(pool)
		healthCheck = pool.Ping
		l.Infof("Account directory backed by Postgres")
	} else {
		accounts = repository.NewMemoryAccountRepository()
		l.Infof("DATABASE_DSN not set, account directory is in-memory")
	}

	hasher := password.NewBcryptHasher(cfg.BcryptCost)

	issuer, err := token.NewIssuer([]byte(cfg.JWTSecret), token.WithTTL(cfg.TokenTTL))
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	authService := services.NewAuthService(accounts, hasher, issuer)

	var limiter *ledger_redis.RateLimiter
	if cfg.RedisAddr != "" {
		client := ledger_redis.NewClient(ledger_redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := ledger_redis.Ping(ctx, client); err != nil {
			l.Errorf("Redis unreachable, auth rate limiting disabled: %s", err)
		} else {
			limiter = ledger_redis.NewRateLimiter(client, ledger_redis.DefaultRateLimitConfig())
		}
	}

	var probe *blockchain.Probe
	if cfg.EthRPCURL != "" {
		probe, err = blockchain.Dial(ctx, cfg.EthRPCURL)
		if err != nil {
			l.Errorf("Failed to connect to Ethereum network: %s", err)
		} else {
			defer probe.Close()
			if st := probe.Status(ctx); st.Connected {
				l.Infof("Connected to Ethereum network: chain id %s", st.ChainID.String())
			}
		}
	}

	handlers := &server.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Status: handler.NewStatusHandler(probe, version),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, limiter, healthCheck)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
