package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	bcache "github.com/radieske/betslip-platform-poc/internal/betslip-service/cache"
	bhttp "github.com/radieske/betslip-platform-poc/internal/betslip-service/http"
	bmetrics "github.com/radieske/betslip-platform-poc/internal/betslip-service/metrics"
	"github.com/radieske/betslip-platform-poc/internal/betslip-service/processor"
	kpub "github.com/radieske/betslip-platform-poc/internal/betslip-service/producer"
	"github.com/radieske/betslip-platform-poc/internal/betslip-service/repo"
	"github.com/radieske/betslip-platform-poc/internal/shared/cache"
	"github.com/radieske/betslip-platform-poc/internal/shared/config"
	"github.com/radieske/betslip-platform-poc/internal/shared/db"
	"github.com/radieske/betslip-platform-poc/internal/shared/kafka"
	"github.com/radieske/betslip-platform-poc/internal/shared/logger"
	"github.com/radieske/betslip-platform-poc/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	bmetrics.Init()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	// Redis
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	// Kafka writer (topic bet_placed)
	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced)
	defer writer.Close()

	// deps
	repository := repo.NewPostgres(pg)
	balances := bcache.NewBalanceCache(rdb, cfg.BalanceCacheTTL)
	publ := kpub.NewKafkaPublisher(writer)
	proc := processor.New(log, repository, balances, publ)

	// HTTP público
	api := bhttp.NewServer(log, repository, balances, proc)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})
	log.Info("metrics/health", zap.String("addr", metricsSrv.Addr))

	log.Info("betslip-service listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
