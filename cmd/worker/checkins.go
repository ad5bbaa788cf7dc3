package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ammichelon/dashboard-dinetec/internal/config"
	"github.com/ammichelon/dashboard-dinetec/internal/db"
	"github.com/ammichelon/dashboard-dinetec/internal/kafka"
	"github.com/ammichelon/dashboard-dinetec/internal/logger"
	"github.com/ammichelon/dashboard-dinetec/internal/metrics"
	"github.com/ammichelon/dashboard-dinetec/internal/repository"
	"github.com/ammichelon/dashboard-dinetec/internal/service/capture"
	"github.com/ammichelon/dashboard-dinetec/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkinsCmd = &cobra.Command{
	Use:   "checkins",
	Short: "Record check-ins from badge scanner events on Kafka",
	RunE:  runCheckins,
}

func runCheckins(cmd *cobra.Command, args []string) error {
	// 1) load config
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	metrics.MustRegister(prometheus.DefaultRegisterer)

	// 2) SQLite
	sqlDB, err := db.Initialize(cmd.Context(), db.OptsFromConfig(cfg.SQLite))
	if err != nil {
		return fmt.Errorf("initialize db: %w", err)
	}
	defer sqlDB.Close()

	svc := capture.New(sqlDB, repository.NewLeadsRepository(sqlDB), repository.NewCheckinsRepository(sqlDB))

	// 3) kafka consumer
	consumer, err := kafka.NewConsumer(kafka.Config{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.Topic,
		GroupID:        cfg.Kafka.GroupID,
		MinBytes:       cfg.Kafka.MinBytes,
		MaxBytes:       cfg.Kafka.MaxBytes,
		CommitInterval: time.Duration(cfg.Kafka.CommitInterval) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	defer consumer.Close()

	// 4) graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Log.Info("checkins worker started",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group", cfg.Kafka.GroupID),
	)

	return worker.NewCheckins(consumer, svc, logger.Log).Run(ctx)
}
