package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/use_cases"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/dynamo"
	gormdb "github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/gorm"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/gorm/repositories"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/processor"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/stripeapi"
	echoserver "github.com/jameshoangcyber/nexuskit-webapp/internal/presentation/echo"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/utils/config"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/utils/logger"
)

const simulatorSecretKey = "sk_test_simulator"

type stores struct {
	orders domain.OrderRepository
	events domain.WebhookEventRepository
	tx     domain.TransactionManager
}

func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	switch cfg.OrderStore {
	case config.OrderStoreDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg.DynamoDBRegion, cfg.DynamoDBEndpoint)
		if err != nil {
			return nil, err
		}
		if cfg.DynamoDBEndpoint != "" {
			if err := dynamo.CreateTable(ctx, client, cfg.DynamoDBTable); err != nil {
				return nil, err
			}
		}
		log.Info("order store ready", "store", cfg.OrderStore, "table", cfg.DynamoDBTable)
		return &stores{
			orders: dynamo.NewOrderRepo(client, cfg.DynamoDBTable),
			events: dynamo.NewWebhookEventRepo(client, cfg.DynamoDBTable),
			tx:     dynamo.NewTransactionManager(),
		}, nil
	case config.OrderStoreSQL:
		db, err := gormdb.NewConnection(cfg.DBDriver, cfg.DSN())
		if err != nil {
			return nil, err
		}
		if err := gormdb.RunMigrations(db); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Info("order store ready", "store", cfg.OrderStore, "driver", cfg.DBDriver)
		return &stores{
			orders: repositories.NewOrderRepo(db),
			events: repositories.NewWebhookEventRepo(db),
			tx:     gormdb.NewTransactionManager(db),
		}, nil
	default:
		return nil, fmt.Errorf("unknown ORDER_STORE %q", cfg.OrderStore)
	}
}

func newGateway(cfg *config.Config, log *slog.Logger) *stripeapi.Gateway {
	if !cfg.StripeMockMode {
		return stripeapi.NewGateway(cfg.StripeSecretKey, log)
	}
	log.Warn("card processor running in simulator mode")
	sim := processor.NewSimulator(cfg.SimulatorLatency)
	return stripeapi.NewGatewayWith(simulatorSecretKey, sim, sim, log)
}

func main() {
	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open order store", "error", err)
		os.Exit(1)
	}

	container := use_cases.NewContainer(use_cases.Dependencies{
		Orders:   st.orders,
		Events:   st.events,
		Tx:       st.tx,
		Gateway:  newGateway(cfg, log),
		Verifier: stripeapi.NewWebhookVerifier(cfg.StripeWebhookSecret),
		Logger:   log,
	}, cfg)
	container.StartBackground(ctx)

	if !cfg.StripeConfigured() {
		log.Warn("stripe secret key missing, card payments disabled")
	}

	server := echoserver.NewServer(cfg, container, log)
	if err := <-server.Start(); err != nil {
		log.Error("server error", "error", err)
		cancel()
		os.Exit(1)
	}
}
