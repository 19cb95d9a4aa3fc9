package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	deliveryhandler "github.com/vhpires/groupcast/internal/api/handlers/delivery"
	instancehandler "github.com/vhpires/groupcast/internal/api/handlers/instance"
	schedulehandler "github.com/vhpires/groupcast/internal/api/handlers/schedule"
	"github.com/vhpires/groupcast/internal/api/router"
	"github.com/vhpires/groupcast/internal/api/server"
	"github.com/vhpires/groupcast/internal/config"
	"github.com/vhpires/groupcast/internal/gateway"
	"github.com/vhpires/groupcast/internal/rabbitmq/queue"
	adrepo "github.com/vhpires/groupcast/internal/repository/ad"
	deliveryrepo "github.com/vhpires/groupcast/internal/repository/delivery"
	schedulerepo "github.com/vhpires/groupcast/internal/repository/schedule"
	deliverysvc "github.com/vhpires/groupcast/internal/service/delivery"
	schedulesvc "github.com/vhpires/groupcast/internal/service/schedule"
	"github.com/vhpires/groupcast/internal/worker"
	"github.com/vhpires/groupcast/pkg/backoff"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	outcomes, err := queue.NewOutcomeQueue(ch)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create outcome queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.Database)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	deliveries := deliveryrepo.NewRepository(db)
	schedules := schedulerepo.NewRepository(db)
	ads := adrepo.NewRepository(db)

	policy := backoff.Policy{
		Retries:   cfg.Gateway.Retries,
		BaseDelay: cfg.Gateway.BaseDelay,
		MaxDelay:  cfg.Gateway.MaxDelay,
		Factor:    cfg.Gateway.Factor,
	}
	provider := gateway.New(cfg.WhatsApp, policy)

	dispatcher := worker.NewDispatcher(deliveries, ads, provider, outcomes, cfg.Retry, cfg.Gateway.SendTimeout)
	supervisor := worker.NewSupervisor(dispatcher)

	go supervisor.Run(ctx)

	scheduleService := schedulesvc.NewService(schedules, deliveries, rdb)
	deliveryService := deliverysvc.NewService(deliveries, rdb)

	scheduleHandler := schedulehandler.NewHandler(scheduleService, deliveryService, val, cfg)
	deliveryHandler := deliveryhandler.NewHandler(deliveryService, cfg)
	instanceHandler := instancehandler.NewHandler(provider)

	r := router.New(scheduleHandler, deliveryHandler, instanceHandler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close master DB")
	}

	for i, s := range db.Slaves {
		if err := s.Close(); err != nil {
			zlog.Logger.Error().Err(err).Int("slave", i).Msg("failed to close slave DB")
		}
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
