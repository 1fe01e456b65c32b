package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/bookclub/library-service/config"
	"github.com/bookclub/library-service/internal/handler"
	"github.com/bookclub/library-service/internal/repository"
	"github.com/bookclub/library-service/internal/server"
	"github.com/bookclub/library-service/internal/service"
	"github.com/bookclub/library-service/migrations"
	"github.com/bookclub/library-service/pkg/kafka"
	"github.com/bookclub/library-service/pkg/logger"
	"github.com/bookclub/library-service/pkg/mailer"
	"github.com/bookclub/library-service/pkg/postgres"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo %v", err)
	}
	svc := service.NewService(repo, mailer.New(cfg.SMTP), cfg.Policy.StrictReaderDelete, log)

	auditPub := handler.NewNopPublisher()
	var consumerGroup sarama.ConsumerGroup
	if len(cfg.Kafka.Addrs) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer %v", err)
		}
		defer producer.Close()
		auditPub = handler.NewPublisher(producer, cfg.Kafka.Topic, log)

		consumerGroup, err = kafka.NewConsumerGroup(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka consumer group %v", err)
		}
		defer consumerGroup.Close()
	}

	h := handler.New(svc, svc, svc, svc, auditPub, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.Policy.SweepSchedule, func() {
		if _, err := svc.SweepOverdue(ctx); err != nil {
			log.Error("scheduled sweep", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("sweep schedule %q %v", cfg.Policy.SweepSchedule, err)
	}
	sweeper.Start()

	g, ctx := errgroup.WithContext(ctx)

	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	g.Go(func() error {
		return srv.Run()
	})

	if consumerGroup != nil {
		consumer := handler.NewConsumer(repo.InsertAudit, log)
		g.Go(func() error {
			for {
				if err := consumerGroup.Consume(ctx, []string{cfg.Kafka.Topic}, consumer); err != nil {
					log.Error("consumerGroup.Consume", zap.Error(err))
					return err
				}
				if ctx.Err() != nil {
					return nil
				}
			}
		})
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	<-sweeper.Stop().Done()
	if err := srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	cancel()
	if err := g.Wait(); err != nil {
		log.Error("g.Wait", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}
