package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Mthinuay/SingularXpress/internal/bootstrap"
	"github.com/Mthinuay/SingularXpress/internal/events"
	"github.com/Mthinuay/SingularXpress/internal/messaging/kafka/consumer"
)

// RunConsumer mengalirkan event lifecycle employee dan tax table ke audit log.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	audit := bootstrap.NewStdoutAuditLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	topics := []string{
		events.EmployeeCreatedTopic,
		events.TaxTableUploadedTopic,
	}
	for _, topic := range topics {
		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{kafkaBroker},
			Topic:          topic,
			GroupID:        "singularxpress-lifecycle-audit",
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
		defer reader.Close()

		go consumer.ConsumeLifecycleAudit(ctx, reader, audit, logger)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
