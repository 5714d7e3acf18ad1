package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Mthinuay/SingularXpress/internal/bootstrap"
)

// ConsumeLifecycleAudit membaca event lifecycle HR dan mencatatnya sebagai
// audit trail. Commit dilakukan setelah audit tertulis agar tidak ada event
// yang hilang.
func ConsumeLifecycleAudit(
	ctx context.Context,
	reader *kafkago.Reader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.lifecycle_audit")
	log.Info("lifecycle audit consumer started", zap.String("topic", reader.Config().Topic))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle audit consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		var event map[string]any
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// Payload rusak tidak bisa diproses ulang, langsung commit.
			log.Error("decode lifecycle event failed",
				zap.String("topic", msg.Topic),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		eventType, _ := event["event_type"].(string)
		audit.Log(ctx, bootstrap.AuditLog{
			Action:  "LIFECYCLE_EVENT",
			Message: eventType,
			Meta: map[string]any{
				"topic":   msg.Topic,
				"key":     string(msg.Key),
				"payload": event,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
			continue
		}

		log.Debug("lifecycle event audited",
			zap.String("topic", msg.Topic),
			zap.String("event_type", eventType),
		)
	}
}
