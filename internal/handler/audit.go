package handler

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/bookclub/library-service/internal/model"
	"github.com/bookclub/library-service/pkg/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Publisher is the audit side-effect sink. Publishing is best effort; a
// broker failure is logged and never fails the request that caused it.
type Publisher interface {
	Publish(ev model.AuditEvent)
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
}

func NewPublisher(producer sarama.SyncProducer, topic string, log *zap.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		topic:    topic,
		log:      log.Named("audit"),
	}
}

func (p *kafkaPublisher) Publish(ev model.AuditEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("audit marshal", zap.Error(err))
		return
	}
	msg := &sarama.ProducerMessage{Topic: p.topic, Value: sarama.StringEncoder(data)}
	if _, _, err = p.producer.SendMessage(msg); err != nil {
		p.log.Error("audit publish", zap.Error(err))
	}
}

type nopPublisher struct{}

// NewNopPublisher stands in when no broker is configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(model.AuditEvent) {}

func (h *Handler) publishAudit(c echo.Context, action, entity, entityID, details string) {
	actor := auth.Username(c.Request().Context())
	if actor == "" {
		actor = "unknown"
	}
	h.audit.Publish(model.AuditEvent{
		Action:   action,
		Actor:    actor,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
		At:       time.Now().UTC(),
	})
}
