package notifications

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/prabhat63s/MRITTIKA/configs"
	"github.com/prabhat63s/MRITTIKA/models"
)

var (
	writerOnce sync.Once
	writer     *kafka.Writer
)

// orderEvent is the message shape on the order events topic.
type orderEvent struct {
	Type          string               `json:"type"`
	OrderID       string               `json:"orderId"`
	UserID        string               `json:"userId"`
	Amount        float64              `json:"amount"`
	OrderStatus   models.OrderStatus   `json:"orderStatus"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

// eventWriter lazily builds the Kafka writer. Nil when KAFKA_BROKERS is
// unset, which disables publishing entirely.
func eventWriter() *kafka.Writer {
	writerOnce.Do(func() {
		brokers := configs.EnvKafkaBrokers()
		if brokers == "" {
			return
		}
		writer = &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(brokers, ",")...),
			Topic:    configs.EnvKafkaTopic(),
			Balancer: &kafka.LeastBytes{},
		}
		logrus.WithField("brokers", brokers).Info("order event stream enabled")
	})
	return writer
}

func publishOrderEvent(ctx context.Context, eventType string, order models.Order) {
	w := eventWriter()
	if w == nil {
		return
	}

	payload, err := json.Marshal(orderEvent{
		Type:          eventType,
		OrderID:       order.ID.Hex(),
		UserID:        order.UserID.Hex(),
		Amount:        order.Amount,
		OrderStatus:   order.OrderStatus,
		PaymentStatus: order.PaymentStatus,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		logrus.WithError(err).Error("order event marshal failed")
		return
	}

	err = w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID.Hex()),
		Value: payload,
	})
	if err != nil {
		logrus.WithError(err).WithField("type", eventType).Error("order event publish failed")
	}
}
