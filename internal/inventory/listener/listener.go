package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/inventory"
	"github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/retry"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const EventPurchaseOrderDelivered = "PurchaseOrderDelivered"

// MessageReader is satisfied by broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type InventoryListener struct {
	consumer MessageReader
	uc       inventory.UseCase
	policy   retry.Policy
	logger   logger.ZapLogger
}

func NewInventoryListener(consumer MessageReader, uc inventory.UseCase, policy retry.Policy, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		uc:       uc,
		policy:   policy,
		logger:   logger,
	}
}

// Start consumes delivery events until ctx is cancelled.
func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("Starting Inventory Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Inventory Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type PurchaseOrderDeliveredEvent struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	Payload   PurchaseOrderDelivered `json:"payload"`
	Timestamp time.Time              `json:"timestamp"`
}

type PurchaseOrderDelivered struct {
	PurchaseOrderID string    `json:"purchase_order_id"`
	DeliveredDate   time.Time `json:"delivered_date"`
	UserID          string    `json:"user_id"`
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event PurchaseOrderDeliveredEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventPurchaseOrderDelivered {
		return
	}

	l.logger.Info("Processing PurchaseOrderDelivered event", zap.String("purchase_order_id", event.Payload.PurchaseOrderID))

	input := &dto.ReceivePurchaseInput{
		PurchaseOrderID: event.Payload.PurchaseOrderID,
		DeliveredDate:   event.Payload.DeliveredDate,
		UserID:          event.Payload.UserID,
	}
	err := retry.OnConflict(ctx, l.policy, func(ctx context.Context) error {
		_, err := l.uc.ReceivePurchase(ctx, input)
		return err
	})
	if err != nil {
		l.logger.Error("Failed to receive purchase order",
			zap.String("purchase_order_id", event.Payload.PurchaseOrderID),
			zap.String("kind", string(apperror.KindOf(err))),
			zap.Error(err),
		)
	}
}
