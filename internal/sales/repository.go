package sales

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type Repository interface {
	// Create inserts the order and its items.
	Create(ctx context.Context, so *model.SalesOrder) error
	FindByID(ctx context.Context, id string) (*model.SalesOrder, error)
}

// Publisher emits integration events. broker.KafkaProducer satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, payload any) error
}
