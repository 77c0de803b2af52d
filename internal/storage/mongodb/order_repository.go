package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type orderRepository struct {
	coll *mongo.Collection
}

// NewOrderRepository создаёт MongoDB-реализацию OrderRepository над коллекцией Orders.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{coll: store.Database().Collection(collectionOrders)}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	doc, ok := orderToDocument(order)
	if !ok {
		return domain.Order{}, fmt.Errorf("invalid order id %q", order.ID)
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid.Hex()
	}
	return order, nil
}

func ordersToDomain(docs []orderDocument) []domain.Order {
	result := make([]domain.Order, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toDomain())
	}
	return result
}

var _ domain.OrderRepository = (*orderRepository)(nil)
