package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type customerRepository struct {
	coll *mongo.Collection
}

// NewCustomerRepository создаёт MongoDB-реализацию CustomerRepository над коллекцией Customers.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{coll: store.Database().Collection(collectionCustomers)}
}

// Create вставляет документ покупателя. Нарушение уникального индекса email — ErrDuplicateEmail.
func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	doc, ok := customerToDocument(customer)
	if !ok {
		return domain.Customer{}, fmt.Errorf("invalid customer id %q", customer.ID)
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Customer{}, domain.ErrDuplicateEmail
		}
		return domain.Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		customer.ID = oid.Hex()
	}
	return customer, nil
}

// GetByEmail ищет документ по точному совпадению email.
func (r *customerRepository) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var doc customerDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("find customer: %w", err)
	}
	return doc.toDomain(), nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
