package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type productRepository struct {
	coll *mongo.Collection
}

// NewProductRepository создаёт MongoDB-реализацию ProductRepository над коллекцией Products.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{coll: store.Database().Collection(collectionProducts)}
}

// List возвращает все товары в естественном порядке коллекции.
func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return productsToDomain(docs), nil
}

// Get возвращает товар по hex ObjectID; некорректный ID трактуется как отсутствующий товар.
func (r *productRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, domain.ErrProductNotFound
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

// InsertMany загружает товары и возвращает присвоенные ObjectID в hex.
func (r *productRepository) InsertMany(ctx context.Context, products []domain.Product) ([]string, error) {
	if len(products) == 0 {
		return []string{}, nil
	}

	docs := make([]any, 0, len(products))
	for _, p := range products {
		doc, ok := productToDocument(p)
		if !ok {
			return nil, fmt.Errorf("invalid product id %q", p.ID)
		}
		docs = append(docs, doc)
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert products: %w", err)
	}

	ids := make([]string, 0, len(res.InsertedIDs))
	for _, inserted := range res.InsertedIDs {
		if oid, ok := inserted.(primitive.ObjectID); ok {
			ids = append(ids, oid.Hex())
		}
	}
	return ids, nil
}

func productsToDomain(docs []productDocument) []domain.Product {
	result := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toDomain())
	}
	return result
}

var _ domain.ProductRepository = (*productRepository)(nil)
