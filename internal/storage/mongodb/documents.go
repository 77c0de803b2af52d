package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type customerDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Email            string             `bson:"email"`
	Phone            string             `bson:"phone"`
	RegistrationDate time.Time          `bson:"registration_date"`
}

type productDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Brand    string             `bson:"brand"`
	Price    int64              `bson:"price"`
	Category string             `bson:"category"`
	Size     string             `bson:"size"`
	Gender   string             `bson:"gender"`
	Stock    int                `bson:"stock"`
	Rating   *int               `bson:"rating,omitempty"`
	Notes    *string            `bson:"notes,omitempty"`
	ImageURL *string            `bson:"image_url,omitempty"`
}

type lineItemDocument struct {
	ProductID string `bson:"product_id"`
	Quantity  int    `bson:"quantity"`
	Price     int64  `bson:"price"`
}

type orderDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID string             `bson:"customer_id"`
	Products   []lineItemDocument `bson:"products"`
	TotalPrice int64              `bson:"total_price"`
	OrderDate  time.Time          `bson:"order_date"`
	Status     string             `bson:"status"`
}

type outboxDocument struct {
	ID            string    `bson:"_id"`
	AggregateType string    `bson:"aggregate_type"`
	AggregateID   string    `bson:"aggregate_id"`
	EventType     string    `bson:"event_type"`
	Payload       []byte    `bson:"payload"`
	Status        string    `bson:"status"`
	AttemptCount  int       `bson:"attempt_count"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

// parseObjectID разбирает hex-идентификатор; пустой ID означает "сгенерировать новый".
func parseObjectID(id string) (primitive.ObjectID, bool) {
	if id == "" {
		return primitive.NilObjectID, true
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

func customerToDocument(c domain.Customer) (customerDocument, bool) {
	oid, ok := parseObjectID(c.ID)
	return customerDocument{
		ID:               oid,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		RegistrationDate: c.RegistrationDate.UTC(),
	}, ok
}

func (d customerDocument) toDomain() domain.Customer {
	return domain.Customer{
		ID:               hexOrEmpty(d.ID),
		Name:             d.Name,
		Email:            d.Email,
		Phone:            d.Phone,
		RegistrationDate: d.RegistrationDate.UTC(),
	}
}

func productToDocument(p domain.Product) (productDocument, bool) {
	oid, ok := parseObjectID(p.ID)
	return productDocument{
		ID:       oid,
		Name:     p.Name,
		Brand:    p.Brand,
		Price:    p.Price,
		Category: p.Category,
		Size:     p.Size,
		Gender:   p.Gender,
		Stock:    p.Stock,
		Rating:   p.Rating,
		Notes:    p.Notes,
		ImageURL: p.ImageURL,
	}, ok
}

func (d productDocument) toDomain() domain.Product {
	return domain.Product{
		ID:       hexOrEmpty(d.ID),
		Name:     d.Name,
		Brand:    d.Brand,
		Price:    d.Price,
		Category: d.Category,
		Size:     d.Size,
		Gender:   d.Gender,
		Stock:    d.Stock,
		Rating:   d.Rating,
		Notes:    d.Notes,
		ImageURL: d.ImageURL,
	}
}

func orderToDocument(o domain.Order) (orderDocument, bool) {
	oid, ok := parseObjectID(o.ID)
	items := make([]lineItemDocument, 0, len(o.Products))
	for _, item := range o.Products {
		items = append(items, lineItemDocument{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Price})
	}
	return orderDocument{
		ID:         oid,
		CustomerID: o.CustomerID,
		Products:   items,
		TotalPrice: o.TotalPrice,
		OrderDate:  o.OrderDate.UTC(),
		Status:     string(o.Status),
	}, ok
}

func (d orderDocument) toDomain() domain.Order {
	items := make([]domain.LineItem, 0, len(d.Products))
	for _, item := range d.Products {
		items = append(items, domain.LineItem{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Price})
	}
	return domain.Order{
		ID:         hexOrEmpty(d.ID),
		CustomerID: d.CustomerID,
		Products:   items,
		TotalPrice: d.TotalPrice,
		OrderDate:  d.OrderDate.UTC(),
		Status:     domain.OrderStatus(d.Status),
	}
}
