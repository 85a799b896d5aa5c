package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	"github.com/oksasatya/gadget-store-api/internal/domain/repository"
)

type orderItemDocument struct {
	ProductID primitive.ObjectID `bson:"productId"`
	Name      string             `bson:"name"`
	Price     float64            `bson:"price"`
	Quantity  int                `bson:"quantity"`
	Image     string             `bson:"image"`
}

type orderDocument struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty"`
	CustomerName     string              `bson:"customerName"`
	CustomerEmail    string              `bson:"customerEmail"`
	CustomerPhone    string              `bson:"customerPhone"`
	CustomerLocation string              `bson:"customerLocation"`
	Items            []orderItemDocument `bson:"items"`
	TotalAmount      float64             `bson:"totalAmount"`
	Status           string              `bson:"status"`
	CreatedAt        time.Time           `bson:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt"`
}

func (d *orderDocument) toEntity() entity.Order {
	items := make([]entity.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, entity.OrderItem{
			ProductID: it.ProductID.Hex(),
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	return entity.Order{
		ID:               d.ID.Hex(),
		CustomerName:     d.CustomerName,
		CustomerEmail:    d.CustomerEmail,
		CustomerPhone:    d.CustomerPhone,
		CustomerLocation: d.CustomerLocation,
		Items:            items,
		TotalAmount:      d.TotalAmount,
		Status:           entity.OrderStatus(d.Status),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(ordersCollection)}
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	items := make([]orderItemDocument, 0, len(o.Items))
	for _, it := range o.Items {
		pid, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return err
		}
		items = append(items, orderItemDocument{
			ProductID: pid,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	now := time.Now().UTC()
	doc := orderDocument{
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		CustomerPhone:    o.CustomerPhone,
		CustomerLocation: o.CustomerLocation,
		Items:            items,
		TotalAmount:      o.TotalAmount,
		Status:           string(o.Status),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid.Hex()
	}
	o.CreatedAt, o.UpdatedAt = now, now
	return nil
}

func (r *OrderRepository) List(ctx context.Context) ([]entity.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.Order, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now().UTC()}}
	var doc orderDocument
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	o := doc.toEntity()
	return &o, nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
