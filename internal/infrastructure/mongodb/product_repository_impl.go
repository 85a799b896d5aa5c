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

type productDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Category  string             `bson:"category"`
	Price     float64            `bson:"price"`
	Desc      string             `bson:"desc"`
	Specs     string             `bson:"specs"`
	Image     string             `bson:"image"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func newProductDocument(p *entity.Product) productDocument {
	return productDocument{
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Desc:      p.Desc,
		Specs:     p.Specs,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (d *productDocument) toEntity() entity.Product {
	return entity.Product{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Category:  d.Category,
		Price:     d.Price,
		Desc:      d.Desc,
		Specs:     d.Specs,
		Image:     d.Image,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(productsCollection)}
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var doc productDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	p := doc.toEntity()
	return &p, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if _, dup := seen[oid]; dup {
			continue
		}
		seen[oid] = struct{}{}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []entity.Product{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]entity.Product, error) {
	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	res, err := r.col.InsertOne(ctx, newProductDocument(p))
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

// CreateMany inserts ps and fills in their generated ids.
func (r *ProductRepository) CreateMany(ctx context.Context, ps []entity.Product) error {
	if len(ps) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(ps))
	for i := range ps {
		ps[i].CreatedAt, ps[i].UpdatedAt = now, now
		docs = append(docs, newProductDocument(&ps[i]))
	}
	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	for i, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(ps) {
			ps[i].ID = oid.Hex()
		}
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return repository.ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"name":      p.Name,
		"category":  p.Category,
		"price":     p.Price,
		"desc":      p.Desc,
		"specs":     p.Specs,
		"image":     p.Image,
		"updatedAt": p.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
