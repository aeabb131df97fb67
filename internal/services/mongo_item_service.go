package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stockroom/backend/internal/models"
)

const opTimeout = 10 * time.Second

type MongoItemService struct {
	client *mongo.Client
	db     *mongo.Database
	items  *mongo.Collection
}

type mongoItemDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Price       float64   `bson:"price"`
	Quantity    int       `bson:"quantity"`
	CreatedAt   time.Time `bson:"created_at"`
}

func NewMongoItemService(ctx context.Context, mongoURI, dbName string) (*MongoItemService, error) {
	// Atlas occasionally fails TLS negotiation in some environments unless
	// we force TLS 1.2 ("remote error: tls: internal error" during server
	// selection).
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(dbName)
	items := db.Collection("items")

	// Best-effort indexes.
	_, _ = items.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})

	return &MongoItemService{
		client: client,
		db:     db,
		items:  items,
	}, nil
}

func (s *MongoItemService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoItemService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func itemDocToModel(d mongoItemDoc) *models.Item {
	return &models.Item{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Quantity:    d.Quantity,
		CreatedAt:   d.CreatedAt,
	}
}

// itemCriteria builds the find filter as a conjunction of the active
// criteria. A trimmed non-empty name becomes a case-insensitive regex with
// metacharacters escaped, so the contract stays literal substring match.
// Min and max price fold into a single range criterion when both are set.
// No active criteria means match all.
func itemCriteria(f models.ItemFilter) bson.M {
	criteria := make([]bson.M, 0, 2)

	if name, ok := f.NameQuery(); ok {
		criteria = append(criteria, bson.M{
			"name": bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"},
		})
	}

	switch {
	case f.MinPrice != nil && f.MaxPrice != nil:
		criteria = append(criteria, bson.M{"price": bson.M{"$gte": *f.MinPrice, "$lte": *f.MaxPrice}})
	case f.MinPrice != nil:
		criteria = append(criteria, bson.M{"price": bson.M{"$gte": *f.MinPrice}})
	case f.MaxPrice != nil:
		criteria = append(criteria, bson.M{"price": bson.M{"$lte": *f.MaxPrice}})
	}

	if len(criteria) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": criteria}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}

func (s *MongoItemService) List(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := s.items.Find(ctx, itemCriteria(filter))
	if err != nil {
		return nil, storeErr("list items", err)
	}
	defer cur.Close(ctx)

	results := make([]models.Item, 0)
	for cur.Next(ctx) {
		var d mongoItemDoc
		if err := cur.Decode(&d); err != nil {
			return nil, storeErr("decode item", err)
		}
		results = append(results, *itemDocToModel(d))
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("list items", err)
	}
	return results, nil
}

func (s *MongoItemService) GetByID(ctx context.Context, id string) (*models.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var d mongoItemDoc
	if err := s.items.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrItemNotFound
		}
		return nil, storeErr("get item", err)
	}
	return itemDocToModel(d), nil
}

func (s *MongoItemService) Create(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := mongoItemDoc{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.items.InsertOne(ctx, doc); err != nil {
		return nil, storeErr("insert item", err)
	}
	return itemDocToModel(doc), nil
}

func (s *MongoItemService) Update(ctx context.Context, id string, req *models.UpdateItemRequest) (*models.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// Only the four mutable fields; _id and created_at stay as written.
	update := bson.M{
		"$set": bson.M{
			"name":        req.Name,
			"description": req.Description,
			"price":       *req.Price,
			"quantity":    *req.Quantity,
		},
	}

	res := s.items.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated mongoItemDoc
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrItemNotFound
		}
		return nil, storeErr("update item", err)
	}
	return itemDocToModel(updated), nil
}

func (s *MongoItemService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.items.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete item", err)
	}
	if res.DeletedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}
