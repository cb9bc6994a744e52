package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/feedbook/internal/repository/store"
)

var _ store.Store = (*MongoDBRepository)(nil)

// collectionDocument stores one record collection as a single document,
// keyed by collection name, so the JSON array round-trips untouched.
type collectionDocument struct {
	Name      string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoDBRepository implements store.Store on top of MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "record_collections",
	}, nil
}

// Load fetches the JSON array stored for a collection.
func (r *MongoDBRepository) Load(ctx context.Context, collection string) ([]byte, error) {
	var doc collectionDocument
	err := r.coll().FindOne(ctx, bson.M{"_id": collection}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", collection, err)
	}
	return []byte(doc.Data), nil
}

// Save upserts every write in order. MongoDB transactions need a replica set,
// so multi-collection writes are not atomic here.
func (r *MongoDBRepository) Save(ctx context.Context, writes ...store.Write) error {
	now := time.Now().UTC()
	for _, w := range writes {
		if w.Collection == "" {
			return fmt.Errorf("collection name must not be empty")
		}
		doc := collectionDocument{Name: w.Collection, Data: string(w.Data), UpdatedAt: now}
		_, err := r.coll().ReplaceOne(ctx, bson.M{"_id": w.Collection}, doc, options.Replace().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("failed to save collection %s: %w", w.Collection, err)
		}
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) coll() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}
