// Package mongo stores consultation sessions in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smarterstarts-be/internal/entity"
	"smarterstarts-be/internal/mapper"
	"smarterstarts-be/internal/repository/contract"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	DefaultCollection = "consultations"
	defaultOpTimeout  = 10 * time.Second
)

// Options configures the Mongo session repository.
type Options struct {
	Client     *mongodriver.Client
	Database   string
	Collection string
	Timeout    time.Duration
}

// inserter is the slice of *mongo.Collection the repository needs.
type inserter interface {
	InsertOne(ctx context.Context, document any) (any, error)
}

type mongoCollection struct {
	coll *mongodriver.Collection
}

func (c mongoCollection) InsertOne(ctx context.Context, document any) (any, error) {
	res, err := c.coll.InsertOne(ctx, document)
	if err != nil {
		return nil, err
	}
	return res.InsertedID, nil
}

type sessionRepository struct {
	coll    inserter
	mapper  *mapper.SessionMapper
	timeout time.Duration
}

// New returns a SessionRepository backed by MongoDB.
func New(opts Options) (contract.SessionRepository, error) {
	if opts.Client == nil {
		return nil, errors.New("mongo client is required")
	}
	if opts.Database == "" {
		return nil, errors.New("database name is required")
	}
	name := opts.Collection
	if name == "" {
		name = DefaultCollection
	}
	coll := opts.Client.Database(opts.Database).Collection(name)
	return newWithCollection(mongoCollection{coll: coll}, opts.Timeout), nil
}

func newWithCollection(coll inserter, timeout time.Duration) *sessionRepository {
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	return &sessionRepository{coll: coll, mapper: mapper.NewSessionMapper(), timeout: timeout}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	id, err := r.coll.InsertOne(ctx, r.mapper.SessionToDocument(session))
	if err != nil {
		return "", fmt.Errorf("insert consultation document: %w", err)
	}
	return idString(id), nil
}

func (r *sessionRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, r.timeout)
}

func idString(id any) string {
	switch v := id.(type) {
	case bson.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Connect opens a client and verifies the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongodriver.Client, error) {
	client, err := mongodriver.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}
