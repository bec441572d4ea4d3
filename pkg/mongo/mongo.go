package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultConnectTimeout         = 10 * time.Second
	defaultServerSelectionTimeout = 10 * time.Second
	defaultMaxPoolSize            = 100
)

type Option func(*options.ClientOptions)

func WithConnectTimeout(d time.Duration) Option {
	return func(opts *options.ClientOptions) {
		opts.SetConnectTimeout(d)
	}
}

func WithServerSelectionTimeout(d time.Duration) Option {
	return func(opts *options.ClientOptions) {
		opts.SetServerSelectionTimeout(d)
	}
}

func WithMaxPoolSize(n uint64) Option {
	return func(opts *options.ClientOptions) {
		opts.SetMaxPoolSize(n)
	}
}

// New connects to the MongoDB deployment at uri and verifies the connection with a ping to the primary.
func New(ctx context.Context, uri string, opts ...Option) (*mongo.Client, error) {
	const op = "mongo.New"

	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(defaultConnectTimeout).
		SetServerSelectionTimeout(defaultServerSelectionTimeout).
		SetMaxPoolSize(defaultMaxPoolSize)

	for _, opt := range opts {
		opt(clientOpts)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	return client, nil
}
