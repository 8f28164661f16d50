package database

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/blog-service/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectMongo opens the single client used for the life of the process and
// pings the primary, since mongo.Connect alone does not touch the network.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if uri == "" {
		return nil, errs.NewConnectionError("mongo", errors.New("empty connection string"))
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetAppName("blog-service")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errs.NewConnectionError("mongo", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.NewConnectionError("mongo", err)
	}

	log.Info().Msg("Connected to MongoDB")
	return client, nil
}
