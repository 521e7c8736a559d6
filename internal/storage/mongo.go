package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// OpenMongo connects to uri, pings the server and returns the named database
// with a function that disconnects the client.
func OpenMongo(ctx context.Context, uri, database string) (*mongo.Database, func(context.Context) error, error) {
	if database == "" {
		return nil, nil, fmt.Errorf("storage: mongo database name is required")
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("storage: connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("storage: ping mongo: %w", err)
	}
	return client.Database(database), client.Disconnect, nil
}
