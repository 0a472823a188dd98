package db

import (
	"context"
	"fmt"

	"ir-research/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps the MongoDB client and the artifact collection
type Client struct {
	mongoClient *mongo.Client
	collection  *mongo.Collection
}

// NewClient creates a new database client
func NewClient(connectionString, databaseName, collectionName string) *Client {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Connect reports the failure
		return &Client{}
	}

	return &Client{
		mongoClient: mongoClient,
		collection:  mongoClient.Database(databaseName).Collection(collectionName),
	}
}

// Connect verifies the MongoDB connection
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// SaveArtifact upserts the record of a written file. The path identifies the
// record, so a rerun replaces the previous entry for the same file.
func (c *Client) SaveArtifact(ctx context.Context, artifact *domain.Artifact) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	filter := bson.M{"path": artifact.Path}
	update := bson.M{"$set": artifact}
	opts := options.Update().SetUpsert(true)

	_, err := c.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetArtifacts returns the recorded artifacts for a ticker, newest first.
// An empty ticker returns every record.
func (c *Client) GetArtifacts(ctx context.Context, ticker string) ([]domain.Artifact, error) {
	if c.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	filter := bson.M{}
	if ticker != "" {
		filter["ticker"] = ticker
	}

	cursor, err := c.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "saved_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query artifacts: %w", err)
	}
	defer cursor.Close(ctx)

	var artifacts []domain.Artifact
	if err := cursor.All(ctx, &artifacts); err != nil {
		return nil, fmt.Errorf("decode artifacts: %w", err)
	}
	return artifacts, nil
}
