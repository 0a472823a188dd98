package db

import (
	"context"
	"testing"
)

func TestNewClient_TargetsCollection(t *testing.T) {
	// Connecting is lazy; no server is contacted here.
	c := NewClient("mongodb://localhost:27017", "irresearch", "artifacts")
	defer c.Close(context.Background())

	if c.collection == nil {
		t.Fatal("Expected collection to be initialized")
	}
	if got := c.collection.Name(); got != "artifacts" {
		t.Errorf("Collection = %q, want artifacts", got)
	}
	if got := c.collection.Database().Name(); got != "irresearch" {
		t.Errorf("Database = %q, want irresearch", got)
	}
}

func TestNewClient_InvalidURI(t *testing.T) {
	c := NewClient("not-a-uri", "irresearch", "artifacts")

	if err := c.Connect(context.Background()); err == nil {
		t.Fatal("Expected Connect to fail for an invalid URI")
	}
	if err := c.SaveArtifact(context.Background(), nil); err == nil {
		t.Error("Expected SaveArtifact to fail without a collection")
	}
}
