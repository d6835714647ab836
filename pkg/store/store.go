// Package store persists named graphs for later retrieval.
//
// This package defines the storage interface behind the API's graph
// collection and the CLI's store commands, with implementations for
// different backends:
//   - file: JSON documents in a config directory for CLI usage
//   - mongo: MongoDB for multi-instance server deployments
//
// # Records
//
// A stored graph is a [Record]: the wire-format graph plus an ID, a
// user-chosen name, and timestamps. IDs are UUIDs assigned on first save;
// saving a record that already has an ID overwrites the stored version.
//
// # Usage
//
//	st, err := store.NewFileStore("")  // Uses ~/.config/phylograph/graphs/
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	rec := &store.Record{Name: "toy1", Graph: g}
//	if err := st.Save(ctx, rec); err != nil {
//	    return err
//	}
//	loaded, err := st.Load(ctx, rec.ID)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/arborlab/phylograph/pkg/graph"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Record is a stored graph with its metadata.
type Record struct {
	ID        string      `json:"id" bson:"_id"`
	Name      string      `json:"name" bson:"name"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
	Graph     graph.Graph `json:"graph" bson:"graph"`
}

// Store is the interface for graph storage backends.
type Store interface {
	// Save stores a record. A record without an ID gets one assigned and
	// its CreatedAt set; UpdatedAt is always refreshed. The record is
	// mutated in place.
	Save(ctx context.Context, rec *Record) error

	// Load retrieves a record by ID.
	// Returns ErrNotFound if no record has that ID.
	Load(ctx context.Context, id string) (*Record, error)

	// List returns all records sorted by name.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record by ID.
	// Returns ErrNotFound if no record has that ID.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the store.
	Close() error
}

// stamp assigns an ID and timestamps ahead of a save.
func stamp(rec *Record) {
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
		rec.CreatedAt = now
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
}
