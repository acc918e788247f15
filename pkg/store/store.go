// Package store persists built dependency graphs as snapshots.
//
// A snapshot is one graph built from one lock file for one target, frozen
// at build time with its serialized form. The depscope server stores a
// snapshot per build request and serves queries against it by id, so
// clients can keep querying a graph without re-uploading the lock file.
//
// Two backends are provided: [MemoryStore] for development and testing,
// and [MongoStore] for deployments that need snapshots to survive
// restarts and be shared between instances.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/depscope/depscope/pkg/graph"
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one stored graph build.
type Snapshot struct {
	ID        string      `json:"id" bson:"_id"`
	Project   string      `json:"project" bson:"project"`
	Framework string      `json:"framework" bson:"framework"`
	Runtime   string      `json:"runtime,omitempty" bson:"runtime,omitempty"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	Graph     graph.Graph `json:"graph" bson:"graph"`
}

// New creates a snapshot with a fresh id and the current time.
func New(project, framework, runtime string, g graph.Graph) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		Project:   project,
		Framework: framework,
		Runtime:   runtime,
		CreatedAt: time.Now().UTC(),
		Graph:     g,
	}
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Put stores a snapshot, replacing any existing snapshot with the same id.
	Put(ctx context.Context, s *Snapshot) error

	// Get retrieves a snapshot by id.
	// Returns ErrNotFound if the snapshot doesn't exist.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Delete removes a snapshot. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
