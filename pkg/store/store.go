// Package store persists computed charts so they can be listed and
// re-rendered without the original GEDCOM file.
//
// The Store interface has two implementations:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Server
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Persist a chart:
//
//	rec := store.NewRecord("smith family", treeHash, c)
//	if err := st.Save(ctx, rec); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sosatree/sosatree/pkg/chart"
)

// Record is one persisted chart with its identifying metadata.
type Record struct {
	ID        string      `json:"id" bson:"_id"`
	Name      string      `json:"name" bson:"name"`
	TreeHash  string      `json:"tree_hash,omitempty" bson:"tree_hash,omitempty"`
	Chart     chart.Chart `json:"chart" bson:"chart"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

// Summary is a Record without the chart payload, for listings.
type Summary struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	RootXref    string    `json:"root_xref" bson:"root_xref"`
	RootName    string    `json:"root_name,omitempty" bson:"root_name,omitempty"`
	Generations int       `json:"generations" bson:"generations"`
	Orientation string    `json:"orientation" bson:"orientation"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// NewRecord builds a record with a fresh UUID and timestamps.
func NewRecord(name, treeHash string, c chart.Chart) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		TreeHash:  treeHash,
		Chart:     c,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// summary projects a record to its listing form.
func (r *Record) summary() Summary {
	return Summary{
		ID:          r.ID,
		Name:        r.Name,
		RootXref:    r.Chart.RootXref,
		RootName:    r.Chart.RootName,
		Generations: r.Chart.Generations,
		Orientation: r.Chart.Orientation,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Store is the interface for chart storage backends.
type Store interface {
	// Save inserts or replaces a record by ID, refreshing UpdatedAt.
	Save(ctx context.Context, rec *Record) error

	// Load retrieves a record by ID.
	// Returns a CHART_NOT_FOUND error if no record exists.
	Load(ctx context.Context, id string) (*Record, error)

	// List returns summaries of all records, most recently updated first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a record.
	// Returns a CHART_NOT_FOUND error if no record exists.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
