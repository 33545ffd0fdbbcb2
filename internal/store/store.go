// Package store provides resource storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/vyrodovalexey/textstore/internal/model"
)

// Store errors.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrEmptyQuery   = errors.New("search query cannot be empty")
	ErrInvalidText  = errors.New("invalid resource text")
	ErrSearchFailed = errors.New("search failed")
)

// DefaultListLimit is the number of resources List returns when the caller
// supplies no usable limit.
const DefaultListLimit = 10

// Store defines the interface for resource storage operations.
type Store interface {
	// List returns the first limit resources in collection order.
	// A limit of zero or less is normalized to DefaultListLimit.
	List(ctx context.Context, limit int) ([]model.Resource, error)

	// Search returns all resources whose text contains the query as a
	// case-insensitive literal substring, in collection order.
	Search(ctx context.Context, query string) ([]model.Resource, error)

	// Get retrieves a resource by its ID.
	Get(ctx context.Context, id string) (*model.Resource, error)

	// Random returns one resource chosen uniformly at random.
	Random(ctx context.Context) (*model.Resource, error)

	// Create validates the text, applies the creator default, and appends
	// a new resource with a generated ID.
	Create(ctx context.Context, creator, text string) (*model.Resource, error)

	// Update replaces the text of an existing resource. The resource's ID
	// and creator are never modified.
	Update(ctx context.Context, id, text string) (*model.Resource, error)

	// Delete removes a resource by its ID and returns the removed resource.
	Delete(ctx context.Context, id string) (*model.Resource, error)

	// Seed bulk-loads bootstrap resources in order, assigning IDs the same
	// way Create does.
	Seed(ctx context.Context, seeds []model.Resource) error

	// Len reports the number of resources currently stored.
	Len() int
}
