package store

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"sync"

	"github.com/vyrodovalexey/textstore/internal/model"
)

// MemoryStore implements Store interface with in-memory storage. Resources
// are kept in insertion order; deletion preserves the order of the
// remaining elements.
type MemoryStore struct {
	mu        sync.RWMutex
	resources []model.Resource
	nextID    int
}

// NewMemoryStore creates a new empty MemoryStore instance.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		resources: make([]model.Resource, 0),
	}
}

// List returns the first limit resources in collection order.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]model.Resource, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list resources: %w", ctx.Err())
	default:
	}

	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.resources) {
		limit = len(s.resources)
	}

	resources := make([]model.Resource, limit)
	copy(resources, s.resources[:limit])

	return resources, nil
}

// Search returns all resources whose text contains the query as a
// case-insensitive literal substring, in collection order.
func (s *MemoryStore) Search(ctx context.Context, query string) ([]model.Resource, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("search resources: %w", ctx.Err())
	default:
	}

	if query == "" {
		return nil, ErrEmptyQuery
	}

	// Escaping keeps pattern metacharacters in user input from reaching
	// the regexp engine; the query always matches as a literal substring.
	pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]model.Resource, 0)
	for _, resource := range s.resources {
		if pattern.MatchString(resource.Text) {
			matches = append(matches, resource)
		}
	}

	if len(matches) == 0 {
		return nil, ErrNotFound
	}

	return matches, nil
}

// Get retrieves a resource by its ID. The match is exact and
// case-sensitive.
func (s *MemoryStore) Get(ctx context.Context, id string) (*model.Resource, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get resource: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.resources {
		if s.resources[i].ID == id {
			resource := s.resources[i]
			return &resource, nil
		}
	}

	return nil, ErrNotFound
}

// Random returns one resource chosen uniformly at random.
func (s *MemoryStore) Random(ctx context.Context) (*model.Resource, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("random resource: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.resources) == 0 {
		return nil, ErrNotFound
	}

	resource := s.resources[rand.Intn(len(s.resources))]

	return &resource, nil
}

// Create adds a new resource to the store and returns it with its
// generated ID.
func (s *MemoryStore) Create(ctx context.Context, creator, text string) (*model.Resource, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create resource: %w", ctx.Err())
	default:
	}

	if err := model.ValidateText(text); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidText, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resource := s.append(model.CreatorOrDefault(creator), text)

	return &resource, nil
}

// Update replaces the text of an existing resource in place. ID and
// creator are left untouched.
func (s *MemoryStore) Update(ctx context.Context, id, text string) (*model.Resource, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("update resource: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	if err := model.ValidateText(text); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidText, err)
	}

	s.resources[idx].Text = text

	resource := s.resources[idx]

	return &resource, nil
}

// Delete removes a resource from the store by its ID and returns the
// removed resource.
func (s *MemoryStore) Delete(ctx context.Context, id string) (*model.Resource, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("delete resource: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	removed := s.resources[idx]
	s.resources = append(s.resources[:idx], s.resources[idx+1:]...)

	return &removed, nil
}

// Seed bulk-loads bootstrap resources in order. Every entry is validated
// before any is stored, so a bad entry never leaves the store partially
// seeded.
func (s *MemoryStore) Seed(ctx context.Context, seeds []model.Resource) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("seed resources: %w", ctx.Err())
	default:
	}

	for i := range seeds {
		if err := model.ValidateText(seeds[i].Text); err != nil {
			return fmt.Errorf("%w: entry %d: %s", ErrInvalidText, i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, seed := range seeds {
		s.append(model.CreatorOrDefault(seed.Creator), seed.Text)
	}

	return nil
}

// Len reports the number of resources currently stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.resources)
}

// append assigns the next ID and appends a resource to the collection.
// Callers must hold the write lock. IDs count up from "1" and are never
// reused within a process run, even after deletions.
func (s *MemoryStore) append(creator, text string) model.Resource {
	s.nextID++
	resource := model.Resource{
		ID:      strconv.Itoa(s.nextID),
		Creator: creator,
		Text:    text,
	}
	s.resources = append(s.resources, resource)

	return resource
}

// indexOf returns the position of the resource with the given ID, or -1.
// Callers must hold at least the read lock.
func (s *MemoryStore) indexOf(id string) int {
	for i := range s.resources {
		if s.resources[i].ID == id {
			return i
		}
	}

	return -1
}
