// Package session keeps each wizard pipeline in memory for the lifetime of
// one user session. Nothing survives a process restart.
package session

import (
	"time"

	"github.com/archguru/advisor-backend/internal/entity"
	"github.com/archguru/advisor-backend/internal/usecase/wizard"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store maps session IDs to their pipelines with a sliding TTL: every access
// renews the expiration, so only abandoned sessions are evicted.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewStore(ttl, cleanupInterval time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Create registers a new pipeline and returns its session ID.
func (s *Store) Create(pipeline *wizard.Pipeline) string {
	id := uuid.New().String()
	s.cache.Set(id, pipeline, s.ttl)
	return id
}

// Get returns the pipeline of the given session and renews its TTL.
func (s *Store) Get(id string) (*wizard.Pipeline, error) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, entity.ErrSessionNotFound
	}

	pipeline := value.(*wizard.Pipeline)
	s.cache.Set(id, pipeline, s.ttl)

	return pipeline, nil
}

// Delete drops the session. Deleting an unknown ID is a no-op.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
