package attachment

import (
	"sync"

	"github.com/google/uuid"
)

// Image is an opaque picked or captured picture. The ledger never looks
// inside the bytes; the content type only matters when serving it back.
type Image struct {
	Data        []byte
	ContentType string
}

// Store keeps images attached to expenses for the lifetime of the
// process. Entries are never persisted: restarting loses them, and an
// entry may outlive its expense. Both are accepted behavior, so lookups
// never fail and no eviction runs. Safe for concurrent readers.
type Store struct {
	mu     sync.RWMutex
	images map[uuid.UUID]Image
}

func NewStore() *Store {
	return &Store{images: map[uuid.UUID]Image{}}
}

// Attach stores the image for the given expense id, replacing any
// previous one.
func (s *Store) Attach(id uuid.UUID, image Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[id] = image
}

func (s *Store) Get(id uuid.UUID) (Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	image, ok := s.images[id]
	return image, ok
}

func (s *Store) Has(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.images[id]
	return ok
}

// Forget drops the entry for the given id. Forgetting an id that has no
// entry is a no-op.
func (s *Store) Forget(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.images, id)
}

func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}
