package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortly/internal/models"
	"github.com/vadimbarashkov/shortly/internal/storage"
)

// urlRecord is the internal representation of a stored URL. The access count
// is an atomic so concurrent resolutions can bump it without taking the
// storage write lock.
type urlRecord struct {
	id          string
	shortCode   string
	originalURL string
	createdAt   time.Time
	accessCount atomic.Int64
}

func (r *urlRecord) ToURL() *models.URL {
	return &models.URL{
		ID:          r.id,
		ShortCode:   r.shortCode,
		OriginalURL: r.originalURL,
		AccessCount: r.accessCount.Load(),
		CreatedAt:   r.createdAt,
	}
}

// URLStorage is an in-memory URL storage. It owns all records exclusively;
// every method returns copies, so callers can never mutate stored state.
// All methods are safe for concurrent use.
type URLStorage struct {
	mu   sync.RWMutex
	urls map[string]*urlRecord

	urlCount   atomic.Int64
	clickCount atomic.Int64
}

func New() *URLStorage {
	return &URLStorage{
		urls: make(map[string]*urlRecord),
	}
}

// Create inserts a new URL record under the given short code.
// Returns storage.ErrShortCodeExists if the code is already taken, which the
// caller treats as a signal to retry with a fresh code.
func (s *URLStorage) Create(ctx context.Context, shortCode, originalURL string) (*models.URL, error) {
	const op = "storage.memory.URLStorage.Create"

	rec := &urlRecord{
		id:          uuid.NewString(),
		shortCode:   shortCode,
		originalURL: originalURL,
		createdAt:   time.Now(),
	}

	s.mu.Lock()
	if _, exists := s.urls[shortCode]; exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, storage.ErrShortCodeExists)
	}
	s.urls[shortCode] = rec
	s.urlCount.Add(1)
	s.mu.Unlock()

	return rec.ToURL(), nil
}

// RetrieveAndIncrement looks up a URL record by its short code and registers
// one access: the record's access count and the global click counter each go
// up by exactly one. The increments happen synchronously, so stats read after
// this call returns will reflect the access. The returned copy carries the
// post-increment count.
func (s *URLStorage) RetrieveAndIncrement(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "storage.memory.URLStorage.RetrieveAndIncrement"

	s.mu.RLock()
	rec, exists := s.urls[shortCode]
	s.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrURLNotFound)
	}

	count := rec.accessCount.Add(1)
	s.clickCount.Add(1)

	url := rec.ToURL()
	url.AccessCount = count

	return url, nil
}

// GetAll returns a snapshot of all stored records. Records created after the
// snapshot begins may be missed; records present at the start never are.
// Order is unspecified.
func (s *URLStorage) GetAll(ctx context.Context) ([]*models.URL, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	urls := make([]*models.URL, 0, len(s.urls))
	for _, rec := range s.urls {
		urls = append(urls, rec.ToURL())
	}

	return urls, nil
}

// Stats returns the aggregate counters. They are maintained incrementally,
// so this never walks the record set. The two counters are updated
// independently of each other, which keeps them eventually consistent with
// the per-record sums rather than transactionally fused.
func (s *URLStorage) Stats(ctx context.Context) (*models.Stats, error) {
	return &models.Stats{
		TotalURLs:   s.urlCount.Load(),
		TotalClicks: s.clickCount.Load(),
	}, nil
}
