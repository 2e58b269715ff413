package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vadimbarashkov/shortly/internal/models"
	"github.com/vadimbarashkov/shortly/internal/storage"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrMaxRetriesExceeded is returned when the maximum number of retries for generating a short code is exceeded.
// With a 64-character alphabet and 6-character codes this should be effectively unreachable.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")

// URLStorage defines the interface for working with URLs at the business logic layer.
type URLStorage interface {
	// Create inserts a new shortened URL into the storage.
	// Returns storage.ErrShortCodeExists if the short code is already taken.
	Create(ctx context.Context, shortCode, originalURL string) (*models.URL, error)

	// RetrieveAndIncrement retrieves a URL by its short code and records one access.
	// Returns storage.ErrURLNotFound if the short code doesn't exist.
	RetrieveAndIncrement(ctx context.Context, shortCode string) (*models.URL, error)

	// GetAll returns a snapshot of all stored URLs.
	GetAll(ctx context.Context) ([]*models.URL, error)

	// Stats returns the aggregate counters across all stored URLs.
	Stats(ctx context.Context) (*models.Stats, error)
}

// URLService provides methods to manage URL shortening operations.
// The service uses a URLStorage interface to interact with the underlying storage.
type URLService struct {
	storage         URLStorage
	shortCodeLength int
}

// NewURLService creates a new instance of URLService with the provided storage and short code length.
func NewURLService(storage URLStorage, shortCodeLength int) *URLService {
	return &URLService{
		storage:         storage,
		shortCodeLength: shortCodeLength,
	}
}

// ShortenURL generates a short code for the provided original URL and stores it.
// It attempts to generate a unique short code up to a maximum number of retries.
// If successful, it returns the created URL model; otherwise, it returns an error.
// The URL string is treated as opaque; syntactic validation is the caller's concern.
func (s *URLService) ShortenURL(ctx context.Context, originalURL string) (*models.URL, error) {
	const op = "service.URLService.ShortenURL"
	const maxRetries = 5

	for i := 0; i < maxRetries; i++ {
		shortCode, err := gonanoid.New(s.shortCodeLength)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		url, err := s.storage.Create(ctx, shortCode, originalURL)
		if err != nil {
			if errors.Is(err, storage.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

// ResolveShortCode retrieves the original URL associated with the provided short code
// and records the access. If the short code exists, it returns the corresponding URL
// model; otherwise, it returns an error wrapping storage.ErrURLNotFound.
func (s *URLService) ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "service.URLService.ResolveShortCode"

	url, err := s.storage.RetrieveAndIncrement(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return url, nil
}

// ListURLs returns a snapshot of all shortened URLs. Ordering is left to the caller.
func (s *URLService) ListURLs(ctx context.Context) ([]*models.URL, error) {
	const op = "service.URLService.ListURLs"

	urls, err := s.storage.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return urls, nil
}

// GetStats returns the aggregate counters across all shortened URLs.
func (s *URLService) GetStats(ctx context.Context) (*models.Stats, error) {
	const op = "service.URLService.GetStats"

	stats, err := s.storage.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get stats: %w", op, err)
	}

	return stats, nil
}
