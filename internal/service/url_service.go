package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"trimly-be/internal/cache"
	"trimly-be/internal/entities"
	"trimly-be/internal/errs"
	"trimly-be/internal/models"
	"trimly-be/internal/repository"
	"trimly-be/internal/shortcode"
)

// maxShortenAttempts bounds how many fresh codes Shorten will try when the
// store rejects one as taken before surfacing the conflict to the caller.
const maxShortenAttempts = 5

// urlCacheTTL bounds staleness of the resolve-path cache.
const urlCacheTTL = 1 * time.Hour

// URLService defines the interface for URL business logic
type URLService interface {
	Shorten(req *models.ShortenURLRequest, userID *string) (*models.ShortenURLResponse, error)
	Resolve(shortCode string) (string, error)
	RecordAccess(shortCode string) error
	GetUserURLs(userID string) ([]*models.URLResponse, error)
	UpdateURL(urlID, originalURL, requesterID string) (*models.URLResponse, error)
	DeleteURL(urlID, requesterID string) error
}

type urlService struct {
	repo    repository.URLRepository
	gen     shortcode.Generator
	cache   cache.Cache
	baseURL string
	ctx     context.Context
}

// NewURLService creates a new URL service. cacheClient may be nil; the
// service then reads straight from the repository.
func NewURLService(repo repository.URLRepository, gen shortcode.Generator, cacheClient cache.Cache, baseURL string) URLService {
	svc := &urlService{
		repo:    repo,
		gen:     gen,
		baseURL: baseURL,
		ctx:     context.Background(),
	}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

// shortURL builds the externally visible form of a code.
func (s *urlService) shortURL(code string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, code)
}

func (s *urlService) format(url *entities.URL) *models.URLResponse {
	return &models.URLResponse{
		URLID:       url.ID,
		OriginalURL: url.OriginalURL,
		ShortURL:    s.shortURL(url.ShortCode),
		ClickCount:  url.ClickCount,
		CreatedAt:   url.CreatedAt,
		UpdatedAt:   url.UpdatedAt,
	}
}

func urlCacheKey(shortCode string) string {
	return fmt.Sprintf("url:%s", shortCode)
}

// Shorten generates a short code and persists the mapping. The generator
// does not pre-check uniqueness; when the store rejects a code as taken the
// insert is retried with a fresh code up to maxShortenAttempts times.
func (s *urlService) Shorten(req *models.ShortenURLRequest, userID *string) (*models.ShortenURLResponse, error) {
	var url *entities.URL

	backoff := retry.WithMaxRetries(maxShortenAttempts-1, retry.NewConstant(5*time.Millisecond))
	err := retry.Do(s.ctx, backoff, func(ctx context.Context) error {
		code, err := s.gen.Generate(shortcode.DefaultLength)
		if err != nil {
			return fmt.Errorf("failed to generate short code: %w", err)
		}

		created, err := s.repo.Create(code, req.URL, userID)
		if err != nil {
			if errs.IsConflict(err) {
				// Another record holds this code; try a fresh one.
				return retry.RetryableError(err)
			}
			return err
		}
		url = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(s.ctx, urlCacheKey(url.ShortCode), url.OriginalURL, urlCacheTTL)
	}

	return &models.ShortenURLResponse{
		ShortURL: s.shortURL(url.ShortCode),
	}, nil
}

// Resolve returns the original URL behind a short code. It does not mutate
// state; access accounting is RecordAccess's job.
func (s *urlService) Resolve(shortCode string) (string, error) {
	if shortCode == "" {
		return "", fmt.Errorf("short code is required: %w", errs.ErrInvalidArgument)
	}

	// Try cache first (if available)
	if s.cache != nil {
		if original, err := s.cache.Get(s.ctx, urlCacheKey(shortCode)); err == nil && original != "" {
			return original, nil
		}
	}

	url, err := s.repo.FindByShortCode(shortCode)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		s.cache.Set(s.ctx, urlCacheKey(shortCode), url.OriginalURL, urlCacheTTL)
	}

	return url.OriginalURL, nil
}

// RecordAccess bumps the click counter for a short code. A code that matches
// nothing succeeds as a no-op; callers fire this off without waiting on it
// and only log failures.
func (s *urlService) RecordAccess(shortCode string) error {
	if shortCode == "" {
		return fmt.Errorf("short code is required: %w", errs.ErrInvalidArgument)
	}
	return s.repo.IncrementClickCount(shortCode)
}

// GetUserURLs retrieves all live URLs owned by a user, formatted for clients.
func (s *urlService) GetUserURLs(userID string) ([]*models.URLResponse, error) {
	urls, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.URLResponse, len(urls))
	for i, url := range urls {
		responses[i] = s.format(url)
	}
	return responses, nil
}

// UpdateURL replaces the destination of a URL record. Existence is checked
// before ownership, so a missing or tombstoned id reports not found while an
// ownership mismatch reports forbidden.
func (s *urlService) UpdateURL(urlID, originalURL, requesterID string) (*models.URLResponse, error) {
	url, err := s.repo.FindByID(urlID)
	if err != nil {
		return nil, err
	}

	if !url.OwnedBy(requesterID) {
		return nil, fmt.Errorf("you do not have permission to modify this URL: %w", errs.ErrForbidden)
	}

	updated, err := s.repo.Update(urlID, originalURL)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Delete(s.ctx, urlCacheKey(updated.ShortCode))
	}

	return s.format(updated), nil
}

// DeleteURL soft-deletes a URL record, with the same existence and ownership
// checks as UpdateURL. The record is never physically removed.
func (s *urlService) DeleteURL(urlID, requesterID string) error {
	url, err := s.repo.FindByID(urlID)
	if err != nil {
		return err
	}

	if !url.OwnedBy(requesterID) {
		return fmt.Errorf("you do not have permission to modify this URL: %w", errs.ErrForbidden)
	}

	if err := s.repo.SoftDelete(urlID); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Delete(s.ctx, urlCacheKey(url.ShortCode))
	}

	return nil
}
