package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vadimbarashkov/flashurl/internal/entity"
)

const (
	// maxCodeAttempts bounds the search for a short code nobody holds yet.
	maxCodeAttempts = 10_000
	// maxSaveAttempts bounds how often a lost insert race is retried.
	maxSaveAttempts = 5
)

// ErrMaxRetriesExceeded is returned when no free short code could be found or
// saving kept conflicting with concurrent writers.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")

type urlRepository interface {
	Save(ctx context.Context, shortCode, longURL string) (*entity.URL, error)
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	RetrieveByLongURL(ctx context.Context, longURL string) (*entity.URL, error)
}

type codeGenerator interface {
	Generate() (string, error)
}

type URLUseCase struct {
	urlRepo   urlRepository
	generator codeGenerator
}

func NewURLUseCase(urlRepo urlRepository, generator codeGenerator) *URLUseCase {
	return &URLUseCase{
		urlRepo:   urlRepo,
		generator: generator,
	}
}

// ShortenURL returns the mapping for longURL, creating it on first use.
// Shortening the same URL again yields the same short code.
func (uc *URLUseCase) ShortenURL(ctx context.Context, longURL string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ShortenURL"

	if !hasHTTPScheme(longURL) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrInvalidURL)
	}

	for i := 0; i < maxSaveAttempts; i++ {
		url, err := uc.urlRepo.RetrieveByLongURL(ctx, longURL)
		if err == nil {
			return url, nil
		}
		if !errors.Is(err, entity.ErrURLNotFound) {
			return nil, fmt.Errorf("%s: failed to look up url: %w", op, err)
		}

		shortCode, err := uc.freeShortCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		url, err = uc.urlRepo.Save(ctx, shortCode, longURL)
		if err != nil {
			// Another request took the code or the URL between the checks and the insert.
			if errors.Is(err, entity.ErrURLExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

func (uc *URLUseCase) freeShortCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		shortCode, err := uc.generator.Generate()
		if err != nil {
			return "", fmt.Errorf("failed to generate short code: %w", err)
		}

		_, err = uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
		if errors.Is(err, entity.ErrURLNotFound) {
			return shortCode, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check short code: %w", err)
		}
	}

	return "", ErrMaxRetriesExceeded
}

// ResolveShortCode returns the mapping stored under shortCode.
func (uc *URLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ResolveShortCode"

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return url, nil
}

func hasHTTPScheme(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}
