package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/flashurl/internal/entity"
)

type MockURLRepository struct {
	mock.Mock
}

func (r *MockURLRepository) Save(ctx context.Context, shortCode, longURL string) (*entity.URL, error) {
	args := r.Called(ctx, shortCode, longURL)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (r *MockURLRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := r.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (r *MockURLRepository) RetrieveByLongURL(ctx context.Context, longURL string) (*entity.URL, error) {
	args := r.Called(ctx, longURL)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

type MockCodeGenerator struct {
	mock.Mock
}

func (g *MockCodeGenerator) Generate() (string, error) {
	args := g.Called()
	return args.String(0), args.Error(1)
}
