package http

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/flashurl/internal/entity"
)

type MockURLUseCase struct {
	mock.Mock
}

func (uc *MockURLUseCase) ShortenURL(ctx context.Context, longURL string) (*entity.URL, error) {
	args := uc.Called(ctx, longURL)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (uc *MockURLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := uc.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

type MockQRRenderer struct {
	mock.Mock
}

func (r *MockQRRenderer) Render(content string) (string, error) {
	args := r.Called(content)
	return args.String(0), args.Error(1)
}
