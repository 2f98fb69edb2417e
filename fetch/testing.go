package fetch

import (
	"context"

	"github.com/stretchr/testify/mock"
)

const (
	FetcherFetchTextMethod = "FetchText"
	FetcherFetchJSONMethod = "FetchJSON"
	FetcherPostJSONMethod  = "PostJSON"
)

// Ensure MockFetcher implements Fetcher
var _ Fetcher = (*MockFetcher)(nil)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchText(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

// FetchJSON leaves out untouched, fill it from the expectation with Run.
func (m *MockFetcher) FetchJSON(ctx context.Context, url string, out any) error {
	args := m.Called(ctx, url, out)
	return args.Error(0)
}

func (m *MockFetcher) PostJSON(ctx context.Context, url string, headers map[string]string, body any) error {
	args := m.Called(ctx, url, headers, body)
	return args.Error(0)
}
