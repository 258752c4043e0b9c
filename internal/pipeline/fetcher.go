package pipeline

import "context"

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_fetcher.go -package=mocks github.com/nao1215/trendscan/internal/pipeline Fetcher

// Fetcher downloads a URL as decoded text. *fetch.Client implements it.
type Fetcher interface {
	GetText(ctx context.Context, url string) (string, error)
}
