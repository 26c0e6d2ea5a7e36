package weather

import (
	"context"
)

// Fetcher retrieves a raw provider document. A JSON null body is returned as a
// nil RawDocument with a nil error; transport and status failures are errors.
// Retries, timeouts and circuit breaking belong to the implementation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (RawDocument, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (RawDocument, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) (RawDocument, error) {
	return f(ctx, url)
}
