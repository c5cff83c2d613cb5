package listing

import (
	"context"

	"github.com/ravikiranprk/pokedexter/internal/catalog"
)

// Fetch runs req against f and packages the outcome for Apply.
func Fetch(ctx context.Context, f catalog.Fetcher, req Request) Result {
	page, err := f.FetchPage(ctx, req.Filter, req.Cursor)
	return Result{Request: req, Page: page, Err: err}
}
