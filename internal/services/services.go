package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/venturematch/backend/internal/pkg/errors"
)

// withStoreTimeout bounds calls into the authoritative stores. Cache calls
// are not bounded here; the cache backend carries its own timeouts and all
// cache errors degrade to recomputation anyway.
func withStoreTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// storeErr classifies an authoritative-store failure. NotFound and
// validation sentinels pass through untouched; anything else becomes a
// dependency error for the caller to surface as 5xx.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pkgerrors.ErrNotFound) || errors.Is(err, pkgerrors.ErrInvalidArgument) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, pkgerrors.ErrDependencyUnavailable, err)
}
