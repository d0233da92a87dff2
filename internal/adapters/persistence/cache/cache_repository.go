package cache

import "context"

// CacheRepository abstracts the evaluation result cache. The engine is
// deterministic, so a cached verdict for an identical input tuple is
// always valid until the underlying profile or product changes.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}
