package cache

import "time"

// CacheService is the caching behavior the usecases depend on. The catalog
// usecase uses it to keep remote product lookups off the hot path.
type CacheService interface {
	// Get retrieves a value; the bool reports whether the key was present.
	Get(key string) (interface{}, bool)

	// Set stores a value for the given duration.
	Set(key string, value interface{}, duration time.Duration)

	// Delete removes a value.
	Delete(key string)

	// Flush removes all items.
	Flush()
}
