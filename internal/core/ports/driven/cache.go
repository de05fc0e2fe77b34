package driven

// ResultCache is a short-TTL key/value cache for shaped responses.
// Entries expire a fixed interval after insertion; reads never extend
// the lifetime. A hit returns the previously stored value unchanged.
type ResultCache interface {
	// Get returns the cached value for key, or false if absent/expired.
	Get(key string) (any, bool)

	// Set stores value under key with the cache's fixed TTL.
	Set(key string, value any)
}
