package repository

// CacheRepository caches serialized calculator responses keyed by a request
// digest. A miss is just (value, false); callers recompute.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
