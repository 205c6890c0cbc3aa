package cache

import (
	"encoding/json"
	"time"
)

// ResponseCache is the cache API the controllers consume: get, set with
// a TTL, and invalidate. The engine itself never reads the cache; only
// the surrounding API layer does.
type ResponseCache interface {
	Get(key string) (json.RawMessage, bool)
	Set(key string, value any, ttl time.Duration) error
	Delete(key string)
}
