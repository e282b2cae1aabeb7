// Package resultcache memoizes classification results.
//
// Classification is pure, so a result can be reused for an identical input.
// Cached wraps any classifier and consults a Store before running it. Keys
// are the classifier type plus the xxhash of the user agent; absences are
// cached as well as matches. Invariant errors are returned to the caller
// and never stored.
//
// Two stores are provided: MemoryStore, a bounded LRU with optional expiry,
// and RedisStore, which shares results between processes through go-redis.
//
// Cached does not coordinate concurrent misses: two goroutines missing the
// same key both classify and both write, and the last write wins. Both
// writes hold the same value, so readers always see a correct result.
// Store failures are logged and bypassed; they never fail a classification.
package resultcache
