// Package ratelimiter implements token bucket rate limiting over a pluggable
// bucket store.
//
// A Bucket holds Capacity tokens per key and adds RefillRate tokens every
// RefillInterval, never exceeding Capacity. Each Allow call consumes one token;
// a request is allowed while the key still has tokens.
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 6 * time.Second,
//	})
//	res, err := limiter.Allow(ctx, clientIP)
//	if err == nil && !res.Allowed() {
//		// reject, retry after res.RetryAfter()
//	}
//
// MemoryStore drops buckets that have not been touched for an hour when its
// cleanup loop runs (see MemoryStore.Run).
package ratelimiter
