// Package cache persists the last fetched onboarding flow so later sessions
// can start without a network round trip.
//
// Cache is best effort. Read treats every failure as a miss and Write never
// returns storage errors; both log through the configured zap logger. Stores
// are pluggable: BlobStore (gocloud.dev buckets such as file:// or mem://),
// RedisStore and MemoryStore.
package cache
