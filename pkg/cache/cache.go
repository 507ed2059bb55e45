package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/goliatone/go-onboarding/pkg/steps"
)

// KeyPrefix namespaces every cache key.
const KeyPrefix = "onboarding-studio"

// ReadError wraps a store or decode failure on Read.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cache: read %s: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps a store or encode failure on Write.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cache: write %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger for swallowed read/write failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Cache reads and writes whole flows through a Store.
type Cache struct {
	store  Store
	logger *zap.Logger
}

// New wraps store. A nil store falls back to a MemoryStore.
func New(store Store, opts ...Option) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	c := &Cache{store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Key derives the storage key for a project, locale and audience params.
// Params are hashed in sorted order so equal maps map to equal keys.
func Key(projectID, locale string, params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	sum := sha256.Sum256([]byte(values.Encode()))
	if locale == "" {
		locale = "default"
	}
	return strings.Join([]string{KeyPrefix, projectID, locale, hex.EncodeToString(sum[:8])}, ":")
}

// Read returns the cached flow under key. Any failure is logged and reported
// as a miss.
func (c *Cache) Read(ctx context.Context, key string) (steps.Onboarding, bool) {
	flow, err := c.read(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("onboarding cache read failed", zap.Error(&ReadError{Key: key, Err: err}))
		}
		return steps.Onboarding{}, false
	}
	return flow, true
}

// Write stores flow under key, logging failures.
func (c *Cache) Write(ctx context.Context, key string, flow steps.Onboarding) {
	data, err := json.Marshal(flow)
	if err == nil {
		err = c.store.Set(ctx, key, data)
	}
	if err != nil {
		c.logger.Warn("onboarding cache write failed", zap.Error(&WriteError{Key: key, Err: err}))
	}
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}

func (c *Cache) read(ctx context.Context, key string) (steps.Onboarding, error) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		return steps.Onboarding{}, err
	}
	if !gjson.ValidBytes(data) {
		return steps.Onboarding{}, errors.New("corrupt entry")
	}

	// Older clients persisted only the steps array.
	if root := gjson.ParseBytes(data); root.IsArray() {
		var list []steps.Step
		if err := json.Unmarshal(data, &list); err != nil {
			return steps.Onboarding{}, err
		}
		return steps.Onboarding{Steps: list}, nil
	}
	if !gjson.GetBytes(data, "steps").IsArray() {
		return steps.Onboarding{}, errors.New("entry has no steps")
	}

	var flow steps.Onboarding
	if err := json.Unmarshal(data, &flow); err != nil {
		return steps.Onboarding{}, err
	}
	return flow, nil
}
