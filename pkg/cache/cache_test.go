package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-onboarding/pkg/cache"
	"github.com/goliatone/go-onboarding/pkg/steps"
)

func sampleFlow() steps.Onboarding {
	name := "Fitness"
	draft := false
	return steps.Onboarding{
		Metadata: steps.Metadata{ID: "f1", Name: &name, Draft: &draft},
		Steps: []steps.Step{{
			ID:      "q1",
			Type:    steps.TypeQuestion,
			Payload: json.RawMessage(`{"title":"Goal","multipleAnswer":false,"answers":[{"label":"A","value":"a"}]}`),
		}},
		Configuration: map[string]any{"theme": "dark"},
	}
}

func stores(t *testing.T) map[string]cache.Store {
	t.Helper()
	ctx := context.Background()

	blobStore, err := cache.NewBlobStore(ctx, "mem://", "test/")
	if err != nil {
		t.Fatalf("NewBlobStore: %v", err)
	}

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(server.Close)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]cache.Store{
		"memory": cache.NewMemoryStore(),
		"blob":   blobStore,
		"redis":  cache.NewRedisStore(client, "test:"),
	}
}

func TestCacheRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := cache.New(store)
			defer c.Close()

			key := cache.Key("proj", "en", map[string]string{"country": "FR"})
			if _, ok := c.Read(ctx, key); ok {
				t.Fatalf("expected miss on empty store")
			}

			want := sampleFlow()
			c.Write(ctx, key, want)

			got, ok := c.Read(ctx, key)
			if !ok {
				t.Fatalf("expected hit after write")
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStoresReportNotFound(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, cache.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestCacheUpgradesLegacyStepsArray(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	_ = store.Set(ctx, "legacy", []byte(`[{"id":"s1","type":"Picker","payload":{"title":"Age","pickerType":"age"}}]`))

	flow, ok := cache.New(store).Read(ctx, "legacy")
	if !ok {
		t.Fatalf("expected legacy entry to be readable")
	}
	if flow.Len() != 1 || flow.Steps[0].ID != "s1" {
		t.Fatalf("unexpected flow %+v", flow)
	}
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	_ = store.Set(ctx, "bad", []byte(`{"steps": [`))
	_ = store.Set(ctx, "shape", []byte(`{"metadata": {"id": "x"}}`))

	c := cache.New(store)
	for _, key := range []string{"bad", "shape"} {
		if _, ok := c.Read(ctx, key); ok {
			t.Fatalf("expected %s to be treated as a miss", key)
		}
	}
}

type failingStore struct{ cache.Store }

func (failingStore) Set(context.Context, string, []byte) error { return errors.New("disk full") }

func TestCacheWriteFailureIsSwallowed(t *testing.T) {
	c := cache.New(failingStore{Store: cache.NewMemoryStore()})
	c.Write(context.Background(), "k", sampleFlow())
	if _, ok := c.Read(context.Background(), "k"); ok {
		t.Fatalf("failed write should not be readable")
	}
}

func TestKeyIsStableAcrossParamOrder(t *testing.T) {
	a := cache.Key("proj", "en", map[string]string{"a": "1", "b": "2"})
	b := cache.Key("proj", "en", map[string]string{"b": "2", "a": "1"})
	if a != b {
		t.Fatalf("keys differ: %s vs %s", a, b)
	}
	if a == cache.Key("proj", "fr", map[string]string{"a": "1", "b": "2"}) {
		t.Fatalf("locale must change the key")
	}
}
