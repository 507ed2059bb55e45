package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goliatone/go-onboarding/pkg/orchestrator"
	"github.com/goliatone/go-onboarding/pkg/steps"
)

// MustLoadFlow reads a JSON or YAML flow fixture. Testing helpers fail the
// test on error to keep contract tests concise.
func MustLoadFlow(t *testing.T, path string) steps.Onboarding {
	t.Helper()

	flow, err := LoadFlow(path)
	if err != nil {
		t.Fatalf("load flow: %v", err)
	}
	return flow
}

// LoadFlow returns a flow without requiring testing.T, allowing callers to
// wire fixtures in setup functions.
func LoadFlow(path string) (steps.Onboarding, error) {
	if path == "" {
		return steps.Onboarding{}, errors.New("testsupport: flow path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return steps.Onboarding{}, fmt.Errorf("testsupport: read flow: %w", err)
	}
	flow, err := orchestrator.ParseFlow(data)
	if err != nil {
		return steps.Onboarding{}, fmt.Errorf("testsupport: parse flow: %w", err)
	}
	return flow, nil
}

// MustStep builds a step whose payload is the JSON encoding of payload.
func MustStep(t *testing.T, id string, typ steps.Type, payload any) steps.Step {
	t.Helper()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return steps.Step{ID: id, Type: typ, Name: id, Payload: raw}
}

// FlowServer serves a fixed flow on the get-onboarding-steps endpoint and
// records the query of every request.
type FlowServer struct {
	*httptest.Server

	mu      sync.Mutex
	queries []map[string]string
}

// NewFlowServer starts a server answering with flow and the given response
// headers. The server is closed when the test ends.
func NewFlowServer(t *testing.T, flow steps.Onboarding, headers map[string]string) *FlowServer {
	t.Helper()

	body, err := json.Marshal(flow)
	if err != nil {
		t.Fatalf("marshal flow: %v", err)
	}
	fs := &FlowServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := make(map[string]string)
		for key := range r.URL.Query() {
			query[key] = r.URL.Query().Get(key)
		}
		fs.mu.Lock()
		fs.queries = append(fs.queries, query)
		fs.mu.Unlock()

		for key, value := range headers {
			w.Header().Set(key, value)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(fs.Close)
	return fs
}

// Queries returns the query parameters of every request served so far.
func (s *FlowServer) Queries() []map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]string, len(s.queries))
	copy(out, s.queries)
	return out
}

// Hits reports how many requests the server answered.
func (s *FlowServer) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
