package session_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-onboarding/pkg/cache"
	"github.com/goliatone/go-onboarding/pkg/client"
	"github.com/goliatone/go-onboarding/pkg/session"
	"github.com/goliatone/go-onboarding/pkg/steps"
	"github.com/goliatone/go-onboarding/pkg/testsupport"
)

func servedFlow(t *testing.T) steps.Onboarding {
	t.Helper()
	return steps.Onboarding{
		Metadata: steps.Metadata{ID: "served"},
		Steps: []steps.Step{
			testsupport.MustStep(t, "intro", steps.TypeCarousel, map[string]any{
				"screens": []map[string]any{{
					"mediaSource": map[string]any{"type": "image", "localPathId": "intro"},
					"title":       "Welcome",
					"subtitle":    "Let's begin",
				}},
			}),
			testsupport.MustStep(t, "rate", steps.TypeRatings, map[string]any{
				"title":        "Like it?",
				"subtitle":     "Tell us",
				"socialProofs": []map[string]any{},
			}),
		},
	}
}

func TestLoadAgainstServerUsesCacheOnSecondSession(t *testing.T) {
	server := testsupport.NewFlowServer(t, servedFlow(t), map[string]string{
		client.HeaderOnboardingID:   "served",
		client.HeaderOnboardingName: "Spring",
	})
	c, err := client.New("proj-9", client.WithBaseURL(server.URL), client.WithPlatform("linux"))
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	store := cache.New(cache.NewMemoryStore())
	opts := []session.Option{
		session.WithCache(store),
		session.WithLocale("de"),
		session.WithAudienceParams(map[string]string{"plan": "pro"}),
	}

	first, err := session.New(c, opts...)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	flow, err := first.Load(testsupport.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if flow.Len() != 2 || flow.Steps[1].ID != "rate" {
		t.Fatalf("unexpected flow %+v", flow)
	}
	if name := first.Headers().OnboardingName; name == nil || *name != "Spring" {
		t.Fatalf("onboarding name header = %v", name)
	}

	second, err := session.New(c, opts...)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	cached, err := second.Load(testsupport.Context())
	if err != nil {
		t.Fatalf("load cached: %v", err)
	}
	if cached.Metadata.ID != "served" || cached.Len() != 2 {
		t.Fatalf("unexpected cached flow %+v", cached)
	}
	if server.Hits() != 1 {
		t.Fatalf("expected one request, got %d", server.Hits())
	}

	want := map[string]string{
		"projectId": "proj-9",
		"platform":  "linux",
		"locale":    "de",
		"plan":      "pro",
	}
	if diff := cmp.Diff(want, server.Queries()[0]); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
}
