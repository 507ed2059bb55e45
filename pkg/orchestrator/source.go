package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-onboarding/pkg/client"
	"github.com/goliatone/go-onboarding/pkg/session"
	"github.com/goliatone/go-onboarding/pkg/steps"
)

// SourceKind enumerates where a flow file is read from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

// Source identifies a local flow file.
type Source interface {
	Kind() SourceKind
	Location() string
}

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

// SourceFromFile points at a flow file on disk.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS points at a flow file inside the fs.FS given to LoadFlow.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// LoadFlow reads and parses the flow at src. fsys is only used for
// SourceKindFS sources.
func LoadFlow(ctx context.Context, fsys fs.FS, src Source) (steps.Onboarding, error) {
	if src == nil {
		return steps.Onboarding{}, errors.New("orchestrator: flow source is nil")
	}
	if err := ctx.Err(); err != nil {
		return steps.Onboarding{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if fsys == nil {
			return steps.Onboarding{}, errors.New("orchestrator: filesystem is not configured")
		}
		data, err = fs.ReadFile(fsys, src.Location())
	default:
		err = fmt.Errorf("orchestrator: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return steps.Onboarding{}, fmt.Errorf("orchestrator: read flow %s: %w", src.Location(), err)
	}

	flow, err := ParseFlow(data)
	if err != nil {
		return steps.Onboarding{}, fmt.Errorf("orchestrator: parse flow %s: %w", src.Location(), err)
	}
	return flow, nil
}

// ParseFlow decodes a flow document written as JSON or YAML. A bare steps
// array is accepted as a flow without metadata.
func ParseFlow(data []byte) (steps.Onboarding, error) {
	if !json.Valid(data) {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return steps.Onboarding{}, err
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return steps.Onboarding{}, fmt.Errorf("convert yaml: %w", err)
		}
		data = converted
	}

	var flow steps.Onboarding
	if err := json.Unmarshal(data, &flow); err != nil {
		var list []steps.Step
		if listErr := json.Unmarshal(data, &list); listErr != nil {
			return steps.Onboarding{}, err
		}
		flow.Steps = list
	}
	if flow.Steps == nil {
		return steps.Onboarding{}, errors.New("flow has no steps")
	}
	return flow, nil
}

// StaticFetcher serves a fixed flow to a session, standing in for the
// studio service when running local flow files.
type StaticFetcher struct {
	Project   string
	Flow      steps.Onboarding
	IsSandbox bool
}

var _ session.Fetcher = (*StaticFetcher)(nil)

func (f *StaticFetcher) ProjectID() string {
	if f.Project == "" {
		return "local"
	}
	return f.Project
}

func (f *StaticFetcher) Sandbox() bool { return f.IsSandbox }

func (f *StaticFetcher) GetSteps(ctx context.Context, _ client.Options, _ map[string]string) (client.Response, error) {
	if err := ctx.Err(); err != nil {
		return client.Response{}, err
	}
	id := f.Flow.Metadata.ID
	return client.Response{
		Onboarding: f.Flow,
		Headers:    client.Headers{OnboardingID: &id, OnboardingName: f.Flow.Metadata.Name},
	}, nil
}
