//go:generate mockgen -destination=./mocks/orchestrator.go . SourceLoader,Downloader,Materializer,HookRunner

package orchestrator

import (
	"context"

	"github.com/glorpus-work/fetchy/pkg/download"
	"github.com/glorpus-work/fetchy/pkg/hook"
	"github.com/glorpus-work/fetchy/pkg/platform"
	"github.com/glorpus-work/fetchy/pkg/repository"
	"github.com/glorpus-work/fetchy/pkg/resolver"
	"github.com/glorpus-work/fetchy/pkg/source"
)

// SourceLoader fetches and merges the package indices of the configured sources.
type SourceLoader interface {
	LoadAll(ctx context.Context, sources []source.Source) (*repository.Repository, error)
}

// Downloader handles archive downloading.
type Downloader interface {
	FetchAll(ctx context.Context, items []download.Item, opts download.Options) (map[string]string, error)
}

// Materializer unpacks archives into a root tree.
type Materializer interface {
	Root() string
	MaterializeAll(ctx context.Context, pkgs []*repository.Package, archives map[string]string, before func(*repository.Package)) error
	Finish() ([]string, error)
}

// HookRunner runs the user scripts registered for a hook type.
type HookRunner interface {
	ExecuteContext(ctx context.Context, hookType hook.HookType, hctx hook.HookContext) error
}

// Orchestrator ties source loading, resolution, downloads and materialization together.
type Orchestrator struct {
	Sources SourceLoader
	DL      Downloader
	Scripts HookRunner // optional
	Hooks   Hooks      // Hooks for progress and event notifications
}

// Event phases.
const (
	PhaseLoading       = "loading"
	PhaseResolving     = "resolving"
	PhaseDownloading   = "downloading"
	PhaseMaterializing = "materializing"
	PhaseHooks         = "hooks"
	PhaseDone          = "done"
)

// Event represents a simple progress notification.
type Event struct {
	Phase string
	ID    string // package name, when the event concerns one
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Request describes what to resolve and where from.
type Request struct {
	Platform platform.Platform
	Sources  []source.Source
	Packages []string
	Exclude  []string
}

// Options control orchestrator execution.
type Options struct {
	// CacheDir receives downloaded archives; it must be absolute.
	CacheDir    string
	Concurrency int
	Strict      bool
}

// Result is the outcome of a full extraction.
type Result struct {
	Closure  *resolver.Closure
	Archives map[string]string
	Manifest []string
	BinDirs  []string
}
