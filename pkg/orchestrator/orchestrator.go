package orchestrator

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/glorpus-work/fetchy/pkg/cache"
	"github.com/glorpus-work/fetchy/pkg/download"
	"github.com/glorpus-work/fetchy/pkg/hook"
	"github.com/glorpus-work/fetchy/pkg/materializer"
	"github.com/glorpus-work/fetchy/pkg/repository"
	"github.com/glorpus-work/fetchy/pkg/resolver"
)

// New constructs an Orchestrator. scripts may be nil.
func New(sources SourceLoader, dl Downloader, scripts HookRunner, hooks Hooks) *Orchestrator {
	return &Orchestrator{
		Sources: sources,
		DL:      dl,
		Scripts: scripts,
		Hooks:   hooks,
	}
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Resolve loads the sources of req, checks that every requested package
// exists and returns the dependency closure. Post-resolve hooks run last.
func (o *Orchestrator) Resolve(ctx context.Context, req Request, opts Options) (*resolver.Closure, error) {
	if o.Sources == nil {
		return nil, fmt.Errorf("%w: no source loader", ErrNotConfigured)
	}

	emit(o.Hooks, Event{Phase: PhaseLoading, Msg: fmt.Sprintf("%d sources", len(req.Sources))})
	repo, err := o.Sources.LoadAll(ctx, req.Sources)
	if err != nil {
		return nil, err
	}
	if err := checkRequested(repo, req.Packages, req.Exclude); err != nil {
		return nil, err
	}

	emit(o.Hooks, Event{Phase: PhaseResolving, Msg: strings.Join(req.Packages, " ")})
	closure, err := resolver.New(repo, resolver.Options{Strict: opts.Strict}).Resolve(req.Packages, req.Exclude)
	if err != nil {
		return nil, err
	}

	if err := o.runScripts(ctx, hook.PostResolve, hookContext(req, closure, "", nil)); err != nil {
		return nil, err
	}
	return closure, nil
}

// Download fetches the archive of every package in closure into opts.CacheDir
// and returns their local paths keyed by package name.
func (o *Orchestrator) Download(ctx context.Context, closure *resolver.Closure, opts Options) (map[string]string, error) {
	if o.DL == nil {
		return nil, fmt.Errorf("%w: no download manager", ErrNotConfigured)
	}

	items := make([]download.Item, 0, closure.Len())
	for _, pkg := range closure.Packages() {
		item, err := downloadItem(pkg)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return map[string]string{}, nil
	}

	emit(o.Hooks, Event{Phase: PhaseDownloading, Msg: fmt.Sprintf("%d archives", len(items))})
	return o.DL.FetchAll(ctx, items, download.Options{Dir: opts.CacheDir, Concurrency: opts.Concurrency})
}

// Extract resolves, downloads and materializes req into m, then runs the
// post-materialize hooks.
func (o *Orchestrator) Extract(ctx context.Context, req Request, m Materializer, opts Options) (*Result, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: no materializer", ErrNotConfigured)
	}

	closure, err := o.Resolve(ctx, req, opts)
	if err != nil {
		return nil, err
	}
	archives, err := o.Download(ctx, closure, opts)
	if err != nil {
		return nil, err
	}

	onPackage := func(pkg *repository.Package) {
		emit(o.Hooks, Event{Phase: PhaseMaterializing, ID: pkg.Name, Msg: pkg.Version.String()})
	}
	if err := m.MaterializeAll(ctx, closure.Packages(), archives, onPackage); err != nil {
		return nil, err
	}
	manifest, err := m.Finish()
	if err != nil {
		return nil, err
	}

	binDirs, err := materializer.DiscoverBinDirs(m.Root())
	if err != nil {
		return nil, err
	}

	if err := o.runScripts(ctx, hook.PostMaterialize, hookContext(req, closure, m.Root(), binDirs)); err != nil {
		return nil, err
	}

	emit(o.Hooks, Event{Phase: PhaseDone, Msg: fmt.Sprintf("%d packages", closure.Len())})
	return &Result{Closure: closure, Archives: archives, Manifest: manifest, BinDirs: binDirs}, nil
}

func (o *Orchestrator) runScripts(ctx context.Context, t hook.HookType, hctx hook.HookContext) error {
	if o.Scripts == nil {
		return nil
	}
	emit(o.Hooks, Event{Phase: PhaseHooks, Msg: string(t)})
	return o.Scripts.ExecuteContext(ctx, t, hctx)
}

// checkRequested fails on requested names that are neither excluded nor in repo.
func checkRequested(repo *repository.Repository, names, excludes []string) error {
	excluded := make(map[string]struct{}, len(excludes))
	for _, e := range excludes {
		excluded[e] = struct{}{}
	}
	var missing []string
	for _, name := range names {
		if _, ok := excluded[name]; ok {
			continue
		}
		if !repo.Contains(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrPackageNotFound, strings.Join(missing, ", "))
	}
	return nil
}

func downloadItem(pkg *repository.Package) (download.Item, error) {
	raw := pkg.DownloadURL()
	u, err := url.Parse(raw)
	if err != nil {
		return download.Item{}, fmt.Errorf("%s: invalid download URL %q: %w", pkg.Name, raw, err)
	}
	return download.Item{
		ID:       pkg.Name,
		URL:      u,
		Checksum: pkg.SHA256,
		Filename: cache.Key(raw),
	}, nil
}

func hookContext(req Request, closure *resolver.Closure, root string, binDirs []string) hook.HookContext {
	pkgs := make([]hook.Package, 0, closure.Len())
	for _, p := range closure.Packages() {
		pkgs = append(pkgs, hook.Package{Name: p.Name, Version: p.Version.String(), Architecture: p.Architecture})
	}
	hctx := hook.HookContext{
		Root:         root,
		Distribution: req.Platform.Distribution,
		Codename:     req.Platform.Codename,
		Architecture: req.Platform.Arch,
		Packages:     pkgs,
		Vars:         map[string]interface{}{},
	}
	if root != "" {
		hctx.Vars["binDirs"] = binDirs
	}
	return hctx
}
