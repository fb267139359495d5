package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/glorpus-work/fetchy/pkg/cache"
	"github.com/glorpus-work/fetchy/pkg/config"
	"github.com/glorpus-work/fetchy/pkg/download"
	"github.com/glorpus-work/fetchy/pkg/hook"
	"github.com/glorpus-work/fetchy/pkg/orchestrator"
	"github.com/glorpus-work/fetchy/pkg/source"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	NoColor    *bool
	LogLevel   *string
)

// resolveFlags are shared by every command that resolves packages.
type resolveFlags struct {
	exclude []string
	strict  bool
}

// loadConfig loads the configuration, applies the global flag overrides and
// initializes the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if LogLevel != nil && *LogLevel != "" {
		cfg.Settings.LogLevel = *LogLevel
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	noColor := NoColor != nil && *NoColor
	logger.InitLogger(cfg.Settings.LogLevel, noColor)

	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

func loadDownloadManager(cfg *config.Config) *download.ManagerImpl {
	return download.NewManager(cfg.Settings.HTTPTimeout, cfg.Settings.HTTPRetries, download.DefaultUserAgent)
}

func loadScripts(cfg *config.Config) (*hook.DefaultHookManager, error) {
	scripts := hook.NewHookManager()
	if err := hook.LoadHooks(scripts, cfg.Hooks, cfg.BaseDir()); err != nil {
		return nil, err
	}
	return scripts, nil
}

// newOrchestrator wires the source loader, the download manager and the
// configured hook scripts.
func newOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, error) {
	store := cache.NewStore(cfg.GetCacheDir())
	dl := loadDownloadManager(cfg)
	loader := source.NewLoader(dl, store, cfg.Settings.MaxConcurrent)

	scripts, err := loadScripts(cfg)
	if err != nil {
		return nil, err
	}

	hooks := orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
		if e.ID != "" {
			logger.Debug(e.Phase, logger.Fields{"package": e.ID, "detail": e.Msg})
			return
		}
		logger.Info(e.Phase, logger.Fields{"detail": e.Msg})
	}}

	return orchestrator.New(loader, dl, scripts, hooks), nil
}

// buildRequest combines the configured and command line packages and exclusions.
func buildRequest(cfg *config.Config, args []string, flags resolveFlags) (orchestrator.Request, orchestrator.Options, error) {
	sources, err := source.Build(cfg.SourceConfig())
	if err != nil {
		return orchestrator.Request{}, orchestrator.Options{}, err
	}

	excludes, err := cfg.Exclusions()
	if err != nil {
		return orchestrator.Request{}, orchestrator.Options{}, err
	}
	extra, err := config.ReadExclusions(flags.exclude, "")
	if err != nil {
		return orchestrator.Request{}, orchestrator.Options{}, err
	}

	req := orchestrator.Request{
		Platform: cfg.Platform(),
		Sources:  sources,
		Packages: append(append([]string(nil), cfg.Packages...), args...),
		Exclude:  append(excludes, extra...),
	}
	opts := orchestrator.Options{
		CacheDir:    filepath.Join(cfg.GetCacheDir(), string(cache.Packages)),
		Concurrency: cfg.Settings.MaxConcurrent,
		Strict:      cfg.Settings.Strict || flags.strict,
	}
	return req, opts, nil
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "\n%s (%d):\n", title, len(items))
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "  %s\n", item)
	}
}

func sortedHookTypes(hooks map[string][]string) []string {
	types := make([]string, 0, len(hooks))
	for t := range hooks {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
