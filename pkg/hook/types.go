package hook

// HookType represents the point in a run at which a hook fires.
type HookType string

// Supported hook types.
const (
	// PostResolve runs once the package closure is known, before downloading.
	PostResolve HookType = "post-resolve"
	// PostMaterialize runs after every package has been unpacked into the root.
	PostMaterialize HookType = "post-materialize"
)

// ValidTypes returns the supported hook types in the order they fire.
func ValidTypes() []HookType {
	return []HookType{PostResolve, PostMaterialize}
}

// Hook is a tengo script registered for a hook type.
type Hook struct {
	Type HookType
	// Name identifies the script in errors, usually its path.
	Name    string
	Content string
}

// Package is the view of a resolved package handed to scripts.
type Package struct {
	Name         string
	Version      string
	Architecture string
}

// HookContext contains information passed to hooks.
type HookContext struct {
	// Root is the target directory, empty for post-resolve hooks of a
	// command that does not materialize.
	Root         string
	Distribution string
	Codename     string
	Architecture string
	// Packages is the closure in unpack order.
	Packages []Package
	Vars     map[string]interface{}
}

// HookManager defines the interface for managing hooks.
type HookManager interface {
	// Execute runs every hook of hookType, in registration order.
	Execute(hookType HookType, ctx HookContext) error

	AddHook(hook Hook) error

	// RemoveHook removes all hooks of the specified type
	RemoveHook(hookType HookType) error

	HasHook(hookType HookType) bool
}
