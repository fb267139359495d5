package hook

import (
	"fmt"
)

// Common hook errors.
var (
	// ErrHookTypeEmpty is returned when a hook type is empty.
	ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")

	// ErrUnsupportedHookType is returned for hook types fetchy never fires.
	ErrUnsupportedHookType = fmt.Errorf("unsupported hook type")

	// ErrHookExecution is returned when there's an error executing a hook.
	ErrHookExecution = fmt.Errorf("error executing hook")

	// ErrHookScript is returned when a hook script reports an error through err.
	ErrHookScript = fmt.Errorf("hook script error")

	// ErrHookLoad is returned when there's an error loading a hook.
	ErrHookLoad = fmt.Errorf("failed to load hook")
)
