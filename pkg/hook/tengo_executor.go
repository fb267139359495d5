package hook

import (
	"context"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// scriptModules are the tengo standard modules scripts may import.
var scriptModules = []string{"fmt", "os", "text", "json", "times"}

// TengoExecutor runs hook scripts with the tengo interpreter.
type TengoExecutor struct {
	modules *tengo.ModuleMap
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{modules: stdlib.GetModuleMap(scriptModules...)}
}

// Run executes a single script. The context fields are exposed as the globals
// root, distribution, codename, architecture and packages (an array of maps
// with name, version and architecture), plus one global per entry of Vars.
// A script fails by raising a runtime error or by setting err to an error
// or a non-empty string.
func (e *TengoExecutor) Run(ctx context.Context, h Hook, hctx HookContext) error {
	script := tengo.NewScript([]byte(h.Content))
	script.SetImports(e.modules)

	globals := map[string]interface{}{
		"hookType":     string(h.Type),
		"root":         hctx.Root,
		"distribution": hctx.Distribution,
		"codename":     hctx.Codename,
		"architecture": hctx.Architecture,
		"packages":     packageList(hctx.Packages),
		"err":          "",
	}
	for k, v := range hctx.Vars {
		if strs, ok := v.([]string); ok {
			v = stringList(strs)
		}
		globals[k] = v
	}
	for k, v := range globals {
		if err := script.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable '%s' to script %s: %w", k, h.Name, err)
		}
	}

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", h.Type, h.Name, ErrHookExecution, err)
	}

	if errVar := compiled.Get("err"); errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return fmt.Errorf("%s: %w: %w", h.Name, ErrHookScript, v)
		case string:
			if v != "" {
				return fmt.Errorf("%s: %w: %s", h.Name, ErrHookScript, v)
			}
		}
	}
	return nil
}

func packageList(pkgs []Package) []interface{} {
	out := make([]interface{}, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, map[string]interface{}{
			"name":         p.Name,
			"version":      p.Version,
			"architecture": p.Architecture,
		})
	}
	return out
}

func stringList(strs []string) []interface{} {
	out := make([]interface{}, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}
