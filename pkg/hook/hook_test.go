package hook_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glorpus-work/fetchy/pkg/hook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(root string) hook.HookContext {
	return hook.HookContext{
		Root:         root,
		Distribution: "ubuntu",
		Codename:     "jammy",
		Architecture: "amd64",
		Packages: []hook.Package{
			{Name: "gcc-12-base", Version: "12.3.0-1ubuntu1~22.04", Architecture: "amd64"},
			{Name: "libc6", Version: "2.35-0ubuntu3.8", Architecture: "amd64"},
		},
		Vars: map[string]interface{}{
			"binDirs": []string{"/bin", "/usr/bin"},
		},
	}
}

func TestAddHook(t *testing.T) {
	manager := hook.NewHookManager()
	assert.False(t, manager.HasHook(hook.PostResolve))

	require.NoError(t, manager.AddHook(hook.Hook{Type: hook.PostResolve, Name: "a", Content: "// noop"}))
	require.NoError(t, manager.AddHook(hook.Hook{Type: hook.PostResolve, Name: "b", Content: "// noop"}))
	assert.True(t, manager.HasHook(hook.PostResolve))
	assert.False(t, manager.HasHook(hook.PostMaterialize))
	assert.Equal(t, 2, manager.Count())

	assert.ErrorIs(t, manager.AddHook(hook.Hook{Content: "x"}), hook.ErrHookTypeEmpty)
	assert.ErrorIs(t, manager.AddHook(hook.Hook{Type: "pre-install"}), hook.ErrUnsupportedHookType)

	require.NoError(t, manager.RemoveHook(hook.PostResolve))
	assert.False(t, manager.HasHook(hook.PostResolve))
	assert.ErrorIs(t, manager.RemoveHook(""), hook.ErrHookTypeEmpty)
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr error
	}{
		{name: "empty script", script: "// nothing to do"},
		{
			name: "context is visible",
			script: `
if root == "" || distribution != "ubuntu" || codename != "jammy" || architecture != "amd64" {
	err = "bad release"
}
if len(packages) != 2 || packages[1].name != "libc6" || packages[0].version != "12.3.0-1ubuntu1~22.04" {
	err = "bad packages"
}
if len(binDirs) != 2 || binDirs[1] != "/usr/bin" {
	err = "bad vars"
}
if hookType != "post-materialize" {
	err = "bad type"
}
`,
		},
		{name: "script reports error", script: `err = "no init system found"`, wantErr: hook.ErrHookScript},
		{name: "runtime failure", script: `non_existent_function()`, wantErr: hook.ErrHookExecution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := hook.NewHookManager()
			require.NoError(t, manager.AddHook(hook.Hook{Type: hook.PostMaterialize, Name: "test.tengo", Content: tt.script}))

			err := manager.Execute(hook.PostMaterialize, testContext(t.TempDir()))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "test.tengo")
		})
	}
}

func TestExecute_NoHooks(t *testing.T) {
	assert.NoError(t, hook.NewHookManager().Execute(hook.PostResolve, hook.HookContext{}))
}

func TestExecute_OrderAndStop(t *testing.T) {
	root := t.TempDir()
	manager := hook.NewHookManager()
	touch := `
os := import("os")
f := os.create(root + "/%s")
f.close()
`
	require.NoError(t, manager.AddHook(hook.Hook{Type: hook.PostMaterialize, Name: "first", Content: fmt.Sprintf(touch, "first")}))
	require.NoError(t, manager.AddHook(hook.Hook{Type: hook.PostMaterialize, Name: "second", Content: `err = "stop"`}))
	require.NoError(t, manager.AddHook(hook.Hook{Type: hook.PostMaterialize, Name: "third", Content: fmt.Sprintf(touch, "third")}))

	err := manager.Execute(hook.PostMaterialize, testContext(root))
	require.ErrorIs(t, err, hook.ErrHookScript)
	assert.Contains(t, err.Error(), "second")
	assert.FileExists(t, filepath.Join(root, "first"))
	assert.NoFileExists(t, filepath.Join(root, "third"))
}

func TestExecuteContext_Canceled(t *testing.T) {
	manager := hook.NewHookManager()
	require.NoError(t, manager.AddHook(hook.Hook{Type: hook.PostResolve, Name: "spin", Content: "for {}"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := manager.ExecuteContext(ctx, hook.PostResolve, testContext(""))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoadHooks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "hooks"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hooks", "paths.tengo"), []byte(`err = "loaded"`), 0o644))

	manager := hook.NewHookManager()
	require.NoError(t, hook.LoadHooks(manager, map[string][]string{
		"post-materialize": {"hooks/paths.tengo"},
	}, dir))
	assert.True(t, manager.HasHook(hook.PostMaterialize))

	err := manager.Execute(hook.PostMaterialize, testContext(dir))
	require.ErrorIs(t, err, hook.ErrHookScript)
	assert.Contains(t, err.Error(), filepath.Join(dir, "hooks", "paths.tengo"))

	tests := map[string]map[string][]string{
		"wrong extension": {"post-resolve": {"hooks/paths.sh"}},
		"missing file":    {"post-resolve": {"hooks/absent.tengo"}},
		"unknown type":    {"pre-install": {"hooks/paths.tengo"}},
	}
	for name, scripts := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, hook.LoadHooks(hook.NewHookManager(), scripts, dir), hook.ErrHookLoad)
		})
	}
}

func TestHookTemplate(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "etc"), 0o755))

	for _, typ := range hook.ValidTypes() {
		manager := hook.NewHookManager()
		require.NoError(t, manager.AddHook(hook.Hook{Type: typ, Name: string(typ), Content: hook.HookTemplate(typ)}))
		require.NoError(t, manager.Execute(typ, testContext(root)), "template for %s", typ)
	}

	env, err := os.ReadFile(filepath.Join(root, "etc", "environment"))
	require.NoError(t, err)
	assert.Equal(t, "PATH=/bin:/usr/bin\n", string(env))

	assert.Contains(t, hook.HookTemplate("unknown"), "Unknown hook type")
}
