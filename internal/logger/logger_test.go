package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	logger = nil
	InitLoggerWithFormat(level, true, format)

	fn()

	return buf.String()
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:     "info log",
			level:    "info",
			logFn:    func() { Info("resolved closure") },
			contains: []string{"resolved closure", "level=info"},
		},
		{
			name:     "debug log with debug level",
			level:    "debug",
			logFn:    func() { Debug("skipping stanza") },
			contains: []string{"skipping stanza", "level=debug"},
		},
		{
			name:     "debug log with info level",
			level:    "info",
			logFn:    func() { Debug("skipping stanza") },
			excludes: []string{"skipping stanza"},
		},
		{
			name:     "error log",
			level:    "error",
			logFn:    func() { Error("materialization failed") },
			contains: []string{"materialization failed", "level=error"},
		},
		{
			name:  "warn log with fields",
			level: "warn",
			logFn: func() {
				Warn("unresolved dependency", Fields{"package": "bash", "count": 2})
			},
			contains: []string{"unresolved dependency", "level=warning", "package=bash", "count=2"},
		},
		{
			name:     "success log",
			level:    "info",
			logFn:    func() { Success("root filesystem ready") },
			contains: []string{"root filesystem ready", "status=success"},
		},
		{
			name:     "formatted info log",
			level:    "info",
			logFn:    func() { Infof("fetched %d archives", 3) },
			contains: []string{"fetched 3 archives"},
		},
		{
			name:     "unknown level falls back to info",
			level:    "chatty",
			logFn:    func() { Debug("hidden"); Info("shown") },
			contains: []string{"shown"},
			excludes: []string{"hidden"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t, tt.level, FormatText, tt.logFn)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestJSONOutput(t *testing.T) {
	out := captureOutput(t, "info", FormatJSON, func() {
		Warn("cache miss", Fields{"key": "0123abcd"})
	})
	assert.Contains(t, out, `"msg":"cache miss"`)
	assert.Contains(t, out, `"level":"warning"`)
	assert.Contains(t, out, `"key":"0123abcd"`)
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	logger = nil
	assert.NotPanics(t, func() {
		lg := GetLogger()
		assert.NotNil(t, lg)
	})
}

func TestMergeFields(t *testing.T) {
	merged := mergeFields(Fields{"a": 1}, Fields{"b": 2, "a": 3})
	assert.Equal(t, Fields{"a": 3, "b": 2}, merged)
	assert.Empty(t, mergeFields())
}
