package cli

// Defaults for CLI flags and output.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// RemovalScriptMode is the mode of removal scripts written with --out.
	RemovalScriptMode = 0o755
)
