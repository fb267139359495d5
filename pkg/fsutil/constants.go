package fsutil

// File and directory permission constants.
const (
	// File mode masks.
	FileModeMask = 0o777 // Full permission mask for files

	// Default file modes.
	FileModeDefault = 0o644 // -rw-r--r--: Default for regular files
	FileModeSecure  = 0o640 // -rw-r-----: Downloaded archives and cached indices
	FileModeExec    = 0o755 // -rwxr-xr-x: Maintainer scripts and the removal script

	// Directory modes.
	DirModeDefault = 0o755 // drwxr-xr-x: Default for directories inside a root tree
	DirModeSecure  = 0o750 // drwxr-x---: Download staging directories
	DirModePrivate = 0o700 // drwx------: Cache buckets
)
