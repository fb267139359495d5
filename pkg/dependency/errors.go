package dependency

import "errors"

// ErrParse is returned for dependency clauses that cannot be parsed.
var ErrParse = errors.New("invalid dependency")
