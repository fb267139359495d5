package version

import "errors"

// ErrParse is returned for version strings that cannot be parsed.
var ErrParse = errors.New("invalid version")
