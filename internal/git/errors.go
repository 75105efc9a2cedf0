package git

import "errors"

// ErrRepository indicates the commit graph could not be resolved (missing
// HEAD, corrupt object, unreadable tree). It is fatal to the extraction
// call that raised it; records already produced remain valid.
var ErrRepository = errors.New("cannot resolve repository object")

// ErrParse indicates malformed textual input: a bad date in a log stream,
// a syntactically invalid hash, or a remote URL with the wrong shape.
// It is distinct from a lookup that finds nothing, which is not an error.
var ErrParse = errors.New("malformed input")
