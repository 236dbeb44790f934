package discnet

import "errors"

// ErrEmptyNet is returned by Build when given no entries; a symbol
// with equations should always supply at least one.
var ErrEmptyNet = errors.New("discnet: cannot build a net with no entries")
