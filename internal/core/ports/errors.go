// Package ports defines the contracts between the freight core and its
// infrastructure: repositories, the unit of work, the branch directory and
// the outbound event and search adapters.
package ports

import "errors"

// ErrDuplicateIdentifier is the cause carried by a DataAccessError when an
// insert hits the unique index on an LR or OGPL number. Creation handlers
// retry with a fresh number when they see it.
var ErrDuplicateIdentifier = errors.New("identifier already in use")
