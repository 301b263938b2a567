package dag

import "github.com/pkg/errors"

// ErrDuplicateBlock is returned by Store.Add when a block with the given
// name already exists in the DAG. Non-fatal: callers skip the insertion.
var ErrDuplicateBlock = errors.New("block already exists in dag")

// ErrUnknownParent is returned by Store.Add when a referenced parent has
// not been inserted yet. Fatal from the simulation harness's point of view
// at the point it is raised, but the harness design keeps unknown-parent
// blocks out of Store.Add entirely by stashing them first (see sim).
var ErrUnknownParent = errors.New("block references an unknown parent")

// ErrBmaxNotFound signals the sizeof_pastset invariant violation where no
// parent could be selected as bmax; this can only happen if block.Prev is
// non-empty but iterated to nothing, which is impossible by construction
// and indicates a corrupted Store.
var ErrBmaxNotFound = errors.New("sizeof_pastset: impossible, bmax not found among parents")

// ErrBlockNotFound is returned when an operation is asked to act on a name
// that is not present in the DAG.
var ErrBlockNotFound = errors.New("block not found in dag")
