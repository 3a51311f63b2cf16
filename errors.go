package h3geo

import "errors"

// Sentinel errors returned by grid operations. Callers can test for them
// with errors.Is; operations that add context wrap these with fmt.Errorf
// and %w.
var (
	// ErrInvalidIndex indicates a 64-bit value that does not satisfy the
	// cell index validity invariant.
	ErrInvalidIndex = errors.New("h3geo: invalid cell index")

	// ErrIncompatibleIndices indicates two cells that cannot be compared,
	// usually because they are at different resolutions or pentagon
	// distortion makes their relationship unresolvable.
	ErrIncompatibleIndices = errors.New("h3geo: incompatible cell indexes")

	// ErrUnableToIndex indicates a point or polygon that cannot be
	// indexed, such as non-finite coordinates.
	ErrUnableToIndex = errors.New("h3geo: unable to index input")

	// ErrUnableToSerialize indicates a string that does not round-trip to
	// a valid 64-bit cell value.
	ErrUnableToSerialize = errors.New("h3geo: unable to serialize cell")

	// ErrInvalidResolution indicates a resolution argument outside 0..15.
	ErrInvalidResolution = errors.New("h3geo: invalid grid resolution")

	// ErrUnableToComputeLine indicates a cell-to-cell line that the local
	// coordinate algorithm cannot produce.
	ErrUnableToComputeLine = errors.New("h3geo: unable to compute line between cells")

	// ErrUnableToComputeTraversal indicates a fast-path ring traversal
	// interrupted by pentagon distortion. Callers should fall back to
	// KRingWithDistances and filter by distance.
	ErrUnableToComputeTraversal = errors.New("h3geo: unable to compute traversal")

	// ErrUnableToCompact indicates a cell set with duplicates or invalid
	// members passed to Compact.
	ErrUnableToCompact = errors.New("h3geo: unable to compact cell set")

	// ErrUnableToUncompact indicates an Uncompact call with a target
	// resolution coarser than one of the input cells.
	ErrUnableToUncompact = errors.New("h3geo: unable to uncompact cell set")

	// ErrNotImplemented marks declared but unimplemented conversions.
	ErrNotImplemented = errors.New("h3geo: not implemented")
)
