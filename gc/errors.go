package gc

import "errors"

// Sentinel errors returned by the gc package's allocators and root
// containers. Match failure inside the rewriting core is never an
// error (see package discnet); these are strictly allocator-contract
// violations.
var (
	// ErrArenaExhausted is returned if an arena is asked for a slot
	// index outside its bounds; it indicates a bug in the allocator's
	// own cursor bookkeeping, not a client error.
	ErrArenaExhausted = errors.New("gc: arena slot index out of range")

	// ErrBucketTooLarge is returned when a single allocation request
	// exceeds the configured bucket capacity; large argument vectors
	// must be chunked by the caller or the bucket size increased.
	ErrBucketTooLarge = errors.New("gc: allocation exceeds bucket capacity")

	// ErrRootContainerClosed is returned by a root container method
	// invoked after Close has already unlinked it from the allocator.
	ErrRootContainerClosed = errors.New("gc: root container already closed")
)
