package rig

import "errors"

// Error kinds shared by the pipeline stages. All are fatal to a run: each
// stage is a deterministic transform over in-memory data, so a failure means
// malformed input, never a transient condition.
var (
	// ErrBoneNotFound reports a referenced bone or vertex group that is
	// absent from the skeleton or weight table.
	ErrBoneNotFound = errors.New("bone not found")

	// ErrMalformedSkeleton reports a parent graph that is not a forest:
	// a cycle, or a parent link to a bone that does not exist.
	ErrMalformedSkeleton = errors.New("malformed skeleton")

	// ErrEmptyResult reports a traversal that retained no bones.
	ErrEmptyResult = errors.New("no bones retained")

	// ErrInvalidMergeTarget reports a weight-merge target that is itself
	// scheduled for removal.
	ErrInvalidMergeTarget = errors.New("invalid merge target")

	// ErrMissingRoot reports a rebase attempted on a skeleton without an
	// identifiable single root.
	ErrMissingRoot = errors.New("missing root bone")

	// ErrSpaceMismatch reports a mesh whose positions are not in the
	// skeleton's coordinate space (object transform not baked).
	ErrSpaceMismatch = errors.New("coordinate space mismatch")
)
