package cropforest

import (
	"fmt"

	"github.com/pbanos/cropforest/dataset"
)

/*
PruningStrategy holds the conditions under which a node stops being
split and becomes a leaf:
 * MaxDepth is the maximum number of edges between the root and a leaf
 * MinSamplesSplit is the minimum number of samples a node must hold to be split
*/
type PruningStrategy struct {
	MaxDepth        int
	MinSamplesSplit int
}

// Validate returns an error wrapping ErrInvalidInput if the strategy values are out of range.
func (ps *PruningStrategy) Validate() error {
	if ps.MaxDepth < 0 {
		return fmt.Errorf("max depth %d must not be negative: %w", ps.MaxDepth, ErrInvalidInput)
	}
	if ps.MinSamplesSplit < 1 {
		return fmt.Errorf("min samples to split %d must be positive: %w", ps.MinSamplesSplit, ErrInvalidInput)
	}
	return nil
}

// Prune reports whether a node at the given depth holding ds must be a leaf.
func (ps *PruningStrategy) Prune(ds dataset.Dataset, depth int) bool {
	return depth >= ps.MaxDepth || len(ds) < ps.MinSamplesSplit
}
