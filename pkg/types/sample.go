// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shared between the extractor, renderer,
// viewer, and exporters.
// Implements: docs/ARCHITECTURE § Data Model.
package types

// Sample is one (cycle index, utility) pair parsed from a trainer log line.
type Sample struct {
	// Cycle is the training cycle index reported by the trainer.
	Cycle float64 `json:"cycle" yaml:"cycle"`

	// Utility is the average trajectory utility after Cycle.
	Utility float64 `json:"utility" yaml:"utility"`
}

// Series is the ordered list of samples from one log file, in the order
// the lines appeared. It is never re-sorted.
type Series []Sample

// Len returns the number of samples.
func (s Series) Len() int {
	return len(s)
}

// XValues returns the cycle indices in series order.
func (s Series) XValues() []float64 {
	xs := make([]float64, len(s))
	for i, p := range s {
		xs[i] = p.Cycle
	}
	return xs
}

// YValues returns the utilities in series order, aligned with XValues.
func (s Series) YValues() []float64 {
	ys := make([]float64, len(s))
	for i, p := range s {
		ys[i] = p.Utility
	}
	return ys
}
