// Package field provides the model-space primitives for electric potential
// fields: point charges, the diff queue that records charge mutations, the
// coordinate transform between model space and the canvas, and a CPU grid
// that mirrors the GPU accumulation semantics.
//
// The central types are:
//
//   - [Charge]: a point charge with a stable id
//   - [Diff]: one recorded mutation (add, remove, or move)
//   - [Tracker]: owns the live charges and the pending diff queue
//   - [Transform]: composed view-projection matrix and its inverse
//   - [Grid]: CPU reference accumulator over the same texel layout
//
// # Thread Safety
//
// Tracker and Grid are NOT thread-safe. The render loop drains diffs and
// applies them on a single goroutine per frame.
package field
