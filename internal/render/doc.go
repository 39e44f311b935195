// Package render owns the GPU side of the pipeline: the double-buffered
// float texture pair holding the accumulated potential, the fragment passes
// that update and display it, and the capability probe that decides whether
// the driver can run it at all.
//
// The flow per frame is:
//
//	diffs := tracker.Drain()            // or RebuildDiffs after a resize
//	for each diff: compute pass         // read previous, write target
//	               pair.Swap()          // flip roles by index
//	display pass                        // previous -> false-color RGBA target
//
// All entry points must be called on the thread that owns the GL context,
// after the window exists. Nothing in this package creates a context.
package render
