// Package metrics collects per-frame observations from the pipeline: how
// long frames take, how deep the diff queue gets, and how far the
// accumulated potential swings.
package metrics

type Metric interface {
	Name() string
	Observe(v float64)
	Value() float64
	Reset()
}

// FrameTime averages frame durations in milliseconds.
type FrameTime struct {
	name    string
	total   float64
	samples int
}

func NewFrameTime() *FrameTime {
	return &FrameTime{name: "frame_ms"}
}

func (f *FrameTime) Name() string { return f.name }

func (f *FrameTime) Observe(ms float64) {
	f.total += ms
	f.samples++
}

func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return f.total / float64(f.samples)
}

func (f *FrameTime) Reset() {
	f.total = 0
	f.samples = 0
}

// PeakQueue tracks the deepest the diff queue got before a drain.
type PeakQueue struct {
	name string
	peak float64
}

func NewPeakQueue() *PeakQueue {
	return &PeakQueue{name: "peak_queue"}
}

func (p *PeakQueue) Name() string { return p.name }

func (p *PeakQueue) Observe(depth float64) {
	if depth > p.peak {
		p.peak = depth
	}
}

func (p *PeakQueue) Value() float64 { return p.peak }

func (p *PeakQueue) Reset() { p.peak = 0 }
