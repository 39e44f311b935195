package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	ID       string             `json:"id"`
	Scenario string             `json:"scenario"`
	Backend  string             `json:"backend"`
	Seed     int64              `json:"seed"`
	CanvasW  int                `json:"canvas_w"`
	CanvasH  int                `json:"canvas_h"`
	Frames   []int              `json:"frames"`
	Diffs    []int              `json:"diffs"`
	Millis   []float64          `json:"ms"`
	Metrics  map[string]float64 `json:"metrics"`
}

func buildExport(meta *RunMetadata, frames []FrameRecord) ExportData {
	data := ExportData{
		ID:       meta.ID,
		Scenario: meta.Scenario,
		Backend:  meta.Backend,
		Seed:     meta.Seed,
		CanvasW:  meta.CanvasW,
		CanvasH:  meta.CanvasH,
		Frames:   make([]int, len(frames)),
		Diffs:    make([]int, len(frames)),
		Millis:   make([]float64, len(frames)),
		Metrics:  meta.Metrics,
	}
	for i, f := range frames {
		data.Frames[i] = f.Frame
		data.Diffs[i] = f.Diffs
		data.Millis[i] = f.Millis
	}
	return data
}

// ExportJSON writes one run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, frames []FrameRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(meta, frames))
}

// ExportJSONStdout writes one run as indented JSON to stdout.
func ExportJSONStdout(meta *RunMetadata, frames []FrameRecord) error {
	return ExportJSON(os.Stdout, meta, frames)
}
