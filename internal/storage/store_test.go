package storage

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	frames := []FrameRecord{
		{Frame: 0, Diffs: 3, Millis: 1.25},
		{Frame: 1, Diffs: 1, Millis: 0.75},
	}

	runID, err := st.Save(RunMetadata{
		Scenario: "dipole",
		Backend:  "cpu",
		Seed:     42,
		CanvasW:  640,
		CanvasH:  480,
		Metrics:  map[string]float64{"frame_ms": 1.0},
	}, frames)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario != "dipole" {
		t.Errorf("expected scenario 'dipole', got '%s'", meta.Scenario)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Frames != 2 {
		t.Errorf("expected 2 frames, got %d", meta.Frames)
	}
	if meta.Metrics["frame_ms"] != 1.0 {
		t.Errorf("expected frame_ms 1.0, got %f", meta.Metrics["frame_ms"])
	}

	loaded, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 frame records, got %d", len(loaded))
	}
	if loaded[0].Diffs != 3 || loaded[1].Millis != 0.75 {
		t.Errorf("frame records round-tripped wrong: %+v", loaded)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	if _, err := st.Save(RunMetadata{Scenario: "orbit"}, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Scenario != "orbit" {
		t.Errorf("expected scenario orbit, got %s", runs[0].Scenario)
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New("/nonexistent/fieldlab-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir should not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{
		ID:       "dipole_1",
		Scenario: "dipole",
		Backend:  "gpu",
		Metrics:  map[string]float64{"peak_queue": 4},
	}
	frames := []FrameRecord{{Frame: 0, Diffs: 2, Millis: 0.5}}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, frames); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.Scenario != "dipole" || data.Backend != "gpu" {
		t.Errorf("metadata lost in export: %+v", data)
	}
	if len(data.Diffs) != 1 || data.Diffs[0] != 2 {
		t.Errorf("frame data lost in export: %+v", data)
	}
}
