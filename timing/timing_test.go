package timing

import (
	"testing"
	"time"
)

func TestRecorder_AllStagesPresentAsZero(t *testing.T) {
	rec := NewRecorder("first_stage", "second_stage", "third_stage")
	stages := rec.Stages()

	if len(stages) != 3 {
		t.Fatalf("Expected 3 stages, got %d", len(stages))
	}
	for name, v := range stages {
		if v != 0 {
			t.Errorf("Stage %s should start at 0, got %f", name, v)
		}
	}
}

func TestRecorder_TrackRecordsElapsed(t *testing.T) {
	rec := NewRecorder("work")
	stop := rec.Track("work")
	time.Sleep(5 * time.Millisecond)
	stop()

	if rec.Seconds("work") <= 0 {
		t.Errorf("Expected a positive duration, got %f", rec.Seconds("work"))
	}
}

func TestRecorder_SetOverrides(t *testing.T) {
	rec := NewRecorder("llm_request_time")
	stop := rec.Track("llm_request_time")
	stop()
	rec.Set("llm_request_time", 0)

	if rec.Seconds("llm_request_time") != 0 {
		t.Errorf("Set should override the tracked value")
	}
}

func TestStages_MergeWithPrefix(t *testing.T) {
	top := Stages{"total_time": 1.5}
	sub := Stages{"file_open_time": 0.2, "page_extraction_time": 0.8}

	top.Merge("pdf_", sub)

	if len(top) != 3 {
		t.Fatalf("Expected 3 entries after merge, got %d", len(top))
	}
	if top["pdf_file_open_time"] != 0.2 {
		t.Errorf("Expected prefixed key pdf_file_open_time = 0.2, got %f", top["pdf_file_open_time"])
	}
	if top["total_time"] != 1.5 {
		t.Errorf("Merge must not disturb existing entries")
	}
}
