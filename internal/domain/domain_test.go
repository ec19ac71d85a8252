package domain

import "testing"

func TestSupportedRatiosCountAndValidity(t *testing.T) {
	ratios := SupportedRatios()
	if len(ratios) != 10 {
		t.Fatalf("expected 10 supported ratios, got %d", len(ratios))
	}
	for _, r := range ratios {
		if !r.Valid() {
			t.Fatalf("ratio %q reported invalid", r)
		}
	}
	if AspectRatio("7:5").Valid() {
		t.Fatalf("unknown ratio reported valid")
	}
}

func TestDimensionsFollowRatioAndTier(t *testing.T) {
	w, h := Dimensions(RatioLandscape, ResolutionMedium)
	if w != 1024 || h != 576 {
		t.Fatalf("16:9 medium = %dx%d", w, h)
	}
	w, h = Dimensions(RatioPortrait, ResolutionLow)
	if w != 288 || h != 512 {
		t.Fatalf("9:16 low = %dx%d", w, h)
	}
	w, h = Dimensions(RatioSquare, ResolutionHigh)
	if w != 2048 || h != 2048 {
		t.Fatalf("1:1 high = %dx%d", w, h)
	}
}

func TestResolutionValidity(t *testing.T) {
	for _, res := range []Resolution{ResolutionLow, ResolutionMedium, ResolutionHigh} {
		if !res.Valid() {
			t.Fatalf("resolution %q reported invalid", res)
		}
	}
	if Resolution("ultra").Valid() {
		t.Fatalf("unknown resolution reported valid")
	}
	if Resolution("").Valid() {
		t.Fatalf("empty resolution reported valid")
	}
}

func TestTaskIDFormat(t *testing.T) {
	got := TaskID("1756036800000", RatioLandscape, 2)
	want := "1756036800000-16:9-2"
	if got != want {
		t.Fatalf("TaskID = %q, want %q", got, want)
	}
}

func TestTerminalStatuses(t *testing.T) {
	for status, terminal := range map[TaskStatus]bool{
		TaskPending:    false,
		TaskGenerating: false,
		TaskSuccess:    true,
		TaskError:      true,
	} {
		if status.Terminal() != terminal {
			t.Fatalf("%s.Terminal() = %v", status, status.Terminal())
		}
	}
}

func TestCloneDoesNotShareReferenceSlices(t *testing.T) {
	img := GeneratedImage{ID: "a", ReferenceImages: []string{"r1"}}
	clone := img.Clone()
	clone.ReferenceImages[0] = "changed"
	if img.ReferenceImages[0] != "r1" {
		t.Fatalf("Clone shares the reference slice")
	}

	task := GenerationTask{ID: "a", Data: &img}
	tClone := task.Clone()
	tClone.Data.IsFavorite = true
	if img.IsFavorite {
		t.Fatalf("task Clone shares its data record")
	}
}
