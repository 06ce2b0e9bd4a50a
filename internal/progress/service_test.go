package progress

import "testing"

func TestSummarize(t *testing.T) {
	// Rows arrive highest level first; the first row per subject wins.
	rows := []ProgressRow{
		{SubjectName: "Mathématiques", CurrentLevel: 4, SuccessRate: 95},
		{SubjectName: "Mathématiques", CurrentLevel: 2, SuccessRate: 60},
		{SubjectName: "Physique", CurrentLevel: 1, SuccessRate: 40},
	}

	summary := Summarize(rows)

	if len(summary) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(summary))
	}

	math := summary["Mathématiques"]
	if math.Level != 4 || math.Progression != 95 {
		t.Errorf("Mathématiques = %+v, want level 4 progression 95", math)
	}
	if math.SubjectName != "Mathématiques" {
		t.Errorf("subject name = %q", math.SubjectName)
	}

	phys := summary["Physique"]
	if phys.Level != 1 || phys.Progression != 40 {
		t.Errorf("Physique = %+v, want level 1 progression 40", phys)
	}
}

func TestSummarize_UnorderedInput(t *testing.T) {
	// Even if ordering is violated, the higher level still wins.
	rows := []ProgressRow{
		{SubjectName: "Histoire", CurrentLevel: 2, SuccessRate: 70},
		{SubjectName: "Histoire", CurrentLevel: 5, SuccessRate: 96},
	}

	summary := Summarize(rows)
	if got := summary["Histoire"]; got.Level != 5 || got.Progression != 96 {
		t.Errorf("Histoire = %+v, want level 5 progression 96", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if summary := Summarize(nil); len(summary) != 0 {
		t.Errorf("expected empty summary, got %d entries", len(summary))
	}
}
