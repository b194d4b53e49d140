package scenario

import (
	"strings"
	"testing"
)

func TestPresets_AllLevelsPopulated(t *testing.T) {
	for _, level := range Levels {
		s := Presets(level)
		if len(s) != 3 {
			t.Errorf("level %s: expected 3 presets, got %d", level, len(s))
		}
		for _, scn := range s {
			if !strings.HasPrefix(scn.ID, level.Prefix()) {
				t.Errorf("preset %s filed under level %s", scn.ID, level)
			}
			if scn.Title == "" || scn.Goal == "" || scn.ExampleGood == "" {
				t.Errorf("preset %s missing required fields", scn.ID)
			}
		}
	}
}

func TestPresets_UnknownLevelFallsBackToBeginner(t *testing.T) {
	s := Presets(Level("expert"))
	if len(s) == 0 || s[0].ID != "b1" {
		t.Errorf("expected beginner presets for unknown level, got %v", s)
	}
}

func TestRandomPreset_StaysWithinLevel(t *testing.T) {
	for range 20 {
		s := RandomPreset(LevelAdvanced)
		if !strings.HasPrefix(s.ID, "a") {
			t.Fatalf("expected an advanced preset, got %q", s.ID)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, level := range Levels {
		got, err := ParseLevel(string(level))
		if err != nil || got != level {
			t.Errorf("ParseLevel(%q) = %v, %v", level, got, err)
		}
	}
	if _, err := ParseLevel("expert"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelPrefix(t *testing.T) {
	cases := map[Level]string{
		LevelBeginner:     "b",
		LevelIntermediate: "i",
		LevelAdvanced:     "a",
	}
	for level, want := range cases {
		if got := level.Prefix(); got != want {
			t.Errorf("%s.Prefix() = %q, want %q", level, got, want)
		}
	}
}

func TestStats(t *testing.T) {
	st := Stats()
	if st.BeginnerCount != 3 || st.IntermediateCount != 3 || st.AdvancedCount != 3 {
		t.Errorf("unexpected per-level counts: %+v", st)
	}
	if st.TotalPreset != 9 {
		t.Errorf("expected 9 total presets, got %d", st.TotalPreset)
	}
}
