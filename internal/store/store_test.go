package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "user_progress.json"))
}

func TestLoad_MissingFile(t *testing.T) {
	s := testStore(t)

	doc := s.Load()

	require.NotNil(t, doc)
	assert.Empty(t, doc.Users)
	assert.Empty(t, doc.Leaderboard)
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	s := testStore(t)

	doc := NewDocument()
	doc.Users["alice"] = &UserRecord{
		TotalScore: 185,
		Attempts:   2,
		SkillLevel: LevelBeginner,
		Badges:     []string{"Perfect Score"},
		History: []Attempt{
			{
				Timestamp:  "2026-08-30T10:00:00Z",
				ScenarioID: "b1",
				Score:      100,
				Evaluation: Evaluation{
					ClarityScore:       25,
					SpecificityScore:   25,
					StructureScore:     25,
					TaskAlignmentScore: 25,
					TotalScore:         100,
					Feedback:           "Excellent prompt.",
					Strengths:          []string{"clear", "specific"},
					Improvements:       []string{},
				},
				UserPrompt: "Summarize the thread",
			},
			{
				Timestamp:  "2026-08-30T11:00:00Z",
				ScenarioID: "i1",
				Score:      85,
			},
		},
	}
	doc.Leaderboard = []LeaderboardEntry{
		{Username: "alice", AvgScore: 92.5, TotalAttempts: 2, SkillLevel: LevelBeginner, Badges: 1},
	}

	require.NoError(t, s.Save(doc))

	loaded := s.Load()
	assert.Equal(t, doc, loaded)
}

func TestLoad_CorruptedFile(t *testing.T) {
	s := testStore(t)
	original := []byte("{not json at all")
	require.NoError(t, os.WriteFile(s.Path(), original, 0o644))

	doc := s.Load()

	require.NotNil(t, doc)
	assert.Empty(t, doc.Users)

	// The original bytes must survive in a backup file.
	matches, err := filepath.Glob(s.Path() + ".backup_*")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	backed, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, original, backed)
}

func TestLoad_MissingRequiredKeys(t *testing.T) {
	s := testStore(t)
	// Valid JSON, wrong shape.
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"users": {}}`), 0o644))

	doc := s.Load()

	assert.Empty(t, doc.Users)
	assert.Empty(t, doc.Leaderboard)

	matches, err := filepath.Glob(s.Path() + ".backup_*")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSave_NoTempFileLeftBehind(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save(NewDocument()))

	_, err := os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSave_WritesValidDocumentLayout(t *testing.T) {
	s := testStore(t)
	doc := NewDocument()
	doc.Users["bob"] = NewUserRecord()
	require.NoError(t, s.Save(doc))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &top))
	assert.Contains(t, top, "users")
	assert.Contains(t, top, "leaderboard")
}
