// Package store persists the progress document: one JSON file holding
// every user's history plus the ranked leaderboard. The file layout is a
// compatibility contract; field names and nesting must not change.
package store

import "slices"

// SkillLevel is a user's derived proficiency tier.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
)

// Document is the whole persisted state.
type Document struct {
	Users       map[string]*UserRecord `json:"users"`
	Leaderboard []LeaderboardEntry     `json:"leaderboard"`
}

// NewDocument returns an empty document with initialized containers.
func NewDocument() *Document {
	return &Document{
		Users:       make(map[string]*UserRecord),
		Leaderboard: []LeaderboardEntry{},
	}
}

// UserRecord is one user's durable progress state. TotalScore and
// Attempts are running counters kept consistent with History: TotalScore
// equals the sum of history scores and Attempts equals its length.
type UserRecord struct {
	TotalScore int        `json:"total_score"`
	Attempts   int        `json:"attempts"`
	SkillLevel SkillLevel `json:"skill_level"`
	Badges     []string   `json:"badges"`
	History    []Attempt  `json:"history"`
}

// NewUserRecord returns a fresh beginner record.
func NewUserRecord() *UserRecord {
	return &UserRecord{
		SkillLevel: LevelBeginner,
		Badges:     []string{},
		History:    []Attempt{},
	}
}

// Clone returns a deep copy of the record. Nested evaluation slices are
// copied too, so mutating the clone never touches the original.
func (u *UserRecord) Clone() *UserRecord {
	c := *u
	c.Badges = slices.Clone(u.Badges)
	c.History = slices.Clone(u.History)
	for i := range c.History {
		c.History[i].Evaluation.Strengths = slices.Clone(c.History[i].Evaluation.Strengths)
		c.History[i].Evaluation.Improvements = slices.Clone(c.History[i].Evaluation.Improvements)
	}
	return &c
}

// Attempt is one recorded training attempt.
type Attempt struct {
	Timestamp  string     `json:"timestamp"`
	ScenarioID string     `json:"scenario_id"`
	Score      int        `json:"score"`
	Evaluation Evaluation `json:"evaluation"`
	UserPrompt string     `json:"user_prompt"`
}

// Evaluation is the structured assessment of one prompt. Sub-scores are
// 0-25 each; TotalScore is 0-100.
type Evaluation struct {
	ClarityScore       int      `json:"clarity_score"`
	SpecificityScore   int      `json:"specificity_score"`
	StructureScore     int      `json:"structure_score"`
	TaskAlignmentScore int      `json:"task_alignment_score"`
	TotalScore         int      `json:"total_score"`
	Feedback           string   `json:"feedback"`
	Strengths          []string `json:"strengths"`
	Improvements       []string `json:"improvements"`
}

// LeaderboardEntry is one ranked row. At most one entry exists per user.
type LeaderboardEntry struct {
	Username      string     `json:"username"`
	AvgScore      float64    `json:"avg_score"`
	TotalAttempts int        `json:"total_attempts"`
	SkillLevel    SkillLevel `json:"skill_level"`
	Badges        int        `json:"badges"`
}
