package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestEventLog(t *testing.T) *EventLog {
	t.Helper()
	l, err := OpenEventLog(filepath.Join(t.TempDir(), "llm_events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestEventLog_AppendAndList(t *testing.T) {
	l := openTestEventLog(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, LLMRequestEvent{Purpose: "prompt-eval", Model: "m1", Success: true}))
	require.NoError(t, l.Append(ctx, LLMRequestEvent{Purpose: "scenario-gen", Model: "m2", Success: false}))

	events, err := l.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, "scenario-gen", events[0].Purpose)
	assert.Equal(t, "prompt-eval", events[1].Purpose)

	for _, ev := range events {
		assert.NotEmpty(t, ev.ID)
		assert.False(t, ev.Timestamp.IsZero())
	}
}

func TestEventLog_ListLimit(t *testing.T) {
	l := openTestEventLog(t)
	ctx := context.Background()
	for range 5 {
		require.NoError(t, l.Append(ctx, LLMRequestEvent{Purpose: "prompt-eval", Success: true}))
	}

	events, err := l.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestEventLog_Get(t *testing.T) {
	l := openTestEventLog(t)
	ctx := context.Background()
	require.NoError(t, l.Append(ctx, LLMRequestEvent{
		Purpose:      "prompt-eval",
		Success:      true,
		RequestBody:  "[user]\nmy prompt",
		ResponseBody: `{"total_score":85}`,
	}))

	events, err := l.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev, found, err := l.Get(ctx, events[0].ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "prompt-eval", ev.Purpose)
	assert.Equal(t, "[user]\nmy prompt", ev.RequestBody)
	assert.Equal(t, `{"total_score":85}`, ev.ResponseBody)

	_, found, err = l.Get(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEventLog_EmptyDatabase(t *testing.T) {
	l := openTestEventLog(t)

	events, err := l.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventLog_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm_events.db")
	ctx := context.Background()

	l, err := OpenEventLog(path)
	require.NoError(t, err)
	require.NoError(t, l.Append(ctx, LLMRequestEvent{Purpose: "prompt-eval", Success: true}))
	require.NoError(t, l.Close())

	l, err = OpenEventLog(path)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	events, err := l.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "prompt-eval", events[0].Purpose)
}
