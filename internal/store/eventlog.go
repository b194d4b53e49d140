package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/promptgym/ent"
	"github.com/abhisek/promptgym/ent/llmrequestevent"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// LLMRequestEvent records one request to the evaluation/generation provider.
type LLMRequestEvent struct {
	ID           string
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// EventLog persists LLM request events in a SQLite database living next
// to the progress document. It is purely observational: failures to
// write it never fail the request being logged.
type EventLog struct {
	db     *sql.DB
	client *ent.Client
}

// OpenEventLog opens the event database at path, creating it if needed.
// It applies recommended pragmas and runs auto-migration.
func OpenEventLog(path string) (*EventLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open event database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	client := ent.NewClient(ent.Driver(drv))

	if err := client.Schema.Create(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &EventLog{db: db, client: client}, nil
}

// Close closes the database connection.
func (l *EventLog) Close() error {
	return l.client.Close()
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// Append assigns the event an ID and stores it. The timestamp is set by
// the schema default at insert time.
func (l *EventLog) Append(ctx context.Context, ev LLMRequestEvent) error {
	_, err := l.client.LLMRequestEvent.Create().
		SetUUID(uuid.NewString()).
		SetProvider(ev.Provider).
		SetModel(ev.Model).
		SetPurpose(ev.Purpose).
		SetInputTokens(ev.InputTokens).
		SetOutputTokens(ev.OutputTokens).
		SetLatencyMs(ev.LatencyMs).
		SetSuccess(ev.Success).
		SetErrorMessage(ev.ErrorMessage).
		SetRequestBody(ev.RequestBody).
		SetResponseBody(ev.ResponseBody).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// List returns the most recent limit events, newest first.
// limit <= 0 returns all events.
func (l *EventLog) List(ctx context.Context, limit int) ([]LLMRequestEvent, error) {
	q := l.client.LLMRequestEvent.Query().
		Order(ent.Desc(llmrequestevent.FieldID))
	if limit > 0 {
		q = q.Limit(limit)
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}

	events := make([]LLMRequestEvent, len(rows))
	for i, row := range rows {
		events[i] = eventFromRow(row)
	}
	return events, nil
}

// Get returns the event with the given ID, or false if not found.
func (l *EventLog) Get(ctx context.Context, id string) (LLMRequestEvent, bool, error) {
	row, err := l.client.LLMRequestEvent.Query().
		Where(llmrequestevent.UUID(id)).
		Only(ctx)
	if ent.IsNotFound(err) {
		return LLMRequestEvent{}, false, nil
	}
	if err != nil {
		return LLMRequestEvent{}, false, fmt.Errorf("get LLM event: %w", err)
	}
	return eventFromRow(row), true, nil
}

func eventFromRow(row *ent.LLMRequestEvent) LLMRequestEvent {
	return LLMRequestEvent{
		ID:           row.UUID,
		Timestamp:    row.Timestamp,
		Provider:     row.Provider,
		Model:        row.Model,
		Purpose:      row.Purpose,
		InputTokens:  row.InputTokens,
		OutputTokens: row.OutputTokens,
		LatencyMs:    row.LatencyMs,
		Success:      row.Success,
		ErrorMessage: row.ErrorMessage,
		RequestBody:  row.RequestBody,
		ResponseBody: row.ResponseBody,
	}
}
