// Package syncx keeps an append-only log of content changes. Offline
// mirrors poll it by sequence number; editors search it as an audit trail.
package syncx

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"
)

const (
	DocumentUploaded = "DocumentUploaded"
	ModelUploaded    = "ModelUploaded"
	BookUpdated      = "BookUpdated"
)

type Event struct {
	Seq       int64           `json:"seq"`
	Type      string          `json:"type"`
	Key       string          `json:"key"` // natural key: file name, blob key or book id
	Actor     string          `json:"actor,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewEvent marshals data into an event payload.
func NewEvent(typ, key, actor string, data any) (Event, error) {
	e := Event{Type: typ, Key: key, Actor: actor}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return Event{}, err
		}
		e.Data = b
	}
	return e, nil
}

type EventRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db, now: time.Now} }

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	data := string(e.Data)
	if data == "" {
		data = "{}"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, actor, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		e.Type, e.Key, e.Actor, data, r.now().Unix())
	return err
}

// Since returns events with a sequence number above seq, oldest first.
func (r *EventRepo) Since(ctx context.Context, seq int64, limit int) ([]Event, error) {
	return r.query(ctx,
		`SELECT seq, typ, key, actor, data, created_at FROM event_log
		 WHERE seq > $1 ORDER BY seq LIMIT $2`, seq, clampLimit(limit))
}

// Search matches q against type and key, newest first. An empty q lists
// the latest events.
func (r *EventRepo) Search(ctx context.Context, q string, limit int) ([]Event, error) {
	return r.query(ctx,
		`SELECT seq, typ, key, actor, data, created_at FROM event_log
		 WHERE typ LIKE '%'||$1||'%' OR key LIKE '%'||$1||'%'
		 ORDER BY seq DESC LIMIT $2`, strings.TrimSpace(q), clampLimit(limit))
}

func (r *EventRepo) query(ctx context.Context, q string, args ...any) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var (
			e    Event
			data string
			ts   int64
		)
		if err := rows.Scan(&e.Seq, &e.Type, &e.Key, &e.Actor, &data, &ts); err != nil {
			return nil, err
		}
		e.Data = json.RawMessage(data)
		e.CreatedAt = time.Unix(ts, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func clampLimit(n int) int {
	if n <= 0 || n > 500 {
		return 100
	}
	return n
}
