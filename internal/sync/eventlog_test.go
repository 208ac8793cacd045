package syncx

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grayvisions/grayvisions/internal/db"
)

func TestNewEvent(t *testing.T) {
	e, err := NewEvent(BookUpdated, "choice-theory", "ed", map[string]int{"position": 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"position":2}`, string(e.Data))

	e, err = NewEvent(ModelUploaded, "models/x.stl", "", nil)
	require.NoError(t, err)
	assert.Nil(t, e.Data)
}

func TestEventRepo_AppendMock(t *testing.T) {
	h, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer h.Close()

	r := NewEventRepo(h)
	r.now = func() time.Time { return time.Unix(100, 0) }
	mock.ExpectExec(`INSERT INTO event_log`).
		WithArgs(ModelUploaded, "models/x.stl", "ed", "{}", int64(100)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, r.Append(context.Background(), Event{Type: ModelUploaded, Key: "models/x.stl", Actor: "ed"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_SQLite(t *testing.T) {
	ctx := context.Background()
	h, err := db.Open(ctx, db.DriverSQLite, filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer h.Close()

	r := NewEventRepo(h)
	for _, e := range []Event{
		{Type: DocumentUploaded, Key: "intro.pdf"},
		{Type: BookUpdated, Key: "choice-theory", Actor: "ed", Data: []byte(`{"title":"Choice Theory"}`)},
		{Type: ModelUploaded, Key: "models/abc.glb"},
	} {
		require.NoError(t, r.Append(ctx, e))
	}

	all, err := r.Since(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, DocumentUploaded, all[0].Type)
	assert.Less(t, all[0].Seq, all[1].Seq)
	assert.JSONEq(t, `{"title":"Choice Theory"}`, string(all[1].Data))

	tail, err := r.Since(ctx, all[1].Seq, 10)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "models/abc.glb", tail[0].Key)

	hits, err := r.Search(ctx, "choice", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "ed", hits[0].Actor)

	latest, err := r.Search(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, ModelUploaded, latest[0].Type)
}
