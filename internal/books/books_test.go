package books

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grayvisions/grayvisions/internal/db"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	h, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		h.Close()
	})
	return h, mock
}

var columns = []string{"id", "title", "author", "category", "subtitle", "href", "image_url", "description", "position"}

func TestValidate(t *testing.T) {
	ok := Defaults()[0]
	assert.NoError(t, ok.Validate())

	for _, b := range []Book{
		{Title: "x", Href: "https://a.b"},
		{ID: "x", Href: "https://a.b"},
		{ID: "x", Title: "x", Href: "/relative"},
		{ID: "x", Title: "x", Href: "ftp://a.b/c"},
	} {
		assert.ErrorIs(t, b.Validate(), ErrInvalid)
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	require.Len(t, d, 7)
	ids := map[string]bool{}
	for i, b := range d {
		assert.NoError(t, b.Validate(), b.ID)
		assert.Equal(t, i+1, b.Position)
		assert.False(t, ids[b.ID], "duplicate id %s", b.ID)
		ids[b.ID] = true
	}
}

func TestSQLStore_ListByCategory(t *testing.T) {
	h, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .+ FROM books WHERE LOWER\(category\) = LOWER\(\$1\) ORDER BY position, title`).
		WithArgs("self-help").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("12-rules-for-life", "12 Rules for Life", "Jordan B. Peterson", "Self-Help", "Amazon", "https://amzn.to/49TyXAP", "", "", 4))

	got, err := NewSQLStore(h).List(context.Background(), "self-help")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12-rules-for-life", got[0].ID)
	assert.Equal(t, 4, got[0].Position)
}

func TestSQLStore_ListAll(t *testing.T) {
	h, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .+ FROM books ORDER BY position, title`).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := NewSQLStore(h).List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSQLStore_GetMissing(t *testing.T) {
	h, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .+ FROM books WHERE id=\$1`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := NewSQLStore(h).Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStore_Upsert(t *testing.T) {
	h, mock := newMockDB(t)
	b := Defaults()[1]
	mock.ExpectExec(`INSERT INTO books .+ ON CONFLICT \(id\) DO UPDATE`).
		WithArgs(b.ID, b.Title, b.Author, b.Category, b.Subtitle, b.Href, b.ImageURL, b.Description, b.Position, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewSQLStore(h).Upsert(context.Background(), b))
}

func TestSQLStore_UpsertRejectsInvalid(t *testing.T) {
	h, _ := newMockDB(t)
	err := NewSQLStore(h).Upsert(context.Background(), Book{ID: "x"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSQLStore_SQLiteSeedAndList(t *testing.T) {
	ctx := context.Background()
	h, err := db.Open(ctx, db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "books.db")+"?mode=rwc")
	require.NoError(t, err)
	defer h.Close()

	s := NewSQLStore(h)
	n, err := Seed(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	// seeding twice updates in place
	_, err = Seed(ctx, s)
	require.NoError(t, err)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 7)
	assert.Equal(t, "the-power-of-now", all[0].ID)

	spirit, err := s.List(ctx, "SPIRITUALITY")
	require.NoError(t, err)
	assert.Len(t, spirit, 2)

	got, err := s.Get(ctx, "cant-hurt-me")
	require.NoError(t, err)
	assert.Equal(t, "David Goggins", got.Author)
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	_, err := Seed(ctx, s)
	require.NoError(t, err)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 7)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Position, all[i].Position)
	}

	selfHelp, err := s.List(ctx, "self-help")
	require.NoError(t, err)
	assert.Len(t, selfHelp, 3)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
