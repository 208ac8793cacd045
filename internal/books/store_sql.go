package books

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

const bookColumns = `id,title,author,category,subtitle,href,image_url,description,position`

func (s *SQLStore) List(ctx context.Context, category string) ([]Book, error) {
	q := `SELECT ` + bookColumns + ` FROM books`
	var args []any
	if c := strings.TrimSpace(category); c != "" {
		q += ` WHERE LOWER(category) = LOWER($1)`
		args = append(args, c)
	}
	q += ` ORDER BY position, title`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *SQLStore) Get(ctx context.Context, id string) (Book, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id=$1`, id)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	return b, err
}

func (s *SQLStore) Upsert(ctx context.Context, b Book) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO books (`+bookColumns+`,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, author=EXCLUDED.author,
		  category=EXCLUDED.category, subtitle=EXCLUDED.subtitle, href=EXCLUDED.href,
		  image_url=EXCLUDED.image_url, description=EXCLUDED.description,
		  position=EXCLUDED.position, updated_at=EXCLUDED.updated_at`,
		b.ID, b.Title, b.Author, b.Category, b.Subtitle, b.Href, b.ImageURL, b.Description, b.Position,
		time.Now().Unix())
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(r scanner) (Book, error) {
	var b Book
	err := r.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Subtitle, &b.Href, &b.ImageURL, &b.Description, &b.Position)
	return b, err
}
