package viewer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/grayvisions/grayvisions/internal/idgen"
	"github.com/grayvisions/grayvisions/internal/storage"
)

// KeyPrefix is where uploaded models live in the blob store.
const KeyPrefix = "models/"

type Upload struct {
	Key          string    `json:"key"`
	Kind         Kind      `json:"kind"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size_bytes"`
	UploadedBy   string    `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type UploadStore interface {
	Record(ctx context.Context, u Upload) error
	List(ctx context.Context, limit int) ([]Upload, error)
}

type SQLUploads struct {
	db *sql.DB
}

func NewSQLUploads(db *sql.DB) *SQLUploads { return &SQLUploads{db: db} }

func (s *SQLUploads) Record(ctx context.Context, u Upload) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO model_uploads
		(key,kind,original_name,size_bytes,uploaded_by,created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		u.Key, string(u.Kind), u.OriginalName, u.Size, u.UploadedBy, u.CreatedAt.Unix())
	return err
}

// List returns the newest uploads first.
func (s *SQLUploads) List(ctx context.Context, limit int) ([]Upload, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT key,kind,original_name,size_bytes,uploaded_by,created_at
		FROM model_uploads ORDER BY created_at DESC, key LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Upload{}
	for rows.Next() {
		var (
			u    Upload
			kind string
			ts   int64
		)
		if err := rows.Scan(&u.Key, &kind, &u.OriginalName, &u.Size, &u.UploadedBy, &ts); err != nil {
			return nil, err
		}
		u.Kind = Kind(kind)
		u.CreatedAt = time.Unix(ts, 0).UTC()
		out = append(out, u)
	}
	return out, rows.Err()
}

// Library stores model files in a blob store and records each upload.
type Library struct {
	Blobs   storage.BlobStore
	Records UploadStore // optional
	Now     func() time.Time
}

// Save validates the file name, writes the body under a fresh key, and
// records it. The stored key keeps the original extension so the loader can
// be picked again on download.
func (l *Library) Save(ctx context.Context, filename string, body io.Reader, uploadedBy string) (Upload, error) {
	kind, err := KindFromFilename(filename)
	if err != nil {
		return Upload{}, err
	}
	id, err := idgen.Generate()
	if err != nil {
		return Upload{}, fmt.Errorf("model key: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	key := KeyPrefix + id + ext

	cr := &countingReader{r: body}
	key, err = l.Blobs.Put(ctx, key, ContentType(filename), cr)
	if err != nil {
		return Upload{}, fmt.Errorf("store model: %w", err)
	}
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	u := Upload{
		Key:          key,
		Kind:         kind,
		OriginalName: filepath.Base(filename),
		Size:         cr.n,
		UploadedBy:   uploadedBy,
		CreatedAt:    now().UTC(),
	}
	if l.Records != nil {
		if err := l.Records.Record(ctx, u); err != nil {
			// an unrecorded blob would still be served from /models/
			if derr := l.Blobs.Delete(context.WithoutCancel(ctx), key); derr != nil {
				err = errors.Join(err, fmt.Errorf("remove model: %w", derr))
			}
			return Upload{}, fmt.Errorf("record model: %w", err)
		}
	}
	return u, nil
}

// Open returns a stored model and its content type.
func (l *Library) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if !strings.HasPrefix(key, KeyPrefix) {
		return nil, "", storage.ErrNotFound
	}
	rc, err := l.Blobs.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}
	return rc, ContentType(key), nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
