// internal/api/http/books.go
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/grayvisions/grayvisions/internal/books"
	syncx "github.com/grayvisions/grayvisions/internal/sync"
)

type booksResp struct {
	Books      []books.Book `json:"books"`
	Disclosure string       `json:"disclosure"`
}

type bookResp struct {
	Book       books.Book `json:"book"`
	Disclosure string     `json:"disclosure"`
}

// GET /api/books?category=
func ListBooksHandler(store books.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, booksResp{Books: list, Disclosure: books.Disclosure})
	}
}

// GET /api/books/{id}
func GetBookHandler(store books.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, books.ErrNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, bookResp{Book: b, Disclosure: books.Disclosure})
	}
}

// maxBookBytes caps a book edit body.
const maxBookBytes = 1 << 20

// PUT /api/books/{id}
// The path id wins over any id in the body.
func PutBookHandler(store books.Store, events EventSink, log *zap.Logger) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBookBytes)
		var b books.Book
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				http.Error(w, "book too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		b.ID = chi.URLParam(r, "id")
		if err := store.Upsert(r.Context(), b); err != nil {
			if errors.Is(err, books.ErrInvalid) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		record(r, events, log, syncx.BookUpdated, b.ID, b)
		writeJSON(w, http.StatusOK, bookResp{Book: b, Disclosure: books.Disclosure})
	}
}
