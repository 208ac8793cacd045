// internal/api/http/documents.go
package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/grayvisions/grayvisions/internal/docs"
	"github.com/grayvisions/grayvisions/internal/storage"
	syncx "github.com/grayvisions/grayvisions/internal/sync"
)

// maxDocumentBytes caps a single PDF upload.
const maxDocumentBytes = 64 << 20

// GET /api/documents
// Serves manifest.json when present, otherwise a fresh scan of the folder.
func ListDocumentsHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := docs.Read(dir)
		if errors.Is(err, os.ErrNotExist) {
			m, err = docs.Scan(dir)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

// GET /documents/{file}
func ServeDocumentHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "file")
		if !docs.IsPDF(name) || path.Base(name) != name {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		rc, err := bs.Get(r.Context(), name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/pdf")
		if cd := mime.FormatMediaType("inline", map[string]string{"filename": name}); cd != "" {
			w.Header().Set("Content-Disposition", cd)
		}
		_, _ = io.Copy(w, rc)
	}
}

// POST /api/documents  (multipart "file")
// Stores the PDF next to the others and rewrites manifest.json.
func UploadDocumentHandler(bs storage.BlobStore, dir string, events EventSink, log *zap.Logger) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		name := path.Base(hdr.Filename)
		if !docs.IsPDF(name) {
			http.Error(w, docs.ErrNotPDF.Error(), http.StatusUnsupportedMediaType)
			return
		}
		key, err := bs.Put(r.Context(), name, "application/pdf", f)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidKey) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		m, err := docs.Write(dir)
		if err != nil {
			log.Error("manifest rewrite failed", zap.String("file", key), zap.Error(err))
			http.Error(w, "manifest: "+err.Error(), http.StatusInternalServerError)
			return
		}
		doc := docs.Document{Title: docs.TitleFromFilename(key), File: key}
		log.Info("document uploaded", zap.String("file", key), zap.Int("documents", len(m.Documents)))
		record(r, events, log, syncx.DocumentUploaded, key, doc)
		writeJSON(w, http.StatusCreated, map[string]any{
			"document": doc,
			"manifest": m,
		})
	}
}
