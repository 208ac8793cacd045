// internal/api/http/models.go
package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authmw "github.com/grayvisions/grayvisions/internal/auth/middleware"
	syncx "github.com/grayvisions/grayvisions/internal/sync"
	"github.com/grayvisions/grayvisions/internal/viewer"
)

const maxModelBytes = 256 << 20

// POST /api/models  (multipart "file": .glb, .gltf, .stl or .obj)
func UploadModelHandler(lib *viewer.Library, events EventSink, log *zap.Logger) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxModelBytes)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		u, err := lib.Save(r.Context(), hdr.Filename, f, authmw.SubjectFromContext(r.Context()))
		if err != nil {
			if errors.Is(err, viewer.ErrUnsupportedModel) {
				http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		log.Info("model uploaded", zap.String("key", u.Key), zap.String("kind", string(u.Kind)), zap.Int64("bytes", u.Size))
		record(r, events, log, syncx.ModelUploaded, u.Key, u)
		writeJSON(w, http.StatusCreated, map[string]any{
			"key":    u.Key,
			"kind":   u.Kind,
			"size":   u.Size,
			"url":    "/" + u.Key,
			"accept": viewer.Accept,
		})
	}
}

// GET /api/models?limit=
func ListModelsHandler(store viewer.UploadStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context(), parseIntDefault(r.URL.Query().Get("limit"), 50))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /models/*
func ServeModelHandler(lib *viewer.Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := viewer.KeyPrefix + strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, ct, err := lib.Open(r.Context(), key)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", ct)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		_, _ = io.Copy(w, rc)
	}
}
