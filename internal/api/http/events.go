// internal/api/http/events.go
package http

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	authmw "github.com/grayvisions/grayvisions/internal/auth/middleware"
	syncx "github.com/grayvisions/grayvisions/internal/sync"
)

type EventSink interface {
	Append(ctx context.Context, e syncx.Event) error
}

type EventSource interface {
	Since(ctx context.Context, seq int64, limit int) ([]syncx.Event, error)
	Search(ctx context.Context, q string, limit int) ([]syncx.Event, error)
}

// record appends a change event. The change itself already succeeded, so a
// logging failure is only reported.
func record(r *http.Request, sink EventSink, log *zap.Logger, typ, key string, data any) {
	if sink == nil {
		return
	}
	e, err := syncx.NewEvent(typ, key, authmw.SubjectFromContext(r.Context()), data)
	if err == nil {
		err = sink.Append(r.Context(), e)
	}
	if err != nil {
		log.Warn("event log append failed", zap.String("type", typ), zap.String("key", key), zap.Error(err))
	}
}

// GET /api/events?since=&limit=   (sync feed, oldest first)
// GET /api/events?q=&limit=       (audit search, newest first)
func EventsHandler(src EventSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs := r.URL.Query()
		limit := parseIntDefault(qs.Get("limit"), 100)

		var (
			list []syncx.Event
			err  error
		)
		if s := qs.Get("since"); s != "" {
			seq, perr := strconv.ParseInt(s, 10, 64)
			if perr != nil || seq < 0 {
				http.Error(w, "since must be a non-negative integer", http.StatusBadRequest)
				return
			}
			list, err = src.Since(r.Context(), seq, limit)
		} else {
			list, err = src.Search(r.Context(), qs.Get("q"), limit)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
