// internal/api/http/trials.go
package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/grayvisions/grayvisions/internal/trials"
)

type TrialSearcher interface {
	Search(ctx context.Context, q trials.Query) (trials.Page, error)
}

// GET /api/trials?cond=&term=&status=&pageSize=&pageToken=
func TrialsHandler(s TrialSearcher, log *zap.Logger) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		qs := r.URL.Query()
		q := trials.Query{
			Condition: qs.Get("cond"),
			Term:      qs.Get("term"),
			PageSize:  parseIntDefault(qs.Get("pageSize"), 0),
			PageToken: qs.Get("pageToken"),
		}
		if st := strings.TrimSpace(qs.Get("status")); st != "" {
			q.Status = strings.Split(strings.ToUpper(st), ",")
		}
		page, err := s.Search(r.Context(), q)
		if err != nil {
			log.Warn("trials search failed", zap.Error(err))
			switch {
			case errors.Is(err, trials.ErrUpstream):
				http.Error(w, "clinical trials service unavailable", http.StatusBadGateway)
				return
			case errors.Is(err, context.DeadlineExceeded):
				http.Error(w, "clinical trials search timed out", http.StatusGatewayTimeout)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}
