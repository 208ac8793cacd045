// internal/api/http/router.go
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	authmw "github.com/grayvisions/grayvisions/internal/auth/middleware"
	"github.com/grayvisions/grayvisions/internal/books"
	"github.com/grayvisions/grayvisions/internal/logging"
	"github.com/grayvisions/grayvisions/internal/rbac"
	"github.com/grayvisions/grayvisions/internal/storage"
	"github.com/grayvisions/grayvisions/internal/viewer"
)

// Deps is everything the router mounts. Nil optional parts leave their
// routes out.
type Deps struct {
	Log         *zap.Logger
	Auth        *authmw.AuthService
	Login       authmw.Credentials
	CORSOrigins []string

	DocumentsDir string
	Documents    storage.BlobStore // rooted at DocumentsDir
	Models       *viewer.Library
	ModelRecords viewer.UploadStore // optional
	Books        books.Store
	Trials       TrialSearcher // optional
	Events       EventLog      // optional
	DB           Pinger        // optional
}

type EventLog interface {
	EventSink
	EventSource
}

func NewRouter(d Deps) chi.Router {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, logging.Middleware(log), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", HealthzHandler())
	r.Get("/readyz", ReadyzHandler(d.DB))

	r.Route("/api/spectrum", func(sr chi.Router) {
		sr.Get("/", SpectrumHandler())
		sr.Get("/dither", DitherHandler())
		sr.Get("/stops", StopsHandler())
		sr.Get("/spawn", SpawnHandler())
	})

	if d.Auth != nil && d.Login.Enabled {
		r.Post("/api/auth/login", authmw.LoginHandler(d.Auth, d.Login))
	}

	// Public reads
	if d.Documents != nil {
		r.Get("/api/documents", ListDocumentsHandler(d.DocumentsDir))
		r.Get("/documents/{file}", ServeDocumentHandler(d.Documents))
	}
	if d.Models != nil {
		r.Get("/models/*", ServeModelHandler(d.Models))
	}
	if d.Books != nil {
		r.Get("/api/books", ListBooksHandler(d.Books))
		r.Get("/api/books/{id}", GetBookHandler(d.Books))
	}
	if d.Trials != nil {
		r.Get("/api/trials", TrialsHandler(d.Trials, log.Named("trials")))
	}

	// Protected API (JWT → role in context → RBAC)
	if d.Auth != nil {
		r.Group(func(pr chi.Router) {
			pr.Use(authmw.JWTMiddleware(d.Auth))

			if d.Documents != nil {
				pr.With(rbac.Require(rbac.PermDocumentsUpload)).
					Post("/api/documents", UploadDocumentHandler(d.Documents, d.DocumentsDir, d.sink(), log.Named("documents")))
			}
			if d.Models != nil {
				pr.With(rbac.Require(rbac.PermModelsUpload)).
					Post("/api/models", UploadModelHandler(d.Models, d.sink(), log.Named("models")))
			}
			if d.ModelRecords != nil {
				pr.With(rbac.Require(rbac.PermModelsList)).
					Get("/api/models", ListModelsHandler(d.ModelRecords))
			}
			if d.Books != nil {
				pr.With(rbac.Require(rbac.PermBooksWrite)).
					Put("/api/books/{id}", PutBookHandler(d.Books, d.sink(), log.Named("books")))
			}
			if d.Events != nil {
				pr.With(rbac.Require(rbac.PermEventsRead)).
					Get("/api/events", EventsHandler(d.Events))
			}
		})
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	return r
}

// sink keeps a missing event log a nil interface.
func (d Deps) sink() EventSink {
	if d.Events == nil {
		return nil
	}
	return d.Events
}
