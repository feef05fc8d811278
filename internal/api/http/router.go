package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-bac/internal/catalog"
	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/session"
	"github.com/mind-engage/mindengage-bac/internal/storage"
	syncx "github.com/mind-engage/mindengage-bac/internal/sync"
)

// EventSource replays the event log.
type EventSource interface {
	Since(ctx context.Context, after int64, limit int) ([]syncx.Event, error)
}

// Deps are the collaborators the API serves from.
type Deps struct {
	Catalog  *catalog.Catalog
	Results  exam.Store
	Sessions *session.Manager
	Content  storage.BlobStore

	// Events backs GET /events. Nil leaves the route unmounted.
	Events EventSource

	// GradeProfile grades results whose preset names no profile.
	GradeProfile string

	// Ready reports whether backing services are reachable. Nil means
	// always ready.
	Ready func(ctx context.Context) error
}

// Mount registers every route on r. Middleware is the caller's concern.
func Mount(r chi.Router, d Deps) {
	r.Post("/score", ScoreHandler())
	r.Post("/evaluate", EvaluateHandler())
	r.Post("/flatten", FlattenHandler())
	r.Post("/grade", GradeHandler(d.GradeProfile))

	r.Route("/catalog", func(cr chi.Router) {
		cr.Get("/presets", ListPresetsHandler(d.Catalog))
		cr.Get("/presets/{presetID}", GetPresetHandler(d.Catalog))
		cr.Get("/questions", ListQuestionsHandler(d.Catalog))
	})
	r.Get("/content/*", ContentHandler(d.Catalog, d.Content))

	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", StartSessionHandler(d.Sessions, d.Catalog))
		sr.Get("/active", ActiveSessionHandler(d.Sessions))
		sr.Post("/active/answers", RecordAnswerHandler(d.Sessions))
		sr.Post("/active/flags/{questionID}", ToggleFlagHandler(d.Sessions))
		sr.Post("/active/submit", SubmitSessionHandler(d.Sessions))
	})

	r.Route("/results", func(rr chi.Router) {
		rr.Get("/", ListResultsHandler(d.Results))
		rr.Get("/{resultID}", GetResultHandler(d.Results))
		rr.Get("/{resultID}/report", ResultReportHandler(d.Results, d.Catalog, d.GradeProfile))
	})
	r.Get("/profile/sections", SectionStatsHandler(d.Results, d.Catalog))
	r.Get("/profile/progress", ProgressHandler(d.Sessions))
	if d.Events != nil {
		r.Get("/events", ListEventsHandler(d.Events))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.Ready(ctx); err != nil {
				http.Error(w, "not ready: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(200)
	})
}

// NewRouter returns a bare router with every route mounted.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()
	Mount(r, d)
	return r
}
