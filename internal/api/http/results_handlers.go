package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-bac/internal/catalog"
	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/report"
	"github.com/mind-engage/mindengage-bac/internal/session"
	syncx "github.com/mind-engage/mindengage-bac/internal/sync"
)

// GET /results?subject=&mode=&limit=&offset=
func ListResultsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := store.ListResults(r.Context(), exam.ListOpts{
			Subject:   exam.Subject(strings.TrimSpace(q.Get("subject"))),
			Mode:      exam.Mode(strings.TrimSpace(q.Get("mode"))),
			LearnerID: learnerID(r),
			Limit:     parseIntDefault(q.Get("limit"), 50),
			Offset:    parseIntDefault(q.Get("offset"), 0),
		})
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// ownResult loads a result of the requesting learner. Other learners'
// results are reported as missing.
func ownResult(store exam.Store, r *http.Request) (exam.SessionResult, error) {
	id := chi.URLParam(r, "resultID")
	res, err := store.GetResult(r.Context(), id)
	if err != nil {
		return exam.SessionResult{}, err
	}
	if res.LearnerID != "" && res.LearnerID != learnerID(r) {
		return exam.SessionResult{}, fmt.Errorf("%w: %s", exam.ErrResultNotFound, id)
	}
	return res, nil
}

// GET /results/{resultID}
func GetResultHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := ownResult(store, r)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GET /results/{resultID}/report
func ResultReportHandler(store exam.Store, cat *catalog.Catalog, profile string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := ownResult(store, r)
		if err != nil {
			fail(w, err)
			return
		}
		rep, err := report.BuildExamReport(res, cat, profile)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

// GET /profile/sections?subject=
func SectionStatsHandler(store exam.Store, cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := exam.Subject(strings.TrimSpace(r.URL.Query().Get("subject")))
		if subject == "" {
			http.Error(w, "subject required", http.StatusBadRequest)
			return
		}
		list, err := store.ListResults(r.Context(), exam.ListOpts{
			Subject: subject, Mode: exam.ModeExam, LearnerID: learnerID(r),
		})
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report.SectionStats(list, subject, cat))
	}
}

// GET /profile/progress
func ProgressHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := mgr.Progress(r.Context(), learnerID(r))
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// GET /events?after=&limit=
func ListEventsHandler(events EventSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		after, err := strconv.ParseInt(strings.TrimSpace(q.Get("after")), 10, 64)
		if err != nil && q.Get("after") != "" {
			http.Error(w, "after must be an integer", http.StatusBadRequest)
			return
		}
		list, err := events.Since(r.Context(), after, parseIntDefault(q.Get("limit"), 100))
		if err != nil {
			fail(w, err)
			return
		}
		if list == nil {
			list = []syncx.Event{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}
