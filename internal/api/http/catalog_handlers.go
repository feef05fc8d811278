package http

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-bac/internal/catalog"
	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/storage"
)

type presetSummary struct {
	ID              string       `json:"id"`
	Subject         exam.Subject `json:"subject"`
	Title           string       `json:"title"`
	DurationMinutes int          `json:"durationMinutes"`
	Year            int          `json:"year,omitempty"`
	Source          string       `json:"source,omitempty"`
	Structured      bool         `json:"structured"`
	Questions       int          `json:"questions"`
}

// GET /catalog/presets?subject=
func ListPresetsHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := exam.Subject(strings.TrimSpace(r.URL.Query().Get("subject")))
		out := []presetSummary{}
		for _, p := range cat.Presets(subject) {
			n := len(p.QuestionIDs)
			if p.Structure != nil {
				n = len(exam.FlattenBlueprint(*p.Structure, p.Subject).Questions)
			}
			out = append(out, presetSummary{
				ID: p.ID, Subject: p.Subject, Title: p.Title,
				DurationMinutes: p.DurationMinutes, Year: p.Year, Source: p.Source,
				Structured: p.Structure != nil, Questions: n,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /catalog/presets/{presetID}
func GetPresetHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := cat.Preset(chi.URLParam(r, "presetID"))
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// GET /catalog/questions?subject=
func ListQuestionsHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := exam.Subject(strings.TrimSpace(r.URL.Query().Get("subject")))
		if subject == "" {
			http.Error(w, "subject required", http.StatusBadRequest)
			return
		}
		out := cat.QuestionsBySubject(subject)
		if out == nil {
			out = []exam.Question{}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /content/*
func ContentHandler(cat *catalog.Catalog, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, err := cat.OpenContent(bs, key)
		if err != nil {
			fail(w, err)
			return
		}
		defer rc.Close()
		ct := mime.TypeByExtension(path.Ext(key))
		if strings.HasSuffix(key, ".md") {
			ct = "text/markdown; charset=utf-8"
		}
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		_, _ = io.Copy(w, rc)
	}
}
