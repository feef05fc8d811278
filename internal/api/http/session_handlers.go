package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-bac/internal/catalog"
	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/session"
)

type answerReq struct {
	QuestionID string      `json:"question_id"`
	Answer     exam.Answer `json:"answer"`
}

// POST /sessions
// A preset id alone starts the preset with its own subject, duration and
// questions or blueprint.
func StartSessionHandler(mgr *session.Manager, cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p session.StartParams
		if !decode(w, r, &p) {
			return
		}
		if p.PresetID != "" {
			preset, err := cat.Preset(p.PresetID)
			if err != nil {
				fail(w, err)
				return
			}
			p = fromPreset(preset, p)
		}
		a, err := mgr.Start(learnerID(r), p)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// fromPreset fills unset start params from the preset.
func fromPreset(preset exam.Preset, p session.StartParams) session.StartParams {
	if p.Mode == "" {
		p.Mode = exam.ModeExam
	}
	if p.Subject == "" {
		p.Subject = preset.Subject
	}
	if p.DurationMinutes == 0 {
		p.DurationMinutes = preset.DurationMinutes
	}
	if p.Blueprint == nil && p.QuestionIDs == nil {
		if preset.Structure != nil {
			p.Blueprint = preset.Structure
		} else {
			p.QuestionIDs = preset.QuestionIDs
		}
	}
	return p
}

// GET /sessions/active
func ActiveSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := mgr.Active(learnerID(r))
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// POST /sessions/active/answers
func RecordAnswerHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req answerReq
		if !decode(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.QuestionID) == "" {
			http.Error(w, "question_id required", http.StatusBadRequest)
			return
		}
		if err := mgr.RecordAnswer(learnerID(r), req.QuestionID, req.Answer); err != nil {
			fail(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /sessions/active/flags/{questionID}
func ToggleFlagHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qid := chi.URLParam(r, "questionID")
		flagged, err := mgr.ToggleFlag(learnerID(r), qid)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"question_id": qid, "flagged": flagged})
	}
}

// POST /sessions/active/submit
func SubmitSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := mgr.Submit(r.Context(), learnerID(r))
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
