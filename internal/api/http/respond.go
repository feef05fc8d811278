package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/mind-engage/mindengage-bac/internal/catalog"
	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/formats"
	"github.com/mind-engage/mindengage-bac/internal/session"
)

// LearnerHeader names the learner a request acts for.
const LearnerHeader = "X-Learner-ID"

func learnerID(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(LearnerHeader)); v != "" {
		return v
	}
	return "local"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, exam.ErrResultNotFound),
		errors.Is(err, catalog.ErrPresetNotFound),
		errors.Is(err, catalog.ErrQuestionNotFound),
		errors.Is(err, catalog.ErrContentNotFound),
		errors.Is(err, session.ErrNoActiveSession):
		return http.StatusNotFound
	case errors.Is(err, session.ErrSubmitted), errors.Is(err, exam.ErrResultExists):
		return http.StatusConflict
	case errors.Is(err, session.ErrUnknownQuestion), errors.Is(err, formats.ErrUnknownProfile):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func fail(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("api: %v", err)
	}
	http.Error(w, err.Error(), code)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
