package http

import (
	"net/http"

	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/formats"
	"github.com/mind-engage/mindengage-bac/internal/grading"
)

type scoreReq struct {
	Question exam.Question `json:"question"`
	Answer   *exam.Answer  `json:"answer"`
}

// Manual holds hand-graded score ratios (0..1) by question id; Rubrics are
// converted into such ratios.
type evaluateReq struct {
	Questions []exam.Question                `json:"questions"`
	Answers   map[string]exam.Answer         `json:"answers"`
	Manual    map[string]float64             `json:"manual,omitempty"`
	Rubrics   map[string]grading.RubricGrade `json:"rubrics,omitempty"`
}

type flattenReq struct {
	Blueprint exam.Blueprint `json:"blueprint"`
	Subject   exam.Subject   `json:"subject"`
}

type gradeReq struct {
	Achieved float64 `json:"achieved"`
	Max      float64 `json:"max"`
	Profile  string  `json:"profile,omitempty"`
}

type gradeResp struct {
	formats.Grade
	Profile string `json:"profile"`
	Label   string `json:"label"`
}

// POST /score
func ScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scoreReq
		if !decode(w, r, &req) {
			return
		}
		s := grading.ScoreQuestion(req.Question, req.Answer)
		writeJSON(w, http.StatusOK, map[string]any{
			"score":     s,
			"correct":   grading.IsCorrect(s),
			"partial":   grading.IsPartial(s),
			"maxPoints": req.Question.Weight(),
		})
	}
}

// POST /evaluate
func EvaluateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateReq
		if !decode(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusOK, grading.EvaluateWithOverrides(req.Questions, req.Answers, grading.ManualScores(req.Manual, req.Rubrics)))
	}
}

// POST /flatten
func FlattenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req flattenReq
		if !decode(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusOK, exam.FlattenBlueprint(req.Blueprint, req.Subject))
	}
}

// POST /grade
// The request profile defaults to defaultProfile.
func GradeHandler(defaultProfile string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gradeReq
		if !decode(w, r, &req) {
			return
		}
		if req.Profile == "" {
			req.Profile = defaultProfile
		}
		g, err := formats.ComposeGrade(req.Profile, req.Achieved, req.Max)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gradeResp{Grade: g, Profile: req.Profile, Label: g.Label()})
	}
}
