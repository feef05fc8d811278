package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/formats"
	"github.com/mind-engage/mindengage-bac/internal/grading"
)

// Catalog is the subset of the question catalog reports read from.
type Catalog interface {
	Question(id string) (exam.Question, error)
	Preset(id string) (exam.Preset, error)
	Topic(id string) (exam.Topic, error)
}

type QuestionRow struct {
	ID             string             `json:"id"`
	Stem           string             `json:"stem"`
	Kind           exam.Kind          `json:"kind"`
	Meta           *exam.QuestionMeta `json:"meta,omitempty"`
	Score          float64            `json:"score"`
	Earned         float64            `json:"earnedPoints"`
	Max            float64            `json:"maxPoints"`
	Correct        bool               `json:"isCorrect"`
	Partial        bool               `json:"isPartiallyCorrect"`
	UserDisplay    string             `json:"userDisplay"`
	CorrectDisplay string             `json:"correctDisplay"`
}

type TopicRow struct {
	TopicID string  `json:"topicId"`
	Title   string  `json:"title"`
	Correct float64 `json:"correct"`
	Total   float64 `json:"total"`
	Percent int     `json:"percent"`
}

// ExamReport is the per-question breakdown of a stored result.
type ExamReport struct {
	ResultID        string        `json:"resultId"`
	Subject         exam.Subject  `json:"subject"`
	Mode            exam.Mode     `json:"mode"`
	Questions       []QuestionRow `json:"questions"`
	EarnedPoints    float64       `json:"earnedPoints"`
	TotalPoints     float64       `json:"totalPoints"`
	Grade           formats.Grade `json:"grade"`
	GradeLabel      string        `json:"gradeLabel"`
	AccuracyPercent int           `json:"accuracyPercent"`
	DurationMinutes int           `json:"durationMinutes"`
	Topics          []TopicRow    `json:"topics"`
}

// blueprintOf returns the blueprint the result was taken from: the one
// stored with it, else the structure of its preset.
func blueprintOf(r exam.SessionResult, cat Catalog) *exam.Blueprint {
	if r.ExamBlueprint != nil {
		return r.ExamBlueprint
	}
	if r.ExamPresetID == "" {
		return nil
	}
	p, err := cat.Preset(r.ExamPresetID)
	if err != nil {
		return nil
	}
	return p.Structure
}

// profileOf picks the grading profile of the result's preset, else def.
func profileOf(r exam.SessionResult, cat Catalog, def string) string {
	if r.ExamPresetID != "" {
		if p, err := cat.Preset(r.ExamPresetID); err == nil && p.Profile != "" {
			return p.Profile
		}
	}
	return def
}

func index(f exam.Flattened) (map[string]exam.Question, map[string]exam.QuestionMeta) {
	qs := make(map[string]exam.Question, len(f.Questions))
	for _, q := range f.Questions {
		qs[q.ID] = q
	}
	return qs, f.Meta
}

// orderedIDs is the administered order, or the sorted answer keys for
// results stored without one.
func orderedIDs(r exam.SessionResult) []string {
	if r.QuestionIDs != nil {
		return r.QuestionIDs
	}
	ids := make([]string, 0, len(r.Answers))
	for id := range r.Answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func weight(q exam.Question, meta *exam.QuestionMeta) float64 {
	switch {
	case q.Points != nil:
		return *q.Points
	case meta != nil:
		return meta.Points
	}
	return 1
}

// BuildExamReport recomputes every question of r from its stored answers
// and grades it with the preset's profile, falling back to profile.
// Blueprint questions take precedence over catalog questions of the same id.
func BuildExamReport(r exam.SessionResult, cat Catalog, profile string) (ExamReport, error) {
	var bpQuestions map[string]exam.Question
	var bpMeta map[string]exam.QuestionMeta
	if bp := blueprintOf(r, cat); bp != nil {
		bpQuestions, bpMeta = index(exam.FlattenBlueprint(*bp, r.Subject))
	}
	rep := ExamReport{
		ResultID:  r.ID,
		Subject:   r.Subject,
		Mode:      r.Mode,
		Questions: []QuestionRow{},
		Topics:    []TopicRow{},
	}

	for _, id := range orderedIDs(r) {
		q, ok := bpQuestions[id]
		if !ok {
			var err error
			if q, err = cat.Question(id); err != nil {
				continue
			}
		}
		var meta *exam.QuestionMeta
		if m, ok := bpMeta[id]; ok {
			meta = &m
		}
		var ans *exam.Answer
		if a, ok := r.Answers[id]; ok {
			ans = &a
		}

		score := grading.ScoreQuestion(q, ans)
		w := weight(q, meta)
		row := QuestionRow{
			ID:      id,
			Stem:    q.Stem,
			Kind:    q.Kind,
			Meta:    meta,
			Score:   score,
			Earned:  score * w,
			Max:     w,
			Correct: grading.IsCorrect(score),
			Partial: grading.IsPartial(score),
		}
		row.UserDisplay, row.CorrectDisplay = display(q, ans)
		rep.Questions = append(rep.Questions, row)
		rep.EarnedPoints += row.Earned
		rep.TotalPoints += row.Max
	}

	g, err := formats.ComposeGrade(profileOf(r, cat, profile), rep.EarnedPoints, rep.TotalPoints)
	if err != nil {
		return ExamReport{}, fmt.Errorf("grade result %s: %w", r.ID, err)
	}
	rep.Grade = g
	rep.GradeLabel = g.Label()
	rep.AccuracyPercent = int(math.Round(r.Score * 100))
	finished := r.FinishedAt
	if finished == 0 {
		finished = r.StartedAt
	}
	rep.DurationMinutes = int(math.Round(float64(finished-r.StartedAt) / 60000))

	for id, ts := range r.TopicBreakdown {
		row := TopicRow{TopicID: id, Title: id, Correct: ts.Correct, Total: ts.Total}
		if t, err := cat.Topic(id); err == nil {
			row.Title = t.Title
		}
		if ts.Total != 0 {
			row.Percent = int(math.Round(ts.Correct / ts.Total * 100))
		}
		rep.Topics = append(rep.Topics, row)
	}
	sort.Slice(rep.Topics, func(i, j int) bool { return rep.Topics[i].TopicID < rep.Topics[j].TopicID })
	return rep, nil
}

// display renders the learner's answer and the answer key as text.
func display(q exam.Question, a *exam.Answer) (user, correct string) {
	if q.Kind == exam.KindShort {
		if a != nil {
			user = strings.TrimSpace(a.Text)
		}
		return user, strings.Join(q.CorrectShortAnswer, ", ")
	}
	var selected []string
	if a != nil {
		selected = a.ChoiceIDs
	}
	return choiceText(q.Choices, selected), choiceText(q.Choices, q.CorrectChoiceIDs)
}

func choiceText(choices []exam.Choice, ids []string) string {
	var parts []string
	for _, id := range ids {
		for _, c := range choices {
			if c.ID == id {
				parts = append(parts, c.Text)
				break
			}
		}
	}
	return strings.Join(parts, ", ")
}
