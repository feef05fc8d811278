package report

import (
	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/grading"
)

var sectionLabels = map[string]string{
	"subject1": "Subiectul I",
	"subject2": "Subiectul II",
	"subject3": "Subiectul III",
}

// SectionStat is the accuracy of one exam section across sessions.
type SectionStat struct {
	Section  string  `json:"section"`
	Label    string  `json:"label"`
	Accuracy float64 `json:"accuracy"`
	Correct  float64 `json:"correct"`
	Total    float64 `json:"total"`
}

type flatPreset struct {
	questions map[string]exam.Question
	meta      map[string]exam.QuestionMeta
}

// SectionStats aggregates exam-mode results of subject per blueprint
// section. Preset blueprints are flattened once per preset. Only questions
// with section metadata count; sections without any weight are omitted.
func SectionStats(results []exam.SessionResult, subject exam.Subject, cat Catalog) []SectionStat {
	type acc struct{ correct, total float64 }
	totals := map[string]*acc{}
	cache := map[string]flatPreset{}

	for _, r := range results {
		if r.Subject != subject || r.Mode != exam.ModeExam {
			continue
		}
		var fp flatPreset
		switch {
		case r.ExamBlueprint != nil:
			fp.questions, fp.meta = index(exam.FlattenBlueprint(*r.ExamBlueprint, r.Subject))
		case r.ExamPresetID != "":
			var ok bool
			if fp, ok = cache[r.ExamPresetID]; !ok {
				if p, err := cat.Preset(r.ExamPresetID); err == nil && p.Structure != nil {
					fp.questions, fp.meta = index(exam.FlattenBlueprint(*p.Structure, r.Subject))
				}
				cache[r.ExamPresetID] = fp
			}
		}
		if fp.meta == nil {
			continue
		}

		for _, id := range orderedIDs(r) {
			meta, ok := fp.meta[id]
			if !ok || meta.SectionType == "" {
				continue
			}
			q, err := cat.Question(id)
			if err != nil {
				if q, ok = fp.questions[id]; !ok {
					continue
				}
			}
			var ans *exam.Answer
			if a, ok := r.Answers[id]; ok {
				ans = &a
			}
			w := weight(q, &meta)
			t := totals[meta.SectionType]
			if t == nil {
				t = &acc{}
				totals[meta.SectionType] = t
			}
			t.correct += grading.ScoreQuestion(q, ans) * w
			t.total += w
		}
	}

	out := []SectionStat{}
	for _, key := range exam.SectionKeys {
		t := totals[key]
		if t == nil || t.total == 0 {
			continue
		}
		out = append(out, SectionStat{
			Section:  key,
			Label:    sectionLabels[key],
			Accuracy: t.correct / t.total,
			Correct:  t.correct,
			Total:    t.total,
		})
	}
	return out
}
