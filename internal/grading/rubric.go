package grading

import "fmt"

// Rubric describes manual grading of an open-ended item.
type Rubric struct {
	Criteria []Criterion `json:"criteria" yaml:"criteria"`
	Max      float64     `json:"max_points" yaml:"max_points"`
}

type Criterion struct {
	Key       string  `json:"key" yaml:"key"`
	Desc      string  `json:"desc" yaml:"desc"`
	MaxPoints float64 `json:"max_points" yaml:"max_points"`
}

// ScoreRubric sums awarded points, clamping each criterion to its range and
// the total to r.Max when set.
func ScoreRubric(r Rubric, awarded map[string]float64) (float64, []string) {
	total := 0.0
	notes := make([]string, 0, len(r.Criteria))
	for _, c := range r.Criteria {
		v := awarded[c.Key]
		if v < 0 {
			v = 0
		}
		if v > c.MaxPoints {
			v = c.MaxPoints
		}
		total += v
		notes = append(notes, fmt.Sprintf("%s:%.2f", c.Key, v))
	}
	if r.Max > 0 && total > r.Max {
		total = r.Max
	}
	return total, notes
}

// RubricRatio converts a rubric outcome into a score ratio usable with
// EvaluateWithOverrides. The denominator is r.Max, or the sum of criterion
// maxima when r.Max is unset.
func RubricRatio(r Rubric, awarded map[string]float64) float64 {
	max := r.Max
	if max <= 0 {
		for _, c := range r.Criteria {
			max += c.MaxPoints
		}
	}
	if max <= 0 {
		return 0
	}
	total, _ := ScoreRubric(r, awarded)
	return clamp01(total / max)
}

// RubricGrade is a hand-graded item: its rubric and the points awarded
// per criterion key.
type RubricGrade struct {
	Rubric  Rubric             `json:"rubric" yaml:"rubric"`
	Awarded map[string]float64 `json:"awarded" yaml:"awarded"`
}

// ManualScores converts rubric grades by question id into the manual map
// of EvaluateWithOverrides. Entries already in manual win.
func ManualScores(manual map[string]float64, rubrics map[string]RubricGrade) map[string]float64 {
	out := make(map[string]float64, len(manual)+len(rubrics))
	for id, g := range rubrics {
		out[id] = RubricRatio(g.Rubric, g.Awarded)
	}
	for id, v := range manual {
		out[id] = v
	}
	return out
}
