package bac

import (
	"math"

	"github.com/mind-engage/mindengage-bac/internal/formats"
)

// BaseBonus is the number of points every exam grants up front.
const BaseBonus = 10.0

// ComposeGrade adds the base bonus to achieved and max points and maps the
// ratio onto 1..10. An exam without gradable points (max <= 0) has grade 0.
func ComposeGrade(achieved, max float64) formats.Grade {
	g := formats.Grade{
		FinalPoints: achieved + BaseBonus,
		FinalTotal:  max + BaseBonus,
	}
	if max <= 0 || math.IsNaN(g.FinalPoints) || math.IsNaN(g.FinalTotal) {
		return g
	}
	v := 10 * g.FinalPoints / g.FinalTotal
	g.Value = math.Min(10, math.Max(1, v))
	return g
}

// GradeScale exposes ComposeGrade as a formats.ScaleMapper.
type GradeScale struct{}

func (GradeScale) Scale(raw map[string]float64) map[string]float64 {
	g := ComposeGrade(raw["achieved"], raw["max"])
	return map[string]float64{
		"final_points": g.FinalPoints,
		"final_total":  g.FinalTotal,
		"grade":        g.Value,
	}
}
