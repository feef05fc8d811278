package formats

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownProfile is returned when no adapter or scale is registered for a
// profile.
var ErrUnknownProfile = errors.New("unknown exam profile")

// ScaleMapper converts raw points into a profile's grade figures.
// Input keys: "achieved", "max". Output: "final_points", "final_total", "grade".
type ScaleMapper interface {
	Scale(raw map[string]float64) map[string]float64
}

var scaleRegistry = map[string]ScaleMapper{}

// RegisterScale binds a mapper to a key like "bac.v1.grade".
func RegisterScale(key string, m ScaleMapper) { scaleRegistry[key] = m }

// ApplyScaling applies a registered scale mapper; returns raw if not found.
func ApplyScaling(key string, raw map[string]float64) map[string]float64 {
	if m, ok := scaleRegistry[key]; ok && m != nil {
		return m.Scale(raw)
	}
	// default: passthrough
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out
}

// Grade is the final grade of an exam as produced by a profile's scale.
type Grade struct {
	FinalPoints float64 `json:"finalPoints"`
	FinalTotal  float64 `json:"finalTotal"`
	Value       float64 `json:"grade"`
}

// Label formats the grade with two decimals, e.g. "9.35".
func (g Grade) Label() string { return strconv.FormatFloat(g.Value, 'f', 2, 64) }

// ComposeGrade maps achieved and max points through the scale of the
// profile's adapter.
func ComposeGrade(profile string, achieved, max float64) (Grade, error) {
	a, ok := Lookup(profile)
	if !ok {
		return Grade{}, fmt.Errorf("%w: %q", ErrUnknownProfile, profile)
	}
	if _, ok := scaleRegistry[a.ScaleKey()]; !ok {
		return Grade{}, fmt.Errorf("%w: no scale %q for %q", ErrUnknownProfile, a.ScaleKey(), profile)
	}
	out := ApplyScaling(a.ScaleKey(), map[string]float64{"achieved": achieved, "max": max})
	return Grade{
		FinalPoints: out["final_points"],
		FinalTotal:  out["final_total"],
		Value:       out["grade"],
	}, nil
}
