package bac

import (
	"errors"
	"fmt"

	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/formats"
)

const (
	Profile  = "bac.v1"
	ScaleKey = "bac.v1.grade"
)

// Register adapter at init
func init() {
	formats.Register(Profile, New())
	formats.RegisterScale(ScaleKey, GradeScale{})
}

type AdapterBAC struct{}

func New() *AdapterBAC { return &AdapterBAC{} }

func (a *AdapterBAC) ScaleKey() string { return ScaleKey }

// Validate checks a preset against the baccalaureate layout: either a list
// of catalog questions or a blueprint with at least one section, where
// every item that offers options offers at least two.
func (a *AdapterBAC) Validate(p exam.Preset) error {
	if p.ID == "" {
		return errors.New("bac.v1: preset id is required")
	}
	if p.DurationMinutes < 0 {
		return fmt.Errorf("bac.v1: preset %s has negative duration", p.ID)
	}
	if p.Structure == nil {
		if len(p.QuestionIDs) == 0 {
			return fmt.Errorf("bac.v1: preset %s has neither questions nor structure", p.ID)
		}
		return nil
	}
	if err := formats.ValidateBlueprint(p.Structure); err != nil {
		return fmt.Errorf("bac.v1: preset %s: %w", p.ID, err)
	}
	sections := 0
	for _, key := range exam.SectionKeys {
		sec := p.Structure.Section(key)
		if sec == nil {
			continue
		}
		sections++
		for _, seg := range sec.Segments {
			for i, item := range seg.Items {
				if len(item.Options) == 1 {
					return fmt.Errorf("bac.v1: %s-%s-%d must have at least 2 options", key, seg.Label, i+1)
				}
			}
		}
	}
	if sections == 0 {
		return fmt.Errorf("bac.v1: preset %s structure has no sections", p.ID)
	}
	return nil
}
