package formats

import (
	"errors"
	"fmt"

	"github.com/mind-engage/mindengage-bac/internal/exam"
)

// ValidateBlueprint runs basic consistency checks on an authored blueprint.
// Scoring never depends on it: the flattener and scorer tolerate anything
// this rejects.
func ValidateBlueprint(bp *exam.Blueprint) error {
	if bp == nil {
		return errors.New("blueprint is required")
	}
	for _, key := range exam.SectionKeys {
		sec := bp.Section(key)
		if sec == nil {
			continue
		}
		seen := map[string]bool{}
		for si, seg := range sec.Segments {
			if seg.Label == "" {
				return fmt.Errorf("%s: segment %d has no label", key, si+1)
			}
			if seen[seg.Label] {
				return fmt.Errorf("%s: duplicate segment label %s", key, seg.Label)
			}
			seen[seg.Label] = true
			for ii, item := range seg.Items {
				where := fmt.Sprintf("%s-%s-%d", key, seg.Label, ii+1)
				if item.Points != nil && *item.Points < 0 {
					return fmt.Errorf("%s: negative points", where)
				}
				if item.CorrectIndex != nil {
					ci := *item.CorrectIndex
					if len(item.Options) == 0 {
						return fmt.Errorf("%s: correctIndex without options", where)
					}
					if ci < 0 || ci >= len(item.Options) {
						return fmt.Errorf("%s: correctIndex %d out of range", where, ci)
					}
				}
			}
		}
	}
	return nil
}
