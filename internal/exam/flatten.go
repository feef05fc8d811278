package exam

import "strconv"

// SectionKeys is the fixed order in which blueprint sections are visited.
var SectionKeys = []string{"subject1", "subject2", "subject3"}

// QuestionMeta carries the positional data of a flattened question.
// SegmentLabel uses a dot ("II.3") while the question id uses hyphens
// ("subject2-II-3"); stored results depend on both forms.
type QuestionMeta struct {
	SectionTitle string  `json:"sectionTitle"`
	SegmentLabel string  `json:"segmentLabel"`
	SectionType  string  `json:"sectionType"`
	Points       float64 `json:"points"`
	Item         Item    `json:"item"`
}

type Flattened struct {
	Questions []Question              `json:"questions"`
	Meta      map[string]QuestionMeta `json:"meta"`
}

// Section returns the section stored under key, or nil.
func (b Blueprint) Section(key string) *Section {
	switch key {
	case "subject1":
		return b.Subject1
	case "subject2":
		return b.Subject2
	case "subject3":
		return b.Subject3
	}
	return nil
}

// FlattenBlueprint expands sections -> segments -> items into an ordered
// list of single-choice questions. The result is a pure function of its
// inputs: ids and order are identical across calls.
func FlattenBlueprint(bp Blueprint, subject Subject) Flattened {
	out := Flattened{
		Questions: make([]Question, 0, 16),
		Meta:      map[string]QuestionMeta{},
	}
	for _, key := range SectionKeys {
		sec := bp.Section(key)
		if sec == nil {
			continue
		}
		for _, seg := range sec.Segments {
			for i, item := range seg.Items {
				pos := strconv.Itoa(i + 1)
				id := key + "-" + seg.Label + "-" + pos
				points := 1.0
				if item.Points != nil {
					points = *item.Points
				}

				choices := make([]Choice, 0, len(item.Options))
				for oi, opt := range item.Options {
					choices = append(choices, Choice{ID: optionID(oi), Text: opt})
				}
				var correct []string
				if item.CorrectIndex != nil {
					correct = []string{optionID(*item.CorrectIndex)}
				}

				p := points
				out.Questions = append(out.Questions, Question{
					ID:               id,
					Subject:          subject,
					Topics:           []string{},
					Kind:             KindSingle,
					Stem:             seg.Label + ". " + item.Text,
					Choices:          choices,
					CorrectChoiceIDs: correct,
					Points:           &p,
				})
				out.Meta[id] = QuestionMeta{
					SectionTitle: sec.Title,
					SegmentLabel: seg.Label + "." + pos,
					SectionType:  key,
					Points:       points,
					Item:         item,
				}
			}
		}
	}
	return out
}

func optionID(i int) string { return "option-" + strconv.Itoa(i) }
