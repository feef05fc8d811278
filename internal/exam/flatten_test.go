package exam

import (
	"reflect"
	"testing"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestFlattenBlueprint_SingleItem(t *testing.T) {
	bp := Blueprint{
		Subject1: &Section{
			Title: "Subiectul I",
			Segments: []Segment{{
				Label: "I",
				Items: []Item{{Text: "Q", Options: []string{"a", "b"}, CorrectIndex: intp(1), Points: floatp(2)}},
			}},
		},
	}

	got := FlattenBlueprint(bp, SubjectGeography)
	if len(got.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(got.Questions))
	}
	q := got.Questions[0]
	if q.ID != "subject1-I-1" {
		t.Errorf("id = %q", q.ID)
	}
	if q.Kind != KindSingle || q.Subject != SubjectGeography {
		t.Errorf("kind/subject = %v/%v", q.Kind, q.Subject)
	}
	if !reflect.DeepEqual(q.CorrectChoiceIDs, []string{"option-1"}) {
		t.Errorf("correct = %v", q.CorrectChoiceIDs)
	}
	if q.Weight() != 2 {
		t.Errorf("points = %v, want 2", q.Weight())
	}
	if q.Stem != "I. Q" {
		t.Errorf("stem = %q", q.Stem)
	}
	wantChoices := []Choice{{ID: "option-0", Text: "a"}, {ID: "option-1", Text: "b"}}
	if !reflect.DeepEqual(q.Choices, wantChoices) {
		t.Errorf("choices = %v", q.Choices)
	}

	meta, ok := got.Meta[q.ID]
	if !ok {
		t.Fatal("missing meta")
	}
	if meta.SegmentLabel != "I.1" || meta.SectionType != "subject1" || meta.SectionTitle != "Subiectul I" || meta.Points != 2 {
		t.Errorf("meta = %+v", meta)
	}
}

func TestFlattenBlueprint_OrderAndDefaults(t *testing.T) {
	bp := Blueprint{
		Subject3: &Section{Title: "III", Segments: []Segment{{Label: "A", Items: []Item{{Text: "essay"}}}}},
		Subject1: &Section{Title: "I", Segments: []Segment{
			{Label: "A", Items: []Item{{Text: "a1", Options: []string{"x", "y"}}, {Text: "a2"}}},
			{Label: "B", Items: []Item{{Text: "b1"}}},
		}},
	}
	got := FlattenBlueprint(bp, SubjectHistory)

	var ids []string
	for _, q := range got.Questions {
		ids = append(ids, q.ID)
	}
	want := []string{"subject1-A-1", "subject1-A-2", "subject1-B-1", "subject3-A-1"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for _, q := range got.Questions {
		if q.Weight() != 1 {
			t.Errorf("%s points = %v, want default 1", q.ID, q.Weight())
		}
		if q.CorrectChoiceIDs != nil {
			t.Errorf("%s has correct ids without correctIndex", q.ID)
		}
		if q.Topics == nil || len(q.Topics) != 0 {
			t.Errorf("%s topics = %v, want empty", q.ID, q.Topics)
		}
	}
	if got.Meta["subject1-A-2"].SegmentLabel != "A.2" {
		t.Errorf("segment label = %q", got.Meta["subject1-A-2"].SegmentLabel)
	}
	if got.Meta["subject3-A-1"].SectionType != "subject3" {
		t.Errorf("section type = %q", got.Meta["subject3-A-1"].SectionType)
	}
}

func TestFlattenBlueprint_Deterministic(t *testing.T) {
	bp := Blueprint{
		Subject1: &Section{Segments: []Segment{{Label: "I", Items: []Item{{Text: "1"}, {Text: "2"}}}}},
		Subject2: &Section{Segments: []Segment{{Label: "II", Items: []Item{{Text: "3", Options: []string{"a"}, CorrectIndex: intp(0)}}}}},
	}
	a := FlattenBlueprint(bp, SubjectGeography)
	b := FlattenBlueprint(bp, SubjectGeography)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("flatten is not deterministic")
	}
}

func TestFlattenBlueprint_Empty(t *testing.T) {
	got := FlattenBlueprint(Blueprint{}, SubjectGeography)
	if len(got.Questions) != 0 || len(got.Meta) != 0 {
		t.Fatalf("got %+v, want empty", got)
	}
}
