package report_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-bac/internal/catalog"
	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/formats"
	"github.com/mind-engage/mindengage-bac/internal/formats/bac"
	"github.com/mind-engage/mindengage-bac/internal/report"
	"github.com/mind-engage/mindengage-bac/internal/session"
)

func ptr[T any](v T) *T { return &v }

func fixture() *catalog.Catalog {
	return catalog.New(catalog.Bundle{
		Topics: []exam.Topic{{ID: "relief", Title: "Relieful României"}},
		Questions: []exam.Question{
			{ID: "q1", Kind: exam.KindMultiple, Stem: "Afluenți", Topics: []string{"relief"},
				Choices:          []exam.Choice{{ID: "a", Text: "Olt"}, {ID: "b", Text: "Siret"}, {ID: "c", Text: "Someș"}},
				CorrectChoiceIDs: []string{"a", "b"}},
			{ID: "q2", Kind: exam.KindShort, Stem: "Munți", CorrectShortAnswer: []string{"Carpați"}, Points: ptr(2.0)},
		},
		ExamPresets: []exam.Preset{{
			ID: "geo-2024", Subject: exam.SubjectGeography,
			Structure: &exam.Blueprint{
				Subject1: &exam.Section{Title: "Subiectul I", Segments: []exam.Segment{{
					Label: "I",
					Items: []exam.Item{{Text: "Q", Options: []string{"a", "b"}, CorrectIndex: ptr(1), Points: ptr(2.0)}},
				}}},
				Subject2: &exam.Section{Title: "Subiectul al II-lea", Segments: []exam.Segment{{
					Label: "B",
					Items: []exam.Item{{Text: "Eseu", Points: ptr(6.0)}},
				}}},
			},
		}},
	})
}

func TestBuildExamReport_Blueprint(t *testing.T) {
	res := exam.SessionResult{
		ID: "r1", Mode: exam.ModeExam, Subject: exam.SubjectGeography,
		StartedAt: 0, FinishedAt: 90 * 60000,
		ExamPresetID: "geo-2024",
		QuestionIDs:  []string{"subject1-I-1", "subject2-B-1"},
		Answers:      map[string]exam.Answer{"subject1-I-1": {ChoiceIDs: []string{"option-1"}}},
		Score:        0.25,
	}

	rep, err := report.BuildExamReport(res, fixture(), bac.Profile)
	require.NoError(t, err)
	require.Len(t, rep.Questions, 2)

	first := rep.Questions[0]
	assert.Equal(t, "subject1-I-1", first.ID)
	assert.Equal(t, 1.0, first.Score)
	assert.Equal(t, 2.0, first.Earned)
	assert.True(t, first.Correct)
	assert.Equal(t, "b", first.UserDisplay)
	assert.Equal(t, "b", first.CorrectDisplay)
	require.NotNil(t, first.Meta)
	assert.Equal(t, "I.1", first.Meta.SegmentLabel)

	essay := rep.Questions[1]
	assert.Equal(t, 0.0, essay.Score)
	assert.Equal(t, 6.0, essay.Max)
	assert.False(t, essay.Correct)
	assert.False(t, essay.Partial)
	assert.Empty(t, essay.UserDisplay)

	assert.Equal(t, 2.0, rep.EarnedPoints)
	assert.Equal(t, 8.0, rep.TotalPoints)
	assert.Equal(t, 12.0, rep.Grade.FinalPoints)
	assert.Equal(t, 18.0, rep.Grade.FinalTotal)
	assert.InDelta(t, 6.6667, rep.Grade.Value, 1e-3)
	assert.Equal(t, "6.67", rep.GradeLabel)
	assert.Equal(t, 25, rep.AccuracyPercent)
	assert.Equal(t, 90, rep.DurationMinutes)
}

func TestBuildExamReport_CatalogQuestions(t *testing.T) {
	res := exam.SessionResult{
		ID: "r2", Mode: exam.ModePractice, Subject: exam.SubjectGeography,
		StartedAt: 1000,
		Answers: map[string]exam.Answer{
			"q2":      {Text: "  carpati "},
			"q1":      {ChoiceIDs: []string{"a", "c"}},
			"missing": {Text: "x"},
		},
		TopicBreakdown: map[string]exam.TopicScore{"relief": {Correct: 1, Total: 3}, "other": {}},
	}

	rep, err := report.BuildExamReport(res, fixture(), bac.Profile)
	require.NoError(t, err)
	require.Len(t, rep.Questions, 2)
	assert.Equal(t, "q1", rep.Questions[0].ID, "answer keys sorted when order is unknown")
	assert.InDelta(t, 1.0/3, rep.Questions[0].Score, 1e-9)
	assert.True(t, rep.Questions[0].Partial)
	assert.Equal(t, "Olt, Someș", rep.Questions[0].UserDisplay)
	assert.Equal(t, "Olt, Siret", rep.Questions[0].CorrectDisplay)

	assert.Equal(t, "carpati", rep.Questions[1].UserDisplay)
	assert.Equal(t, "Carpați", rep.Questions[1].CorrectDisplay)
	assert.True(t, rep.Questions[1].Correct)

	assert.Equal(t, 0, rep.DurationMinutes)
	require.Len(t, rep.Topics, 2)
	assert.Equal(t, "other", rep.Topics[0].Title)
	assert.Equal(t, 0, rep.Topics[0].Percent)
	assert.Equal(t, "Relieful României", rep.Topics[1].Title)
	assert.Equal(t, 33, rep.Topics[1].Percent)
}

func TestBuildExamReport_Empty(t *testing.T) {
	rep, err := report.BuildExamReport(exam.SessionResult{ID: "r", QuestionIDs: []string{}}, fixture(), bac.Profile)
	require.NoError(t, err)
	assert.Empty(t, rep.Questions)
	assert.Equal(t, 10.0, rep.Grade.FinalTotal)
	assert.Equal(t, 0.0, rep.Grade.Value)
	assert.Equal(t, "0.00", rep.GradeLabel)
}

func TestBuildExamReport_UnknownProfile(t *testing.T) {
	_, err := report.BuildExamReport(exam.SessionResult{ID: "r"}, fixture(), "sat.v1")
	assert.ErrorIs(t, err, formats.ErrUnknownProfile)
}

func TestBuildExamReport_AdHocBlueprintSession(t *testing.T) {
	cat := fixture()
	st := exam.NewInMemoryStore()
	mgr := session.NewManager(cat, st)
	bp := &exam.Blueprint{Subject1: &exam.Section{Title: "Subiectul I", Segments: []exam.Segment{{
		Label: "A",
		Items: []exam.Item{{Text: "Q", Options: []string{"a", "b"}, CorrectIndex: ptr(1)}},
	}}}}

	_, err := mgr.Start("ana", session.StartParams{Mode: exam.ModeExam, Subject: exam.SubjectGeography, Blueprint: bp})
	require.NoError(t, err)
	require.NoError(t, mgr.RecordAnswer("ana", "subject1-A-1", exam.Answer{ChoiceIDs: []string{"option-0"}}))
	res, err := mgr.Submit(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.MaxScore)

	stored, err := st.GetResult(context.Background(), res.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ExamBlueprint)

	rep, err := report.BuildExamReport(stored, cat, bac.Profile)
	require.NoError(t, err)
	require.Len(t, rep.Questions, 1)
	assert.False(t, rep.Questions[0].Correct)
	assert.Equal(t, "a", rep.Questions[0].UserDisplay)
	assert.Equal(t, 1.0, rep.TotalPoints)
	assert.Equal(t, 11.0, rep.Grade.FinalTotal)
	assert.InDelta(t, 100.0/11, rep.Grade.Value, 1e-9)
	assert.Equal(t, "9.09", rep.GradeLabel)

	stats := report.SectionStats([]exam.SessionResult{stored}, exam.SubjectGeography, cat)
	require.Len(t, stats, 1)
	assert.Equal(t, 1.0, stats[0].Total)
	assert.Equal(t, 0.0, stats[0].Accuracy)
}

func TestSectionStats(t *testing.T) {
	cat := fixture()
	results := []exam.SessionResult{
		{ID: "e1", Mode: exam.ModeExam, Subject: exam.SubjectGeography, ExamPresetID: "geo-2024",
			QuestionIDs: []string{"subject1-I-1", "subject2-B-1"},
			Answers:     map[string]exam.Answer{"subject1-I-1": {ChoiceIDs: []string{"option-1"}}}},
		{ID: "e2", Mode: exam.ModeExam, Subject: exam.SubjectGeography, ExamPresetID: "geo-2024",
			QuestionIDs: []string{"subject1-I-1"},
			Answers:     map[string]exam.Answer{"subject1-I-1": {ChoiceIDs: []string{"option-0"}}}},
		{ID: "p", Mode: exam.ModePractice, Subject: exam.SubjectGeography, ExamPresetID: "geo-2024",
			QuestionIDs: []string{"subject1-I-1"}},
		{ID: "h", Mode: exam.ModeExam, Subject: exam.SubjectHistory, ExamPresetID: "geo-2024",
			QuestionIDs: []string{"subject1-I-1"}},
		{ID: "gone", Mode: exam.ModeExam, Subject: exam.SubjectGeography, ExamPresetID: "deleted",
			QuestionIDs: []string{"subject1-I-1"}},
	}

	stats := report.SectionStats(results, exam.SubjectGeography, cat)
	require.Len(t, stats, 2)

	assert.Equal(t, "subject1", stats[0].Section)
	assert.Equal(t, "Subiectul I", stats[0].Label)
	assert.Equal(t, 4.0, stats[0].Total)
	assert.Equal(t, 0.5, stats[0].Accuracy)

	assert.Equal(t, "Subiectul II", stats[1].Label)
	assert.Equal(t, 6.0, stats[1].Total)
	assert.Equal(t, 0.0, stats[1].Accuracy)

	assert.Empty(t, report.SectionStats(nil, exam.SubjectGeography, cat))
}
