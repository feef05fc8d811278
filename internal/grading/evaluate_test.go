package grading

import (
	"testing"

	"github.com/mind-engage/mindengage-bac/internal/exam"
)

func pts(v float64) *float64 { return &v }

func TestEvaluateSession_Empty(t *testing.T) {
	ev := EvaluateSession(nil, map[string]exam.Answer{})
	if ev.Score != 0 || ev.MaxScore != 0 || ev.Achieved != 0 {
		t.Fatalf("got %+v, want zeros", ev)
	}
	if ev.TopicBreakdown == nil || len(ev.TopicBreakdown) != 0 {
		t.Fatalf("topic breakdown = %v, want empty map", ev.TopicBreakdown)
	}
}

func TestEvaluateSession_Weighted(t *testing.T) {
	questions := []exam.Question{
		{
			ID: "q1", Kind: exam.KindSingle, Topics: []string{"relief"},
			Choices: choices("a", "b"), CorrectChoiceIDs: []string{"a"}, Points: pts(2),
		},
		{
			ID: "q2", Kind: exam.KindMultiple, Topics: []string{"relief", "clima"},
			Choices: choices("a", "b", "c"), CorrectChoiceIDs: []string{"a", "b"},
		},
		{
			ID: "q3", Kind: exam.KindShort, Topics: []string{"clima"},
			CorrectShortAnswer: []string{"Dunărea"}, Points: pts(3),
		},
	}
	answers := map[string]exam.Answer{
		"q1": {ChoiceIDs: []string{"a"}},
		"q2": {ChoiceIDs: []string{"a", "c"}},
		// q3 unanswered
	}

	ev := EvaluateSession(questions, answers)

	wantAchieved := 2 + 1.0/3
	if !approx(ev.Achieved, wantAchieved) {
		t.Errorf("achieved = %v, want %v", ev.Achieved, wantAchieved)
	}
	if ev.MaxScore != 6 {
		t.Errorf("maxScore = %v, want 6", ev.MaxScore)
	}
	if !approx(ev.Score, wantAchieved/6) {
		t.Errorf("score = %v, want %v", ev.Score, wantAchieved/6)
	}

	relief := ev.TopicBreakdown["relief"]
	if !approx(relief.Correct, 2+1.0/3) || relief.Total != 3 {
		t.Errorf("relief = %+v", relief)
	}
	clima := ev.TopicBreakdown["clima"]
	if !approx(clima.Correct, 1.0/3) || clima.Total != 4 {
		t.Errorf("clima = %+v", clima)
	}
}

func TestEvaluateWithOverrides(t *testing.T) {
	questions := []exam.Question{
		{ID: "essay", Kind: exam.KindSingle, Points: pts(10)},
		{ID: "q", Kind: exam.KindShort, CorrectShortAnswer: []string{"Olt"}},
	}
	answers := map[string]exam.Answer{"q": {Text: "olt"}}

	auto := EvaluateSession(questions, answers)
	if auto.Achieved != 1 || auto.MaxScore != 11 {
		t.Fatalf("auto = %+v", auto)
	}

	manual := EvaluateWithOverrides(questions, answers, map[string]float64{"essay": 0.7})
	if !approx(manual.Achieved, 8) {
		t.Fatalf("achieved = %v, want 8", manual.Achieved)
	}
}

func TestEvaluateSession_DoesNotMutateAnswers(t *testing.T) {
	questions := []exam.Question{{ID: "q", Kind: exam.KindMultiple, CorrectChoiceIDs: []string{"a"}}}
	answers := map[string]exam.Answer{"q": {ChoiceIDs: []string{"a", "b"}}}
	_ = EvaluateSession(questions, answers)
	if got := answers["q"].ChoiceIDs; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("answers mutated: %v", got)
	}
	if len(answers) != 1 {
		t.Fatalf("answers map grew: %v", answers)
	}
}
