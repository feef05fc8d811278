package grading

import "github.com/mind-engage/mindengage-bac/internal/exam"

// FullCreditThreshold is the score at or above which a question counts as
// fully correct. Scores are ratios and may carry float error.
const FullCreditThreshold = 0.999

// Strategy scores one question kind. Implementations must not mutate their
// inputs and must return a value in [0,1].
type Strategy interface {
	Score(q exam.Question, a *exam.Answer) float64
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(q exam.Question, a *exam.Answer) float64

func (f StrategyFunc) Score(q exam.Question, a *exam.Answer) float64 { return f(q, a) }

// scorer routes by question kind to the matching Strategy.
type scorer struct {
	strategies map[exam.Kind]Strategy
}

// Score returns 0 for kinds without a strategy.
func (s *scorer) Score(q exam.Question, a *exam.Answer) float64 {
	st, ok := s.strategies[q.Kind]
	if !ok {
		return 0
	}
	return clamp01(st.Score(q, a))
}

var builtin = &scorer{
	strategies: map[exam.Kind]Strategy{
		exam.KindSingle:   StrategyFunc(ScoreSingleChoice),
		exam.KindMultiple: StrategyFunc(ScoreMultipleChoice),
		exam.KindShort:    StrategyFunc(ScoreShortAnswer),
	},
}

// ScoreQuestion scores a against q with the built-in strategies. A nil
// answer means the question was not answered.
func ScoreQuestion(q exam.Question, a *exam.Answer) float64 {
	return builtin.Score(q, a)
}

// IsCorrect reports whether score earns full credit.
func IsCorrect(score float64) bool { return score >= FullCreditThreshold }

// IsPartial reports whether score earns some, but not full, credit.
func IsPartial(score float64) bool { return score > 0 && !IsCorrect(score) }

// --- Strategies ---

// ScoreSingleChoice gives 1 only when exactly one choice is selected and it
// is the question's (first) correct choice.
func ScoreSingleChoice(q exam.Question, a *exam.Answer) float64 {
	if a == nil || len(q.CorrectChoiceIDs) == 0 || len(q.Choices) == 0 {
		return 0
	}
	if len(a.ChoiceIDs) != 1 {
		return 0
	}
	if a.ChoiceIDs[0] == q.CorrectChoiceIDs[0] {
		return 1
	}
	return 0
}

// ScoreMultipleChoice is the Jaccard similarity of the selected and correct
// sets. An empty union scores 0.
func ScoreMultipleChoice(q exam.Question, a *exam.Answer) float64 {
	if a == nil || a.ChoiceIDs == nil || q.CorrectChoiceIDs == nil {
		return 0
	}
	selected := toSet(a.ChoiceIDs)
	correct := toSet(q.CorrectChoiceIDs)

	inter := 0
	for k := range selected {
		if _, ok := correct[k]; ok {
			inter++
		}
	}
	union := len(selected) + len(correct) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// ScoreShortAnswer gives 1 when the text matches any accepted answer after
// diacritic folding.
func ScoreShortAnswer(q exam.Question, a *exam.Answer) float64 {
	if a == nil || a.Text == "" || len(q.CorrectShortAnswer) == 0 {
		return 0
	}
	for _, valid := range q.CorrectShortAnswer {
		if EqualsNormalized(valid, a.Text) {
			return 1
		}
	}
	return 0
}

// helpers

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}

func clamp01(v float64) float64 {
	switch {
	case v != v, v < 0: // NaN or negative
		return 0
	case v > 1:
		return 1
	}
	return v
}
