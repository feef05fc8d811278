package grading

import "github.com/mind-engage/mindengage-bac/internal/exam"

// Evaluation is the aggregate of one session.
type Evaluation struct {
	Score          float64                    `json:"score"`
	MaxScore       float64                    `json:"maxScore"`
	Achieved       float64                    `json:"achieved"`
	TopicBreakdown map[string]exam.TopicScore `json:"topicBreakdown"`
}

// EvaluateSession scores every question against its answer (by question id)
// and accumulates weighted totals and the per-topic breakdown.
func EvaluateSession(questions []exam.Question, answers map[string]exam.Answer) Evaluation {
	return evaluate(builtin, questions, answers, nil)
}

// EvaluateWithOverrides is EvaluateSession where manual holds score ratios
// (0..1) for questions graded by hand. Those replace the automatic score,
// which is 0 for items without an answer key.
func EvaluateWithOverrides(questions []exam.Question, answers map[string]exam.Answer, manual map[string]float64) Evaluation {
	return evaluate(builtin, questions, answers, manual)
}

func evaluate(s *scorer, questions []exam.Question, answers map[string]exam.Answer, manual map[string]float64) Evaluation {
	ev := Evaluation{TopicBreakdown: map[string]exam.TopicScore{}}

	for _, q := range questions {
		var score float64
		if m, ok := manual[q.ID]; ok {
			score = clamp01(m)
		} else {
			score = s.Score(q, answerFor(answers, q.ID))
		}
		w := q.Weight()
		ev.Achieved += score * w
		ev.MaxScore += w

		earned := score * w
		if IsCorrect(score) {
			earned = w
		}
		for _, topic := range q.Topics {
			cur := ev.TopicBreakdown[topic]
			cur.Correct += earned
			cur.Total += w
			ev.TopicBreakdown[topic] = cur
		}
	}

	if ev.MaxScore != 0 {
		ev.Score = ev.Achieved / ev.MaxScore
	}
	return ev
}

// answerFor returns a pointer to a copy of the stored answer, or nil.
func answerFor(answers map[string]exam.Answer, id string) *exam.Answer {
	a, ok := answers[id]
	if !ok {
		return nil
	}
	return &a
}
