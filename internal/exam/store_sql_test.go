package exam_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-bac/internal/db"
	"github.com/mind-engage/mindengage-bac/internal/exam"
)

func openSQLStore(t *testing.T) *exam.SQLStore {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })
	return exam.NewSQLStore(dbh, string(db.DriverSQLite))
}

func sampleResult(id string, subject exam.Subject, mode exam.Mode, finished int64) exam.SessionResult {
	return exam.SessionResult{
		ID:         id,
		LearnerID:  "learner-1",
		Mode:       mode,
		Subject:    subject,
		StartedAt:  finished - 60_000,
		FinishedAt: finished,
		Answers: map[string]exam.Answer{
			"subject1-I-1": {ChoiceIDs: []string{"option-1"}},
			"q-short":      {Text: "Carpați"},
		},
		Score:          0.5,
		MaxScore:       4,
		AchievedScore:  2,
		TopicBreakdown: map[string]exam.TopicScore{"relief": {Correct: 1, Total: 2}},
		QuestionIDs:    []string{"subject1-I-1", "q-short"},
		ExamPresetID:   "geo-2024",
	}
}

func TestStores_PutGetList(t *testing.T) {
	stores := map[string]exam.Store{
		"memory": exam.NewInMemoryStore(),
		"sqlite": openSQLStore(t),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r1 := sampleResult("r1", exam.SubjectGeography, exam.ModeExam, 1_000_000)
			r2 := sampleResult("r2", exam.SubjectGeography, exam.ModePractice, 2_000_000)
			r3 := sampleResult("r3", exam.SubjectHistory, exam.ModeExam, 3_000_000)
			for _, r := range []exam.SessionResult{r1, r2, r3} {
				require.NoError(t, store.PutResult(ctx, r))
			}

			got, err := store.GetResult(ctx, "r1")
			require.NoError(t, err)
			assert.Equal(t, r1, got)

			_, err = store.GetResult(ctx, "missing")
			assert.ErrorIs(t, err, exam.ErrResultNotFound)

			err = store.PutResult(ctx, r1)
			assert.ErrorIs(t, err, exam.ErrResultExists)

			all, err := store.ListResults(ctx, exam.ListOpts{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "r3", all[0].ID)
			assert.Equal(t, "r1", all[2].ID)

			geo, err := store.ListResults(ctx, exam.ListOpts{Subject: exam.SubjectGeography, Mode: exam.ModeExam})
			require.NoError(t, err)
			require.Len(t, geo, 1)
			assert.Equal(t, "r1", geo[0].ID)

			paged, err := store.ListResults(ctx, exam.ListOpts{Limit: 1, Offset: 1})
			require.NoError(t, err)
			require.Len(t, paged, 1)
			assert.Equal(t, "r2", paged[0].ID)

			tail, err := store.ListResults(ctx, exam.ListOpts{Offset: 2})
			require.NoError(t, err)
			require.Len(t, tail, 1)
			assert.Equal(t, "r1", tail[0].ID)
		})
	}
}
