package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mind-engage/mindengage-bac/internal/exam"
)

func day(d, h, m int) time.Time { return time.Date(2024, 6, d, h, m, 0, 0, time.UTC) }

func TestProgressRecord(t *testing.T) {
	var p Progress

	p.Record(day(10, 9, 0), day(10, 9, 0))
	assert.Equal(t, 1, p.TotalStudyMinutes, "at least one minute")
	assert.Equal(t, 1, p.Streak)

	p.Record(day(10, 18, 0), day(10, 18, 44))
	assert.Equal(t, 45, p.TotalStudyMinutes)
	assert.Equal(t, 1, p.Streak, "same day keeps streak")

	p.Record(day(11, 8, 0), day(11, 8, 10))
	assert.Equal(t, 2, p.Streak, "next day extends streak")

	p.Record(day(14, 8, 0), day(14, 8, 10))
	assert.Equal(t, 1, p.Streak, "gap resets streak")
	assert.Equal(t, "2024-06-14", p.LastActivityDate)
	assert.Equal(t, 4, p.Sessions)
}

func TestProgressFrom_ReplaysInFinishOrder(t *testing.T) {
	rs := []exam.SessionResult{
		{ID: "c", StartedAt: day(12, 8, 0).UnixMilli(), FinishedAt: day(12, 8, 20).UnixMilli()},
		{ID: "a", StartedAt: day(10, 8, 0).UnixMilli(), FinishedAt: day(10, 8, 5).UnixMilli()},
		{ID: "b", StartedAt: day(11, 8, 0).UnixMilli(), FinishedAt: day(11, 8, 5).UnixMilli()},
		{ID: "unfinished", StartedAt: day(11, 8, 0).UnixMilli()},
	}
	p := ProgressFrom(rs)
	assert.Equal(t, 3, p.Streak)
	assert.Equal(t, 30, p.TotalStudyMinutes)
	assert.Equal(t, 3, p.Sessions)
	assert.Equal(t, "2024-06-12", p.LastActivityDate)
}
