package session

import (
	"math"
	"sort"
	"time"

	"github.com/mind-engage/mindengage-bac/internal/exam"
)

// DateLayout is the day key used for streaks.
const DateLayout = "2006-01-02"

// Progress is a learner's study summary.
type Progress struct {
	TotalStudyMinutes int    `json:"totalStudyMinutes"`
	Streak            int    `json:"streak"`
	LastActivityDate  string `json:"lastActivityDate,omitempty"`
	Sessions          int    `json:"sessions"`
}

// Record folds one finished session into p. Every session counts for at
// least one minute. The streak holds on the same day, grows on the next
// day and restarts at 1 after a gap.
func (p *Progress) Record(started, finished time.Time) {
	minutes := int(math.Round(finished.Sub(started).Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	p.TotalStudyMinutes += minutes
	p.Sessions++

	day := finished.UTC().Format(DateLayout)
	streak := 1
	if p.LastActivityDate != "" {
		if last, err := time.Parse(DateLayout, p.LastActivityDate); err == nil {
			cur, _ := time.Parse(DateLayout, day)
			switch int(cur.Sub(last).Hours() / 24) {
			case 0:
				streak = p.Streak
			case 1:
				streak = p.Streak + 1
			}
		}
	}
	p.Streak = streak
	p.LastActivityDate = day
}

// ProgressFrom replays results in finish order.
func ProgressFrom(results []exam.SessionResult) Progress {
	rs := append([]exam.SessionResult(nil), results...)
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].FinishedAt < rs[j].FinishedAt })

	var p Progress
	for _, r := range rs {
		if r.FinishedAt == 0 {
			continue
		}
		p.Record(time.UnixMilli(r.StartedAt), time.UnixMilli(r.FinishedAt))
	}
	return p
}
