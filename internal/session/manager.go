package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/grading"
	syncx "github.com/mind-engage/mindengage-bac/internal/sync"
)

var (
	ErrNoActiveSession = errors.New("no active session")
	ErrSubmitted       = errors.New("session already submitted")
	ErrUnknownQuestion = errors.New("question not part of session")
)

// Status of an active session.
type Status string

const (
	StatusActive    Status = "active"
	StatusSubmitted Status = "submitted"
)

// QuestionSource resolves catalog questions by id, skipping unknown ids.
type QuestionSource interface {
	Questions(ids []string) []exam.Question
}

type StartParams struct {
	Mode            exam.Mode       `json:"mode"`
	Subject         exam.Subject    `json:"subject"`
	QuestionIDs     []string        `json:"questionIds,omitempty"`
	DurationMinutes int             `json:"durationMinutes,omitempty"`
	Blueprint       *exam.Blueprint `json:"blueprint,omitempty"`
	PresetID        string          `json:"presetId,omitempty"`
}

// Active is the in-progress state of a learner's session. Values returned
// by the Manager are copies.
type Active struct {
	ID              string                       `json:"id"`
	LearnerID       string                       `json:"learnerId"`
	Mode            exam.Mode                    `json:"mode"`
	Subject         exam.Subject                 `json:"subject"`
	QuestionIDs     []string                     `json:"questionIds"`
	StartedAt       int64                        `json:"startedAt"`
	DurationMinutes int                          `json:"durationMinutes,omitempty"`
	Answers         map[string]exam.Answer       `json:"answers"`
	Flagged         []string                     `json:"flaggedQuestionIds"`
	Status          Status                       `json:"status"`
	PresetID        string                       `json:"presetId,omitempty"`
	Blueprint       *exam.Blueprint              `json:"examBlueprint,omitempty"`
	Questions       []exam.Question              `json:"examQuestions,omitempty"`
	Meta            map[string]exam.QuestionMeta `json:"examQuestionMeta,omitempty"`
}

// Deadline is informational; the Manager does not enforce it.
func (a Active) Deadline() (time.Time, bool) {
	if a.DurationMinutes <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(a.StartedAt).Add(time.Duration(a.DurationMinutes) * time.Minute), true
}

func (a Active) clone() Active {
	out := a
	out.QuestionIDs = append([]string(nil), a.QuestionIDs...)
	out.Flagged = append([]string(nil), a.Flagged...)
	out.Answers = make(map[string]exam.Answer, len(a.Answers))
	for k, v := range a.Answers {
		out.Answers[k] = v
	}
	return out
}

// Manager keeps one active session per learner.
type Manager struct {
	mu      sync.Mutex
	active  map[string]*Active
	source  QuestionSource
	results exam.Store
	events  syncx.Sink
	siteID  string
	now     func() time.Time
}

type Option func(*Manager)

// WithEvents appends a SessionSubmitted event to sink on every submit.
func WithEvents(sink syncx.Sink, siteID string) Option {
	return func(m *Manager) { m.events, m.siteID = sink, siteID }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(source QuestionSource, results exam.Store, opts ...Option) *Manager {
	m := &Manager{
		active:  map[string]*Active{},
		source:  source,
		results: results,
		now:     time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Start replaces any session the learner had. A blueprint is flattened and,
// when no question ids are given, supplies them.
func (m *Manager) Start(learner string, p StartParams) (Active, error) {
	if p.Mode != exam.ModePractice && p.Mode != exam.ModeExam {
		return Active{}, fmt.Errorf("invalid mode %q", p.Mode)
	}
	a := &Active{
		ID:              "session-" + uuid.NewString(),
		LearnerID:       learner,
		Mode:            p.Mode,
		Subject:         p.Subject,
		QuestionIDs:     append([]string(nil), p.QuestionIDs...),
		StartedAt:       m.now().UnixMilli(),
		DurationMinutes: p.DurationMinutes,
		Answers:         map[string]exam.Answer{},
		Flagged:         []string{},
		Status:          StatusActive,
		PresetID:        p.PresetID,
		Blueprint:       p.Blueprint,
	}
	if p.Blueprint != nil {
		flat := exam.FlattenBlueprint(*p.Blueprint, p.Subject)
		a.Questions, a.Meta = flat.Questions, flat.Meta
		if p.QuestionIDs == nil {
			a.QuestionIDs = make([]string, 0, len(flat.Questions))
			for _, q := range flat.Questions {
				a.QuestionIDs = append(a.QuestionIDs, q.ID)
			}
		}
	}

	m.mu.Lock()
	m.active[learner] = a
	m.mu.Unlock()
	log.Printf("session: %s started %s (%s, %d questions)", learner, a.ID, a.Mode, len(a.QuestionIDs))
	return a.clone(), nil
}

// Active returns the learner's current session, submitted or not.
func (m *Manager) Active(learner string) (Active, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.active[learner]
	if !ok {
		return Active{}, ErrNoActiveSession
	}
	return a.clone(), nil
}

// open returns the learner's session if it can still be edited. Callers
// hold m.mu.
func (m *Manager) open(learner string) (*Active, error) {
	a, ok := m.active[learner]
	if !ok {
		return nil, ErrNoActiveSession
	}
	if a.Status == StatusSubmitted {
		return nil, ErrSubmitted
	}
	return a, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// RecordAnswer stores ans for questionID, replacing any earlier answer.
func (m *Manager) RecordAnswer(learner, questionID string, ans exam.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.open(learner)
	if err != nil {
		return err
	}
	if !contains(a.QuestionIDs, questionID) {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	a.Answers[questionID] = ans
	return nil
}

// ToggleFlag flips the review flag of questionID and reports the new state.
func (m *Manager) ToggleFlag(learner, questionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.open(learner)
	if err != nil {
		return false, err
	}
	if !contains(a.QuestionIDs, questionID) {
		return false, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	for i, id := range a.Flagged {
		if id == questionID {
			a.Flagged = append(a.Flagged[:i], a.Flagged[i+1:]...)
			return false, nil
		}
	}
	a.Flagged = append(a.Flagged, questionID)
	return true, nil
}

// Submit evaluates the session, persists the result and marks the session
// submitted. Blueprint questions take precedence over catalog ids.
func (m *Manager) Submit(ctx context.Context, learner string) (exam.SessionResult, error) {
	m.mu.Lock()
	a, err := m.open(learner)
	if err != nil {
		m.mu.Unlock()
		return exam.SessionResult{}, err
	}
	snap := a.clone()
	a.Status = StatusSubmitted
	m.mu.Unlock()

	questions := snap.Questions
	if len(questions) == 0 {
		questions = m.source.Questions(snap.QuestionIDs)
	}
	ev := grading.EvaluateSession(questions, snap.Answers)
	res := Merge(exam.SessionResult{
		ID:            snap.ID,
		LearnerID:     learner,
		Mode:          snap.Mode,
		Subject:       snap.Subject,
		StartedAt:     snap.StartedAt,
		FinishedAt:    m.now().UnixMilli(),
		Answers:       snap.Answers,
		QuestionIDs:   snap.QuestionIDs,
		ExamPresetID:  snap.PresetID,
		ExamBlueprint: snap.Blueprint,
	}, ev)

	if err := m.results.PutResult(ctx, res); err != nil {
		m.reopen(learner, snap.ID)
		return exam.SessionResult{}, fmt.Errorf("store result: %w", err)
	}
	if m.events != nil {
		e, err := syncx.NewEvent(m.siteID, syncx.TypeSessionSubmitted, res.ID, res)
		if err == nil {
			err = m.events.Append(ctx, e)
		}
		if err != nil {
			log.Printf("session: event for %s not recorded: %v", res.ID, err)
		}
	}
	log.Printf("session: %s submitted %s score=%.3f", learner, res.ID, res.Score)
	return res, nil
}

// reopen undoes the submitted mark after a failed store write, unless the
// learner has started another session meanwhile.
func (m *Manager) reopen(learner, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.active[learner]; ok && a.ID == id {
		a.Status = StatusActive
	}
}

// Progress derives the learner's study summary from stored results.
func (m *Manager) Progress(ctx context.Context, learner string) (Progress, error) {
	rs, err := m.results.ListResults(ctx, exam.ListOpts{LearnerID: learner})
	if err != nil {
		return Progress{}, err
	}
	return ProgressFrom(rs), nil
}

// Merge copies the evaluation totals onto base.
func Merge(base exam.SessionResult, ev grading.Evaluation) exam.SessionResult {
	base.Score = ev.Score
	base.MaxScore = ev.MaxScore
	base.AchievedScore = ev.Achieved
	base.TopicBreakdown = ev.TopicBreakdown
	if base.Answers == nil {
		base.Answers = map[string]exam.Answer{}
	}
	return base
}
