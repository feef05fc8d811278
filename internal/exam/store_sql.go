package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SQLStore persists results in the session_results table. The full result
// document is kept as JSON; the indexed columns mirror it for filtering.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutResult(ctx context.Context, r SessionResult) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO session_results
		(id,learner_id,mode,subject,preset_id,started_at,finished_at,score,max_score,achieved_score,result_json)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO NOTHING`,
		r.ID, r.LearnerID, string(r.Mode), string(r.Subject), r.ExamPresetID,
		r.StartedAt, r.FinishedAt, r.Score, r.MaxScore, r.AchievedScore, string(doc))
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrResultExists
	}
	return nil
}

func (s *SQLStore) GetResult(ctx context.Context, id string) (SessionResult, error) {
	row := s.db.QueryRowContext(ctx, `SELECT result_json FROM session_results WHERE id=$1`, id)
	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionResult{}, ErrResultNotFound
		}
		return SessionResult{}, err
	}
	return decodeResult(doc)
}

func (s *SQLStore) ListResults(ctx context.Context, opts ListOpts) ([]SessionResult, error) {
	var (
		where []string
		args  []any
	)
	add := func(col string, v string) {
		args = append(args, v)
		where = append(where, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if opts.Subject != "" {
		add("subject", string(opts.Subject))
	}
	if opts.Mode != "" {
		add("mode", string(opts.Mode))
	}
	if opts.LearnerID != "" {
		add("learner_id", opts.LearnerID)
	}

	q := `SELECT result_json FROM session_results`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY finished_at DESC, started_at DESC, id DESC`
	paged := opts.Limit > 0
	if paged {
		offset := opts.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, opts.Limit, offset)
		q += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	out := make([]SessionResult, 0, 16)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		r, err := decodeResult(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !paged {
		out = page(out, 0, opts.Offset)
	}
	return out, nil
}

func decodeResult(doc string) (SessionResult, error) {
	var r SessionResult
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		return SessionResult{}, fmt.Errorf("decode result: %w", err)
	}
	if r.Answers == nil {
		r.Answers = map[string]Answer{}
	}
	if r.TopicBreakdown == nil {
		r.TopicBreakdown = map[string]TopicScore{}
	}
	return r, nil
}
