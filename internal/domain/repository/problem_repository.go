package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"leetcode_tracker/internal/common"
	"leetcode_tracker/internal/domain/model"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
)

type ProblemRepository interface {
	Create(ctx context.Context, problem *model.Problem) error
	// ListByUser returns the user's records in insertion order.
	ListByUser(ctx context.Context, userID string) ([]model.Problem, error)
	// ListTags returns the distinct tags used by the user's records, sorted.
	ListTags(ctx context.Context, userID string) ([]string, error)
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

func (r *pgProblemRepository) Create(ctx context.Context, p *model.Problem) error {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("pgProblemRepository.Create: marshal tags: %w", err)
	}

	query := `INSERT INTO problems (id, user_id, problem_id, problem_title, problem_url, difficulty, language,
	                                attempts, tags, status, time_taken, cognitive_load, date_solved, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.ProblemID, p.ProblemTitle, p.ProblemURL, p.Difficulty, p.Language,
		p.Attempts, string(tags), p.Status, p.TimeTaken, p.CognitiveLoad, p.DateSolved, p.Notes,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("problem with this id already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgProblemRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) ListByUser(ctx context.Context, userID string) ([]model.Problem, error) {
	query := `SELECT id, user_id, problem_id, problem_title, problem_url, difficulty, language,
	                 attempts, tags, status, time_taken, cognitive_load, date_solved, notes
	          FROM problems WHERE user_id = $1
	          ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		var (
			p    model.Problem
			tags []byte
		)
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.ProblemID, &p.ProblemTitle, &p.ProblemURL, &p.Difficulty, &p.Language,
			&p.Attempts, &tags, &p.Status, &p.TimeTaken, &p.CognitiveLoad, &p.DateSolved, &p.Notes,
		); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.ListByUser scan: %w", err)
		}
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.ListByUser tags of %s: %w", p.ID, err)
		}
		problems = append(problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListByUser rows: %w", err)
	}
	return problems, nil
}

func (r *pgProblemRepository) ListTags(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT DISTINCT tag
	          FROM problems, jsonb_array_elements_text(tags) AS tag
	          WHERE user_id = $1
	          ORDER BY tag`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListTags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.ListTags scan: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListTags rows: %w", err)
	}
	return tags, nil
}

type memoryProblemRepository struct {
	mu       sync.RWMutex
	problems []model.Problem
}

func NewMemoryProblemRepository() ProblemRepository {
	return &memoryProblemRepository{}
}

func (r *memoryProblemRepository) Create(_ context.Context, p *model.Problem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.problems {
		if existing.ID == p.ID {
			return fmt.Errorf("problem with this id already exists: %w", common.ErrConflict)
		}
	}

	stored := *p
	stored.Tags = append([]string(nil), p.Tags...)
	r.problems = append(r.problems, stored)
	return nil
}

func (r *memoryProblemRepository) ListByUser(_ context.Context, userID string) ([]model.Problem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	problems := []model.Problem{}
	for _, p := range r.problems {
		if p.UserID == userID {
			p.Tags = append([]string(nil), p.Tags...)
			problems = append(problems, p)
		}
	}
	return problems, nil
}

func (r *memoryProblemRepository) ListTags(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]struct{}{}
	for _, p := range r.problems {
		if p.UserID != userID {
			continue
		}
		for _, tag := range p.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}
