package service

import (
	"context"
	"fmt"
	"leetcode_tracker/internal/domain/model"
	"leetcode_tracker/internal/domain/repository"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type ProblemService struct {
	problemRepo repository.ProblemRepository
	logger      *slog.Logger
}

func NewProblemService(problemRepo repository.ProblemRepository, logger *slog.Logger) *ProblemService {
	return &ProblemService{problemRepo: problemRepo, logger: logger}
}

// AddProblem stores a record for userID. Client-supplied ids and owners are ignored.
func (s *ProblemService) AddProblem(ctx context.Context, userID string, p model.Problem) (*model.Problem, error) {
	p.ID = uuid.NewString()
	p.UserID = userID
	p.Tags = normalizeTags(p.Tags)
	p.DateSolved = p.DateSolved.UTC()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.problemRepo.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to add problem: %w", err)
	}

	s.logger.Debug("problem added", "userId", userID, "problemId", p.ProblemID)
	return &p, nil
}

func (s *ProblemService) ListProblems(ctx context.Context, userID string) ([]model.Problem, error) {
	problems, err := s.problemRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return problems, nil
}

func (s *ProblemService) ListTags(ctx context.Context, userID string) ([]string, error) {
	tags, err := s.problemRepo.ListTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// normalizeTags trims tags and drops blanks and exact duplicates, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
