package client

import (
	"context"
	"leetcode_tracker/internal/domain/model"
	"net/http"
)

// AddProblem posts a new record and returns the server's canonical copy (with id).
func (c *Client) AddProblem(ctx context.Context, token string, problem model.Problem) (*model.Problem, error) {
	problem.ID = ""

	var created model.Problem
	err := c.do(ctx, call{
		op:      "add problem",
		method:  http.MethodPost,
		path:    "/api/problems/add",
		token:   token,
		body:    problem,
		out:     &created,
		failMsg: "Failed to add problem",
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListProblems(ctx context.Context, token string) ([]model.Problem, error) {
	problems := []model.Problem{}
	err := c.do(ctx, call{
		op:      "list problems",
		method:  http.MethodGet,
		path:    "/api/problems/all",
		token:   token,
		out:     &problems,
		failMsg: "Failed to fetch problems",
	})
	if err != nil {
		return nil, err
	}
	return problems, nil
}

func (c *Client) ListTags(ctx context.Context, token string) ([]string, error) {
	tags := []string{}
	err := c.do(ctx, call{
		op:      "list tags",
		method:  http.MethodGet,
		path:    "/api/problems/tags",
		token:   token,
		out:     &tags,
		failMsg: "Failed to fetch tags",
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}
