package cli

import (
	"context"
	"errors"
	"fmt"
	"leetcode_tracker/internal/domain/model"
	"leetcode_tracker/internal/filter"
	"strconv"
	"strings"
	"time"
)

// displayError carries the store's user-facing message while keeping the cause.
type displayError struct {
	msg string
	err error
}

func (e *displayError) Error() string { return e.msg }
func (e *displayError) Unwrap() error { return e.err }

func withMessage(msg string, err error) error {
	if msg == "" {
		return err
	}
	return &displayError{msg: msg, err: err}
}

func (c *CLI) handleLogin(ctx context.Context, args []string) error {
	remember := false
	var positional []string
	for _, arg := range args {
		if arg == "--remember" {
			remember = true
			continue
		}
		positional = append(positional, arg)
	}
	if len(positional) != 2 {
		return fmt.Errorf("usage: login <email> <password> [--remember]")
	}

	user, err := c.Sessions.Login(ctx, positional[0], positional[1], remember)
	if err != nil {
		msg := c.Sessions.State().Error
		c.Sessions.ClearError()
		return withMessage(msg, err)
	}
	c.printf("Logged in as %s\n", displayName(user, positional[0]))
	return c.handleSync(ctx)
}

func (c *CLI) handleRegister(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: register <username> <email> <password>")
	}

	user, err := c.Sessions.RegisterUser(ctx, args[0], args[1], args[2])
	if err != nil {
		msg := c.Sessions.State().Error
		c.Sessions.ClearError()
		return withMessage(msg, err)
	}
	c.printf("Welcome, %s\n", displayName(user, args[0]))
	return nil
}

// displayName falls back to what the user typed when the backend sent no user record.
func displayName(user *model.User, fallback string) string {
	if user == nil || user.Username == "" {
		return fallback
	}
	return user.Username
}

func (c *CLI) handleLogout(ctx context.Context) error {
	if !c.Sessions.Logout(ctx) {
		msg := c.Sessions.State().Error
		c.Sessions.ClearError()
		return withMessage(msg, errors.New("logout failed"))
	}
	c.Criteria = filter.Defaults()
	c.printf("Logged out\n")
	return nil
}

func (c *CLI) handleForgot(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: forgot <email>")
	}
	if err := c.Sessions.ForgotPassword(ctx, args[0]); err != nil {
		msg := c.Sessions.State().Error
		c.Sessions.ClearError()
		return withMessage(msg, err)
	}
	c.printf("If an account exists for %s, a reset link is on its way\n", args[0])
	return nil
}

func (c *CLI) handleWhoami() error {
	st := c.Sessions.State()
	switch {
	case st.User != nil:
		c.printf("%s <%s>\n", st.User.Username, st.User.Email)
	case st.IsAuthenticated:
		c.printf("Logged in (user details unavailable)\n")
	default:
		c.printf("Not logged in\n")
	}
	return nil
}

func (c *CLI) handleSync(ctx context.Context) error {
	if _, err := c.Collection.GetProblems(ctx); err != nil {
		return c.collectionError(err)
	}
	if _, err := c.Collection.GetProblemsTags(ctx); err != nil {
		return c.collectionError(err)
	}
	st := c.Collection.State()
	c.printf("Loaded %d problems and %d tags\n", len(st.Problems), len(st.Tags))
	return nil
}

func (c *CLI) collectionError(err error) error {
	msg := c.Collection.State().Error
	c.Collection.ClearError()
	return withMessage(msg, err)
}

func (c *CLI) handleAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: add key=value... (see 'help add')")
	}

	problem, err := parseProblem(args, time.Now())
	if err != nil {
		return err
	}
	if err := problem.Validate(); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				c.printf("  %s: %s\n", f.Field, f.Message)
			}
		}
		return err
	}

	created, err := c.Collection.AddProblem(ctx, problem)
	if err != nil {
		return c.collectionError(err)
	}
	c.printf("Added %s %s\n", created.ProblemID, created.ProblemTitle)

	// The tag vocabulary may have grown. A failed refresh keeps the old one.
	if _, err := c.Collection.GetProblemsTags(ctx); err != nil {
		c.Collection.ClearError()
	}
	return nil
}

// parseProblem builds a record from key=value arguments. Unset optional keys
// get form defaults; required ones are left for Validate to report.
func parseProblem(args []string, now time.Time) (model.Problem, error) {
	p := model.Problem{
		Attempts:      1,
		Status:        model.StatusSolved,
		CognitiveLoad: 3,
		DateSolved:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return p, fmt.Errorf("expected key=value, got %q", arg)
		}
		value = strings.TrimSpace(value)

		var err error
		switch strings.ToLower(key) {
		case "id":
			p.ProblemID = value
		case "title":
			p.ProblemTitle = value
		case "url":
			p.ProblemURL = value
		case "difficulty":
			p.Difficulty = model.ProblemDifficulty(canonical(value, difficultyNames()))
		case "language", "lang":
			p.Language = value
		case "attempts":
			p.Attempts, err = strconv.Atoi(value)
		case "tags":
			p.Tags = splitTags(value)
		case "status":
			p.Status = model.ProblemStatus(canonical(value, statusNames()))
		case "time":
			p.TimeTaken, err = strconv.Atoi(value)
		case "load":
			p.CognitiveLoad, err = strconv.Atoi(value)
		case "date":
			p.DateSolved, err = time.Parse("2006-01-02", value)
		case "notes":
			p.Notes = value
		default:
			return p, fmt.Errorf("unknown field %q", key)
		}
		if err != nil {
			return p, fmt.Errorf("invalid %s %q", key, value)
		}
	}
	return p, nil
}

func splitTags(value string) []string {
	var tags []string
	for _, tag := range strings.Split(value, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func difficultyNames() []string {
	names := make([]string, len(model.Difficulties))
	for i, d := range model.Difficulties {
		names[i] = string(d)
	}
	return names
}

func statusNames() []string {
	names := make([]string, len(model.Statuses))
	for i, s := range model.Statuses {
		names[i] = string(s)
	}
	return names
}

// canonical maps value onto the spelling used in names, ignoring case.
func canonical(value string, names []string) string {
	for _, name := range names {
		if strings.EqualFold(value, name) {
			return name
		}
	}
	return value
}

func (c *CLI) handleList(args []string) error {
	if len(args) == 1 && args[0] == "reset" {
		c.Criteria = filter.Defaults()
		args = nil
	}

	criteria := c.Criteria
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		if value == "" && key != "q" {
			value = filter.All
		}

		switch strings.ToLower(key) {
		case "status":
			criteria.Status = canonical(value, append(statusNames(), filter.All))
			if criteria.Status != filter.All && !model.ProblemStatus(criteria.Status).Valid() {
				return fmt.Errorf("unknown status %q", value)
			}
		case "difficulty":
			criteria.Difficulty = canonical(value, append(difficultyNames(), filter.All))
			if criteria.Difficulty != filter.All && !model.ProblemDifficulty(criteria.Difficulty).Valid() {
				return fmt.Errorf("unknown difficulty %q", value)
			}
		case "tag":
			criteria.Tag = value
		case "time":
			criteria.TimeTaken = value
		case "q":
			criteria.SearchQuery = value
		default:
			return fmt.Errorf("unknown filter %q", key)
		}
	}
	c.Criteria = criteria

	problems := c.Collection.State().Problems
	shown := filter.Apply(problems, c.Criteria)
	for _, p := range shown {
		c.printf("%-6s %-40s %-10s %-9s %7s  %s\n",
			p.ProblemID, truncate(p.ProblemTitle, 40), p.Difficulty, p.Status,
			filter.FormatMinutes(p.TimeTaken), strings.Join(p.Tags, ", "))
	}
	c.printf("%d of %d problems\n", len(shown), len(problems))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (c *CLI) handleShow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <problemId>")
	}

	problems := c.Collection.State().Problems
	for i := range problems {
		if problems[i].ProblemID != args[0] {
			continue
		}
		p := problems[i]
		c.Collection.SetSelectedProblem(&p)

		c.printf("%s. %s\n", p.ProblemID, p.ProblemTitle)
		c.printf("  URL:            %s\n", p.ProblemURL)
		c.printf("  Difficulty:     %s\n", p.Difficulty)
		c.printf("  Status:         %s\n", p.Status)
		c.printf("  Language:       %s\n", p.Language)
		c.printf("  Attempts:       %d\n", p.Attempts)
		c.printf("  Time taken:     %s\n", filter.FormatMinutes(p.TimeTaken))
		c.printf("  Cognitive load: %d/5\n", p.CognitiveLoad)
		c.printf("  Date solved:    %s\n", p.DateSolved.Format("2006-01-02"))
		c.printf("  Tags:           %s\n", strings.Join(p.Tags, ", "))
		if p.Notes != "" {
			c.printf("  Notes:          %s\n", p.Notes)
		}
		return nil
	}

	c.Collection.SetSelectedProblem(nil)
	return fmt.Errorf("no problem with id %s (try 'sync')", args[0])
}

func (c *CLI) handleTags() error {
	tags := c.Collection.State().Tags
	if len(tags) == 0 {
		c.printf("No tags yet\n")
		return nil
	}
	c.printf("%s\n", strings.Join(tags, ", "))
	return nil
}

func (c *CLI) handleStats() error {
	stats := filter.Summarize(c.Collection.State().Problems)
	c.printf("Solved:    %d\n", stats.Solved)
	c.printf("Attempted: %d\n", stats.Attempted)
	c.printf("Total:     %d\n", stats.Total)
	c.printf("Avg time:  %s\n", filter.FormatMinutes(stats.AvgMinutes))
	return nil
}
