// Package cli is the terminal front end of the tracker. It renders store state
// and owns the filter criteria, so the stores never see them.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"leetcode_tracker/internal/domain/model"
	"leetcode_tracker/internal/filter"
	"leetcode_tracker/internal/store"
	"strings"

	"github.com/chzyer/readline"
)

// ErrExit is returned by ExecuteCommand when the user asks to leave.
var ErrExit = errors.New("exit requested")

// Sessions is the part of *store.SessionStore the front end drives.
type Sessions interface {
	State() store.Session
	Login(ctx context.Context, email, password string, rememberMe bool) (*model.User, error)
	RegisterUser(ctx context.Context, username, email, password string) (*model.User, error)
	Logout(ctx context.Context) bool
	ForgotPassword(ctx context.Context, email string) error
	ClearError()
}

// Collection is the part of *store.CollectionStore the front end drives.
type Collection interface {
	State() store.CollectionState
	AddProblem(ctx context.Context, problem model.Problem) (*model.Problem, error)
	GetProblems(ctx context.Context) ([]model.Problem, error)
	GetProblemsTags(ctx context.Context) ([]string, error)
	SetSelectedProblem(problem *model.Problem)
	ClearError()
}

type CLI struct {
	Sessions   Sessions
	Collection Collection
	Criteria   filter.Criteria
	RL         *readline.Instance
	Out        io.Writer
}

func NewCLI(sessions Sessions, collection Collection, rl *readline.Instance, out io.Writer) *CLI {
	return &CLI{
		Sessions:   sessions,
		Collection: collection,
		Criteria:   filter.Defaults(),
		RL:         rl,
		Out:        out,
	}
}

// Prompt reflects who is logged in.
func (c *CLI) Prompt() string {
	st := c.Sessions.State()
	switch {
	case st.User != nil:
		return st.User.Username + "> "
	case st.IsAuthenticated:
		return "tracker*> "
	default:
		return "tracker> "
	}
}

// Run reads and executes one line.
func (c *CLI) Run(ctx context.Context) error {
	line, err := c.RL.Readline()
	if err != nil {
		return err
	}

	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return nil
	}

	args := c.ParseArgs(line)
	err = c.ExecuteCommand(ctx, args)
	c.RL.SetPrompt(c.Prompt())
	return err
}

// ParseArgs splits input on spaces, keeping double-quoted runs together.
func (c *CLI) ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ' ', '\t':
			if !inQuotes {
				if currentArg.Len() > 0 {
					args = append(args, currentArg.String())
					currentArg.Reset()
				}
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 {
		args = append(args, currentArg.String())
	}

	return args
}

func (c *CLI) ExecuteCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided")
	}

	switch strings.ToLower(args[0]) {
	case "login":
		return c.handleLogin(ctx, args[1:])
	case "register":
		return c.handleRegister(ctx, args[1:])
	case "logout":
		return c.handleLogout(ctx)
	case "forgot":
		return c.handleForgot(ctx, args[1:])
	case "whoami":
		return c.handleWhoami()
	case "sync":
		return c.handleSync(ctx)
	case "add":
		return c.handleAdd(ctx, args[1:])
	case "list":
		return c.handleList(args[1:])
	case "show":
		return c.handleShow(args[1:])
	case "tags":
		return c.handleTags()
	case "stats":
		return c.handleStats()
	case "help":
		c.printHelp(args[1:])
		return nil
	case "exit", "quit":
		fmt.Fprintln(c.Out, "Exiting...")
		return ErrExit
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (c *CLI) printf(format string, a ...any) {
	fmt.Fprintf(c.Out, format, a...)
}
