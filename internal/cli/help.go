package cli

import "sort"

var commandHelp = map[string]string{
	"login": `Syntax: login <email> <password> [--remember]
Description: Signs in. With --remember the token survives a restart.
Example: login alice@example.com "my secret" --remember`,

	"register": `Syntax: register <username> <email> <password>
Description: Creates an account and signs in for this session.
Example: register alice alice@example.com secret123`,

	"logout": `Syntax: logout
Description: Signs out and forgets every retained token.`,

	"forgot": `Syntax: forgot <email>
Description: Requests a password reset email.
Example: forgot alice@example.com`,

	"whoami": `Syntax: whoami
Description: Shows the current session.`,

	"sync": `Syntax: sync
Description: Reloads problems and tags from the server.`,

	"add": `Syntax: add key=value...
Description: Logs a problem. Keys: id, title, url, difficulty, language, attempts,
tags (comma separated), status, time (minutes), load (1-5), date (YYYY-MM-DD), notes.
Defaults: attempts=1, status=Solved, load=3, date=today.
Example: add id=1 title="Two Sum" url=https://leetcode.com/problems/two-sum difficulty=Easy language=Go tags=array,hash-table time=12`,

	"list": `Syntax: list [status=] [difficulty=] [tag=] [time=] [q=] | list reset
Description: Shows the problems that match the current filters. Filters stick until
changed; "all" disables one. time accepts 1-5 or 5+.
Example: list difficulty=Hard time=5+ q="linked list"`,

	"show": `Syntax: show <problemId>
Description: Selects a problem and prints its details.
Example: show 1`,

	"tags": `Syntax: tags
Description: Lists every tag used by your problems.`,

	"stats": `Syntax: stats
Description: Prints solved and attempted counts and the average time taken.`,

	"help": `Syntax: help [command]
Description: Shows help.`,

	"exit": `Syntax: exit
Description: Exits the program.`,
}

func (c *CLI) printHelp(args []string) {
	if len(args) == 0 {
		c.printf("Available commands:\n")
		names := make([]string, 0, len(commandHelp))
		for name := range commandHelp {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c.printf("  %s\n", name)
		}
		c.printf("\nUse 'help <command>' for more information about a specific command.\n")
		return
	}
	if help, ok := commandHelp[args[0]]; ok {
		c.printf("%s\n", help)
		return
	}
	c.printf("Unknown command: %s\n", args[0])
}
