package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eventsync/eventsync/internal/client/routes"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	open(ctx context.Context, path string, args []string)
	back(ctx context.Context)
	logout(ctx context.Context)
}

// commands maps REPL words to routes.
var commands = map[string]string{
	"home":     routes.Home,
	"login":    routes.Login,
	"signup":   routes.Signup,
	"forgot":   routes.ForgotPassword,
	"calendar": routes.Calendar,
	"cal":      routes.Calendar,
	"profile":  routes.Profile,
	"admin":    routes.Admin,
}

// runREPL starts a simple read-eval-print loop for the EventSync CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to a. Remaining tokens are passed to the screen as arguments.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             - show available commands
//	  - login            - sign in
//	  - signup [restart] - create an account
//	  - forgot           - reset a forgotten password
//	  - exit | quit      - leave the program
//
//	Logged in:
//	  - help             - show available commands
//	  - calendar [args]  - list meetings (q=, status=, priority=, sort=)
//	  - profile [edit]   - show or edit the profile
//	  - admin            - meeting statistics (admins only)
//	  - back             - return to the previous page
//	  - logout           - sign out
//	  - exit | quit      - leave the program
//
// "go <path>" opens any route directly. Screens report their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("es> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: calendar, profile [edit], admin, back, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, forgot, exit")
			}

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			a.open(ctx, args[0], args[1:])

		case "back":
			a.back(ctx)

		case "logout":
			a.logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			path, ok := commands[cmd]
			if !ok {
				printlnFn("Unknown command:", cmd)
				continue
			}
			a.open(ctx, path, args)
		}
	}
}
