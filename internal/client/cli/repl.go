package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Create(ctx context.Context) error
	Vote(ctx context.Context, args []string) error
	Unvote(ctx context.Context, args []string) error
}

const (
	guestHelp  = "Available commands: register, login, (l)ist [page] [limit], next, prev, show <id>, exit"
	memberHelp = "Available commands: (l)ist [page] [limit], next, prev, show <id>, create, vote <id>, unvote <id>, whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the featurevote CLI.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when the user types "exit" or "quit", or as
// soon as ctx is done, even while waiting for input.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("fv %s> ", statusFn()))

		line, err := readLineContext(ctx, in)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(memberHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "next", "n":
			_ = a.Next(ctx)

		case "prev", "p":
			_ = a.Prev(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "create":
			_ = a.Create(ctx)

		case "vote":
			_ = a.Vote(ctx, args)

		case "unvote":
			_ = a.Unvote(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

type lineResult struct {
	line string
	err  error
}

// readLineContext reads one line but gives up when ctx is done. The read
// goroutine then stays blocked on in until the process exits; nothing else
// reads from in after the loop returns.
func readLineContext(ctx context.Context, in *bufio.Reader) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := readLine(in)
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}
