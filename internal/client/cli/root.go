package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/featurevote/internal/client/client"
	"github.com/dmitrijs2005/featurevote/internal/common"
)

// getStatus renders the prompt status: "(jane@x.com online | vote: success)"
// or "(guest)".
func (a *App) getStatus() string {
	parts := make([]string, 0, 3)
	if u := a.currentUser(); u != nil {
		parts = append(parts, u.Email)
	} else {
		parts = append(parts, "guest")
	}
	if m := a.mode(); m != "" {
		parts[0] += " " + string(m)
	}
	if l := a.mutation.Label(); l != "" {
		parts = append(parts, l)
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " | "))
}

// Root prints the banner and runs the REPL on the app's input.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to featurevote CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// report prints err for the user and returns it. A 401 sends the user back
// to the guest state, where login is the way forward.
func (a *App) report(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		if a.dropUser() {
			fmt.Fprintln(a.out, "session expired, please log in")
		} else {
			fmt.Fprintln(a.out, "Please log in first")
		}
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Backend unavailable, try again later")
	case errors.Is(err, client.ErrDecode):
		fmt.Fprintln(a.out, "Unexpected response from backend")
	case errors.Is(err, common.ErrValidation):
		fmt.Fprintln(a.out, err.Error())
	default:
		fmt.Fprintf(a.out, "Error: %s\n", err)
	}
	a.logger.Debug(ctx, "command failed", "error", err)
	return err
}
