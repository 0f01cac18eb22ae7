package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/featurevote/internal/client/services"
	"github.com/dmitrijs2005/featurevote/internal/common"
)

// requireLogin prints a hint and returns common.ErrNotLoggedIn for guests.
func (a *App) requireLogin() error {
	if a.isLoggedIn() {
		return nil
	}
	fmt.Fprintln(a.out, "Please log in first")
	return common.ErrNotLoggedIn
}

// Create prompts for a title and an optional description and submits the
// feature. A blank title is refused before anything is sent.
func (a *App) Create(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	var id int64
	err = a.mutation.Run("create", func() error {
		f, err := a.featureService.Create(ctx, title, description)
		if err == nil {
			id = f.ID
		}
		return err
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyTitle) {
			fmt.Fprintln(a.out, "Title is required")
			return err
		}
		return a.report(ctx, err)
	}

	fmt.Fprintf(a.out, "Created feature #%d\n", id)
	a.page = services.DefaultPage
	return a.renderPage(ctx)
}

// Vote casts a vote and re-renders the current page, which is fetched anew
// because the vote invalidated every cached listing.
func (a *App) Vote(ctx context.Context, args []string) error {
	return a.voteCommand(ctx, "vote", args, func(id int64) error {
		_, err := a.featureService.Vote(ctx, id)
		return err
	})
}

func (a *App) Unvote(ctx context.Context, args []string) error {
	return a.voteCommand(ctx, "unvote", args, func(id int64) error {
		_, err := a.featureService.RemoveVote(ctx, id)
		return err
	})
}

func (a *App) voteCommand(ctx context.Context, name string, args []string, fn func(id int64) error) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintf(a.out, "Usage: %s <id>\n", name)
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	if err := a.mutation.Run(name, func() error { return fn(id) }); err != nil {
		return a.report(ctx, err)
	}

	if name == "vote" {
		fmt.Fprintf(a.out, "Voted for #%d\n", id)
	} else {
		fmt.Fprintf(a.out, "Removed vote from #%d\n", id)
	}
	return a.renderPage(ctx)
}
