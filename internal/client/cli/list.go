package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/featurevote/internal/client/models"
	"github.com/dmitrijs2005/featurevote/internal/client/services"
)

// List shows a page of features. "list" keeps the current position,
// "list 2" jumps to page 2 and "list 2 25" also changes the page size.
func (a *App) List(ctx context.Context, args []string) error {
	page, limit := a.page, a.limit
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(a.out, "Usage: list [page] [limit]")
			return err
		}
		page = p
	}
	if len(args) > 1 {
		l, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(a.out, "Usage: list [page] [limit]")
			return err
		}
		limit = l
	}

	a.page, a.limit = services.NormalizePage(page, limit)
	return a.renderPage(ctx)
}

func (a *App) Next(ctx context.Context) error {
	if a.lastPage != nil && !a.lastPage.HasNext() {
		fmt.Fprintln(a.out, "Already on the last page")
		return nil
	}
	a.page++
	return a.renderPage(ctx)
}

func (a *App) Prev(ctx context.Context) error {
	if a.page <= 1 {
		fmt.Fprintln(a.out, "Already on the first page")
		return nil
	}
	a.page--
	return a.renderPage(ctx)
}

func (a *App) renderPage(ctx context.Context) error {
	p, err := a.featureService.List(ctx, a.page, a.limit)
	if err != nil {
		return a.report(ctx, err)
	}
	a.lastPage = p
	printPage(a, p)
	return nil
}

func printPage(a *App, p *models.PaginatedFeatures) {
	if len(p.Items) == 0 {
		fmt.Fprintln(a.out, "No features yet")
	}
	for _, f := range p.Items {
		fmt.Fprintln(a.out, featureLine(f))
	}
	fmt.Fprintf(a.out, "%s • %s\n", p.ShowingLabel(), p.PageLabel())
}

// featureLine renders "#7 [3 votes] Dark mode — by Jane".
func featureLine(f models.Feature) string {
	return fmt.Sprintf("#%d [%d votes] %s — by %s", f.ID, f.VoteCount, f.Title, f.Author.Name)
}

// Show prints a single feature with its description.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return err
	}

	f, err := a.featureService.Get(ctx, id)
	if err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintln(a.out, featureLine(*f))
	if f.CreatedAt != "" {
		fmt.Fprintf(a.out, "  created %s\n", f.CreatedAt)
	}
	if f.Description != nil && *f.Description != "" {
		fmt.Fprintf(a.out, "\n%s\n", *f.Description)
	} else {
		fmt.Fprintln(a.out, "\n(no description)")
	}
	return nil
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, err
	}
	if id < 1 {
		return 0, fmt.Errorf("invalid id %d", id)
	}
	return id, nil
}
