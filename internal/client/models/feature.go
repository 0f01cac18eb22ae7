package models

import "fmt"

// Feature is a user-proposed change. VoteCount is owned by the backend and
// only changes by re-fetching.
type Feature struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	AuthorID    int64   `json:"author_id"`
	CreatedAt   string  `json:"created_at"`
	Author      User    `json:"author"`
	VoteCount   int     `json:"vote_count"`
}

// CreateFeatureRequest is the JSON body of POST /features/. A nil
// Description is left out of the body entirely.
type CreateFeatureRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// PaginatedFeatures is one page of the feature listing. Page arithmetic is
// the backend's: Total and Pages are taken as given.
type PaginatedFeatures struct {
	Items []Feature `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Pages int       `json:"pages"`
}

// TotalPages is Pages, or 1 when the backend reports no pages at all.
func (p *PaginatedFeatures) TotalPages() int {
	if p.Pages < 1 {
		return 1
	}
	return p.Pages
}

func (p *PaginatedFeatures) HasNext() bool {
	return p.Page < p.TotalPages()
}

func (p *PaginatedFeatures) HasPrev() bool {
	return p.Page > 1
}

// PageLabel renders "Page 1 of 3".
func (p *PaginatedFeatures) PageLabel() string {
	return fmt.Sprintf("Page %d of %d", p.Page, p.TotalPages())
}

// ShowingLabel renders "Showing 10 of 25 features".
func (p *PaginatedFeatures) ShowingLabel() string {
	return fmt.Sprintf("Showing %d of %d features", len(p.Items), p.Total)
}
