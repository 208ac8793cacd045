// Package books holds the recommended-reading catalog.
package books

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Disclosure must accompany any rendering of the catalog's affiliate links.
const Disclosure = "As an Amazon Associate I earn from qualifying purchases."

var (
	ErrNotFound = errors.New("book not found")
	ErrInvalid  = errors.New("invalid book")
)

type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	Category    string `json:"category,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Href        string `json:"href"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
}

func (b Book) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("%w: id required", ErrInvalid)
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: title required", ErrInvalid)
	}
	u, err := url.Parse(b.Href)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("%w: href must be an absolute http(s) URL", ErrInvalid)
	}
	return nil
}

type Store interface {
	List(ctx context.Context, category string) ([]Book, error) // ordered by position, then title
	Get(ctx context.Context, id string) (Book, error)
	Upsert(ctx context.Context, b Book) error
}

// Seed writes the default catalog. Existing rows with the same ids are updated.
func Seed(ctx context.Context, s Store) (int, error) {
	n := 0
	for _, b := range Defaults() {
		if err := s.Upsert(ctx, b); err != nil {
			return n, fmt.Errorf("seed %s: %w", b.ID, err)
		}
		n++
	}
	return n, nil
}

func Defaults() []Book {
	return []Book{
		{
			ID:       "the-power-of-now",
			Title:    "The Power of Now: A Guide to Spiritual Enlightenment",
			Author:   "Eckhart Tolle",
			Category: "Spirituality",
			Subtitle: "Amazon",
			Href:     "https://amzn.to/4ro8nW9",
			ImageURL: "/books/the-power-of-now.jpg",
			Position: 1,
		},
		{
			ID:       "choice-theory",
			Title:    "Choice Theory: A New Psychology of Personal Freedom",
			Author:   "William Glasser M.D.",
			Category: "Psychology",
			Subtitle: "Amazon",
			Href:     "https://amzn.to/4bvL4Fm",
			ImageURL: "/books/choice-theory.jpg",
			Position: 2,
		},
		{
			ID:       "warning-psychiatry",
			Title:    "Warning: Psychiatry Can Be Hazardous to Your Mental Health",
			Author:   "William Glasser M.D.",
			Category: "Psychiatry",
			Subtitle: "Amazon",
			Href:     "https://amzn.to/4qam5ek",
			ImageURL: "/books/warning-psychiatry.jpg",
			Position: 3,
		},
		{
			ID:       "12-rules-for-life",
			Title:    "12 Rules for Life: An Antidote to Chaos",
			Author:   "Jordan B. Peterson",
			Category: "Self-Help",
			Subtitle: "Amazon",
			Href:     "https://amzn.to/49TyXAP",
			ImageURL: "/books/12-rules-for-life.jpg",
			Position: 4,
		},
		{
			ID:       "beyond-order",
			Title:    "Beyond Order: 12 More Rules for Life",
			Author:   "Jordan B. Peterson",
			Category: "Self-Help",
			Subtitle: "Amazon",
			Href:     "https://amzn.to/4rrFuIS",
			ImageURL: "/books/beyond-order.jpg",
			Position: 5,
		},
		{
			ID:       "we-who-wrestle-with-god",
			Title:    "We Who Wrestle with God: Perceptions of the Divine",
			Author:   "Jordan B. Peterson",
			Category: "Spirituality",
			Subtitle: "Amazon",
			Href:     "https://amzn.to/3M6M7kK",
			ImageURL: "/books/we-who-wrestle-with-god.jpg",
			Position: 6,
		},
		{
			ID:       "cant-hurt-me",
			Title:    "Can't Hurt Me: Master Your Mind and Defy the Odds",
			Author:   "David Goggins",
			Category: "Self-Help",
			Subtitle: "Amazon",
			Href:     "https://amzn.to/4tutXdJ",
			ImageURL: "/books/cant-hurt-me.jpg",
			Position: 7,
		},
	}
}
