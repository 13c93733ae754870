package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/eventsync/internal/event"
	"github.com/pfrederiksen/eventsync/internal/extract"
	"github.com/pfrederiksen/eventsync/internal/fetch"
)

// Adapter produces candidate events from one external listing site.
type Adapter interface {
	// Name identifies the adapter; it becomes the Source of every event
	// it yields.
	Name() string
	// Host is the external host the adapter fetches from, used for
	// politeness pacing.
	Host() string
	// FetchCandidates returns zero or more candidate events for the
	// query. Errors are typed (*fetch.NetworkError,
	// *extract.ExtractionError) and absorbed by the runner.
	FetchCandidates(ctx context.Context, q extract.Query) ([]event.Event, error)
}

// siteAdapter is the shared implementation behind the built-in adapters:
// fetch, reduce, extract, parse.
type siteAdapter struct {
	name     string
	host     string
	buildURL func(location string) string
	fetcher  fetch.ContentFetcher
	engine   extract.Engine
	timeout  time.Duration
}

func (a *siteAdapter) Name() string { return a.name }

func (a *siteAdapter) Host() string { return a.host }

func (a *siteAdapter) FetchCandidates(ctx context.Context, q extract.Query) ([]event.Event, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	target := a.buildURL(q.Location)

	raw, err := a.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	content := fetch.ReduceHTML(raw, fetch.ReduceLimit)

	output, err := a.engine.Extract(ctx, content, q)
	if err != nil {
		return nil, &extract.ExtractionError{Source: a.name, Err: err}
	}

	candidates := extract.ParseCandidates(output)
	events := make([]event.Event, 0, len(candidates))
	for _, c := range candidates {
		events = append(events, event.Event{
			Name:        c.Name,
			DateRaw:     c.Date,
			Description: c.Description,
			Venue:       c.Venue,
			Category:    c.Category,
			URL:         c.URL,
			Source:      a.name,
		})
	}

	return events, nil
}

// Deps carries the collaborators shared by the built-in adapters.
type Deps struct {
	Fetcher fetch.ContentFetcher
	Engine  extract.Engine
	Timeout time.Duration
}

// NewEventbrite returns the adapter for eventbrite.com listings.
func NewEventbrite(d Deps) Adapter {
	return &siteAdapter{
		name: "Eventbrite",
		host: "www.eventbrite.com",
		buildURL: func(location string) string {
			return fmt.Sprintf("https://www.eventbrite.com/d/%s/events/", locationSlug(location))
		},
		fetcher: d.Fetcher,
		engine:  d.Engine,
		timeout: d.Timeout,
	}
}

// NewTicketmaster returns the adapter for ticketmaster.com search results.
func NewTicketmaster(d Deps) Adapter {
	return &siteAdapter{
		name: "Ticketmaster",
		host: "www.ticketmaster.com",
		buildURL: func(location string) string {
			return fmt.Sprintf("https://www.ticketmaster.com/search?q=%s", url.QueryEscape(location))
		},
		fetcher: d.Fetcher,
		engine:  d.Engine,
		timeout: d.Timeout,
	}
}

// NewTimeout returns the adapter for timeout.com city event listings.
func NewTimeout(d Deps) Adapter {
	return &siteAdapter{
		name: "Timeout",
		host: "www.timeout.com",
		buildURL: func(location string) string {
			return fmt.Sprintf("https://www.timeout.com/%s/events", locationSlug(location))
		},
		fetcher: d.Fetcher,
		engine:  d.Engine,
		timeout: d.Timeout,
	}
}

// NewYelp returns the adapter for yelp.com event listings.
func NewYelp(d Deps) Adapter {
	return &siteAdapter{
		name: "Yelp",
		host: "www.yelp.com",
		buildURL: func(location string) string {
			return fmt.Sprintf("https://www.yelp.com/events/%s", locationSlug(location))
		},
		fetcher: d.Fetcher,
		engine:  d.Engine,
		timeout: d.Timeout,
	}
}

// NewTripAdvisor returns the adapter for tripadvisor.com event pages.
func NewTripAdvisor(d Deps) Adapter {
	return &siteAdapter{
		name: "TripAdvisor",
		host: "www.tripadvisor.com",
		buildURL: func(location string) string {
			return fmt.Sprintf("https://www.tripadvisor.com/Attractions-g%s-Activities-events", locationSlug(location))
		},
		fetcher: d.Fetcher,
		engine:  d.Engine,
		timeout: d.Timeout,
	}
}

// DefaultAdapters returns the built-in adapter set in its canonical
// execution order.
func DefaultAdapters(d Deps) []Adapter {
	return []Adapter{
		NewEventbrite(d),
		NewTicketmaster(d),
		NewTimeout(d),
		NewYelp(d),
		NewTripAdvisor(d),
	}
}

// locationSlug lowercases a location name and replaces spaces with
// hyphens, the form the listing sites use in their URLs.
func locationSlug(location string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(location)), " ", "-")
}
