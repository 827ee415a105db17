// Package viewmodel holds the aggregate state rendered by the portfolio
// pages: every collection loaded together, the derivations the pages show,
// and the edit protocol that reloads everything after a mutation.
package viewmodel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/eringen/folio/content"
)

// RecentNewsLimit is how many news items the home page shows.
const RecentNewsLimit = 3

// Source reads the collections. Implemented in-process by the store
// services and remotely by the HTTP client.
type Source interface {
	GetProfile(ctx context.Context) (*content.Profile, error)
	ListAbout(ctx context.Context) ([]content.AboutParagraph, error)
	ListEducation(ctx context.Context) ([]content.Education, error)
	ListExperience(ctx context.Context) ([]content.Experience, error)
	ListPublications(ctx context.Context) ([]content.Publication, error)
	ListNews(ctx context.Context) ([]content.NewsItem, error)
}

// Mutator writes one collection, addressed by kind. Payloads are the
// content record types or pointers to them.
type Mutator interface {
	Create(ctx context.Context, k content.Kind, v any) (any, error)
	Update(ctx context.Context, k content.Kind, id int64, v any) (any, error)
	Delete(ctx context.Context, k content.Kind, id int64) error
}

// ErrLoad is returned when any collection fails to load.
var ErrLoad = errors.New("failed to load content")

// Snapshot is one consistent load of every collection together with the
// capabilities of the requester it was loaded for.
type Snapshot struct {
	Profile      *content.Profile
	About        []content.AboutParagraph
	Education    []content.Education
	Experience   []content.Experience
	Publications []content.Publication
	News         []content.NewsItem
	Caps         content.Capabilities
}

// Load fetches the six collections concurrently. The snapshot is returned
// only when all of them succeed.
func Load(ctx context.Context, src Source, caps content.Capabilities) (*Snapshot, error) {
	snap := &Snapshot{Caps: caps}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Profile, err = src.GetProfile(gctx)
		return wrapLoad("profile", err)
	})
	g.Go(func() (err error) {
		snap.About, err = src.ListAbout(gctx)
		return wrapLoad("about", err)
	})
	g.Go(func() (err error) {
		snap.Education, err = src.ListEducation(gctx)
		return wrapLoad("education", err)
	})
	g.Go(func() (err error) {
		snap.Experience, err = src.ListExperience(gctx)
		return wrapLoad("experience", err)
	})
	g.Go(func() (err error) {
		snap.Publications, err = src.ListPublications(gctx)
		return wrapLoad("publications", err)
	})
	g.Go(func() (err error) {
		snap.News, err = src.ListNews(gctx)
		return wrapLoad("news", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func wrapLoad(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrLoad, what, err)
}

// ResearchInterests decodes the profile's JSON list. An absent profile or a
// malformed value yields an empty list.
func (s *Snapshot) ResearchInterests() []string {
	return ParseInterests(s.Profile)
}

// ParseInterests decodes p.ResearchInterests, tolerating absence and
// malformed JSON.
func ParseInterests(p *content.Profile) []string {
	if p == nil || p.ResearchInterests == nil {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(*p.ResearchInterests), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// FeaturedPublications keeps the featured publications in list order.
func (s *Snapshot) FeaturedPublications() []content.Publication {
	out := make([]content.Publication, 0)
	for _, p := range s.Publications {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// RecentNews is the first RecentNewsLimit news items in list order.
func (s *Snapshot) RecentNews() []content.NewsItem {
	if len(s.News) <= RecentNewsLimit {
		return s.News
	}
	return s.News[:RecentNewsLimit]
}

// CanEdit reports whether edit affordances are shown.
func (s *Snapshot) CanEdit() bool { return s.Caps.CanEdit() }
