package folio

import (
	"context"
	"fmt"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/viewmodel"
)

// Services bundles every content service over one store. It is the
// in-process Source and Mutator of the view model.
type Services struct {
	Profile      *ProfileService
	About        *Resource[content.AboutParagraph, *content.AboutParagraph]
	Education    *Resource[content.Education, *content.Education]
	Experience   *Resource[content.Experience, *content.Experience]
	Publications *Resource[content.Publication, *content.Publication]
	News         *Resource[content.NewsItem, *content.NewsItem]
	Events       *Resource[content.Event, *content.Event]
	Owners       *OwnerService

	store *Store
}

var (
	_ viewmodel.Source  = (*Services)(nil)
	_ viewmodel.Mutator = (*Services)(nil)
)

// NewServices wires the content services over s, guarded by g.
func NewServices(s *Store, g Gate) *Services {
	return &Services{
		Profile:      NewProfileService(s, g),
		About:        NewResource[content.AboutParagraph, *content.AboutParagraph](s, g, aboutTable),
		Education:    NewResource[content.Education, *content.Education](s, g, educationTable),
		Experience:   NewResource[content.Experience, *content.Experience](s, g, experienceTable),
		Publications: NewResource[content.Publication, *content.Publication](s, g, publicationsTable),
		News:         NewResource[content.NewsItem, *content.NewsItem](s, g, newsTable),
		Events:       NewResource[content.Event, *content.Event](s, g, eventsTable),
		Owners:       NewOwnerService(s),
		store:        s,
	}
}

func (s *Services) collection(k content.Kind) (collection, bool) {
	switch k {
	case content.KindAbout:
		return s.About, true
	case content.KindEducation:
		return s.Education, true
	case content.KindExperience:
		return s.Experience, true
	case content.KindPublications:
		return s.Publications, true
	case content.KindNews:
		return s.News, true
	case content.KindEvents:
		return s.Events, true
	}
	return nil, false
}

func (s *Services) GetProfile(ctx context.Context) (*content.Profile, error) {
	return s.Profile.Get(ctx)
}

func (s *Services) ListAbout(ctx context.Context) ([]content.AboutParagraph, error) {
	return s.About.List(ctx)
}

func (s *Services) ListEducation(ctx context.Context) ([]content.Education, error) {
	return s.Education.List(ctx)
}

func (s *Services) ListExperience(ctx context.Context) ([]content.Experience, error) {
	return s.Experience.List(ctx)
}

func (s *Services) ListPublications(ctx context.Context) ([]content.Publication, error) {
	return s.Publications.List(ctx)
}

func (s *Services) ListNews(ctx context.Context) ([]content.NewsItem, error) {
	return s.News.List(ctx)
}

func (s *Services) ListEvents(ctx context.Context) ([]content.Event, error) {
	return s.Events.List(ctx)
}

// List returns the rows of kind: a slice for collections, the profile or
// nil for the singleton.
func (s *Services) List(ctx context.Context, k content.Kind) (any, error) {
	if k == content.KindProfile {
		p, err := s.Profile.Get(ctx)
		return deref(p, err)
	}
	c, ok := s.collection(k)
	if !ok {
		return nil, unknownKind(k)
	}
	return c.listValues(ctx)
}

// Get returns row id of kind, or nil when it does not exist.
func (s *Services) Get(ctx context.Context, k content.Kind, id int64) (any, error) {
	if k == content.KindProfile {
		p, err := s.Profile.Get(ctx)
		if err != nil || p == nil || (id != 0 && p.ID != id) {
			return nil, err
		}
		return *p, nil
	}
	c, ok := s.collection(k)
	if !ok {
		return nil, unknownKind(k)
	}
	return c.getValue(ctx, id)
}

func (s *Services) Create(ctx context.Context, k content.Kind, v any) (any, error) {
	if k == content.KindProfile {
		return s.saveProfile(ctx, 0, v)
	}
	c, ok := s.collection(k)
	if !ok {
		return nil, unknownKind(k)
	}
	return c.createValue(ctx, v)
}

func (s *Services) Update(ctx context.Context, k content.Kind, id int64, v any) (any, error) {
	if k == content.KindProfile {
		return s.saveProfile(ctx, id, v)
	}
	c, ok := s.collection(k)
	if !ok {
		return nil, unknownKind(k)
	}
	return c.updateValue(ctx, id, v)
}

func (s *Services) Delete(ctx context.Context, k content.Kind, id int64) error {
	c, ok := s.collection(k)
	if !ok {
		return unknownKind(k)
	}
	return c.Delete(ctx, id)
}

func (s *Services) saveProfile(ctx context.Context, id int64, v any) (any, error) {
	var p content.Profile
	switch row := v.(type) {
	case content.Profile:
		p = row
	case *content.Profile:
		if row == nil {
			return nil, fmt.Errorf("personal_info: unexpected payload %T", v)
		}
		p = *row
	default:
		return nil, fmt.Errorf("personal_info: unexpected payload %T", v)
	}
	p.ID = id
	out, err := s.Profile.Save(ctx, p)
	return deref(out, err)
}

// ReplaceAll clears every content table and inserts ds in one transaction.
// Owner accounts are left untouched.
func (s *Services) ReplaceAll(ctx context.Context, ds Dataset) error {
	if !s.Profile.gate.OwnerAuthenticated(ctx) {
		return content.ErrUnauthorized
	}
	return s.store.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		clears := []func(context.Context, DBTX) error{
			s.Events.clear, s.News.clear, s.Publications.clear, s.Experience.clear,
			s.Education.clear, s.About.clear, s.Profile.clear,
		}
		for _, fn := range clears {
			if err := fn(ctx, tx); err != nil {
				return err
			}
		}
		if ds.Profile != nil {
			if _, err := s.Profile.insert(ctx, tx, *ds.Profile); err != nil {
				return err
			}
		}
		if err := insertAll(ctx, tx, s.About, ds.About); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, s.Education, ds.Education); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, s.Experience, ds.Experience); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, s.Publications, ds.Publications); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, s.News, ds.News); err != nil {
			return err
		}
		return insertAll(ctx, tx, s.Events, ds.Events)
	})
}

func insertAll[T any, P Row[T]](ctx context.Context, tx DBTX, r *Resource[T, P], rows []T) error {
	for i := range rows {
		v := rows[i]
		if err := P(&v).Normalize(); err != nil {
			return fmt.Errorf("%s[%d]: %w", r.table.Name, i, err)
		}
		if err := P(&v).Validate(); err != nil {
			return fmt.Errorf("%s[%d]: %w", r.table.Name, i, err)
		}
		if _, err := r.insert(ctx, tx, &v); err != nil {
			return err
		}
	}
	return nil
}

func unknownKind(k content.Kind) error {
	return fmt.Errorf("unknown collection %q", k)
}
