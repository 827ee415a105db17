package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eringen/folio/content"
)

const profileColumns = `id, name, title, contact_email, github_url, github_label,
	scholar_url, linkedin_url, research_interests, updated_at`

// ProfileService reads and writes the singleton profile row.
type ProfileService struct {
	store *Store
	gate  Gate
	now   func() time.Time
}

func NewProfileService(s *Store, g Gate) *ProfileService {
	return &ProfileService{store: s, gate: g, now: time.Now}
}

// Get returns the profile, or nil when none has been written yet.
func (p *ProfileService) Get(ctx context.Context) (*content.Profile, error) {
	row := p.store.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM personal_info ORDER BY id ASC LIMIT 1`)
	v, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err)
	}
	return v, nil
}

// Save creates or updates the profile. With an id the row is replaced in
// place and a missing id yields (nil, nil). Without an id the existing row,
// if any, is replaced; otherwise a new row is inserted after checking the
// required fields. updatedAt is refreshed on every write.
func (p *ProfileService) Save(ctx context.Context, v content.Profile) (*content.Profile, error) {
	if !p.gate.OwnerAuthenticated(ctx) {
		return nil, content.ErrUnauthorized
	}
	v.UpdatedAt = p.now().UTC()

	id := v.ID
	if id == 0 {
		existing, err := p.Get(ctx)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return p.insert(ctx, p.store.db, v)
		}
		id = existing.ID
	}

	row := p.store.db.QueryRowContext(ctx, p.store.rebind(`
		UPDATE personal_info SET name = ?, title = ?, contact_email = ?, github_url = ?,
			github_label = ?, scholar_url = ?, linkedin_url = ?, research_interests = ?,
			updated_at = ?
		WHERE id = ?
		RETURNING `+profileColumns),
		append(profileValues(&v), id)...)
	out, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err)
	}
	return out, nil
}

func (p *ProfileService) insert(ctx context.Context, q DBTX, v content.Profile) (*content.Profile, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if v.UpdatedAt.IsZero() {
		v.UpdatedAt = p.now().UTC()
	}
	row := q.QueryRowContext(ctx, p.store.rebind(`
		INSERT INTO personal_info (name, title, contact_email, github_url, github_label,
			scholar_url, linkedin_url, research_interests, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+profileColumns),
		profileValues(&v)...)
	out, err := scanProfile(row)
	if err != nil {
		return nil, storageError(err)
	}
	return out, nil
}

func (p *ProfileService) clear(ctx context.Context, tx DBTX) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM personal_info`); err != nil {
		return storageError(err)
	}
	return nil
}

func profileValues(v *content.Profile) []any {
	return []any{
		v.Name, v.Title, v.Email, nullable(v.GithubURL), nullable(v.GithubLabel),
		nullable(v.ScholarURL), nullable(v.LinkedinURL), nullable(v.ResearchInterests),
		v.UpdatedAt,
	}
}

func scanProfile(row *sql.Row) (*content.Profile, error) {
	var (
		v       content.Profile
		updated dbTime
	)
	err := row.Scan(&v.ID, &v.Name, &v.Title, &v.Email, &v.GithubURL, &v.GithubLabel,
		&v.ScholarURL, &v.LinkedinURL, &v.ResearchInterests, &updated)
	if err != nil {
		return nil, err
	}
	v.UpdatedAt = updated.Time
	return &v, nil
}

// dbTime scans timestamps stored either natively or as text.
type dbTime struct {
	time.Time
}

var dbTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (t *dbTime) parse(s string) error {
	for _, layout := range dbTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}
