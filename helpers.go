package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/folio/content"
)

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	if len(pathSegments) == 0 {
		if u.Path == "" {
			u.Path = "/"
		}
		return u.String()
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice and trims
// the rest.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PersonJsonLD returns a Schema.org Person block for the profile, or "" when
// there is no profile yet.
func PersonJsonLD(p *content.Profile, interests []string, cfg SiteConfig) string {
	if p == nil {
		return ""
	}
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     p.Name,
		"jobTitle": p.Title,
		"email":    "mailto:" + p.Email,
		"url":      BuildURL(cfg.URL),
	}
	var sameAs []string
	for _, link := range []*string{p.GithubURL, p.ScholarURL, p.LinkedinURL} {
		if s := content.Str(link); s != "" {
			sameAs = append(sameAs, s)
		}
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	if len(interests) > 0 {
		data["knowsAbout"] = interests
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
