// Package client talks to a running folio server over its JSON API. A
// Client is a viewmodel.Source and viewmodel.Mutator, so the same
// aggregate load and edit protocol run against a remote portfolio.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/viewmodel"
)

var (
	_ viewmodel.Source  = (*Client)(nil)
	_ viewmodel.Mutator = (*Client)(nil)
)

// APIError is a non-2xx answer. It unwraps to the content sentinel that
// matches its status code.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("folio api: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return content.ErrUnauthorized
	case http.StatusBadRequest:
		return content.ErrValidation
	}
	if e.Status >= 500 {
		return content.ErrStorage
	}
	return nil
}

type Client struct {
	base  string
	token string
	http  *http.Client
}

type Option func(*Client)

// WithToken authenticates every request with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the server at baseURL, e.g. "http://localhost:3000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges owner credentials for a bearer token and keeps it for
// later calls.
func (c *Client) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	var out struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/token", body, &out); err != nil {
		return "", time.Time{}, err
	}
	c.token = out.Token
	return out.Token, out.ExpiresAt, nil
}

func (c *Client) GetProfile(ctx context.Context) (*content.Profile, error) {
	var p *content.Profile
	if err := c.do(ctx, http.MethodGet, content.KindProfile.Path(), nil, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Client) ListAbout(ctx context.Context) ([]content.AboutParagraph, error) {
	return list[content.AboutParagraph](ctx, c, content.KindAbout)
}

func (c *Client) ListEducation(ctx context.Context) ([]content.Education, error) {
	return list[content.Education](ctx, c, content.KindEducation)
}

func (c *Client) ListExperience(ctx context.Context) ([]content.Experience, error) {
	return list[content.Experience](ctx, c, content.KindExperience)
}

func (c *Client) ListPublications(ctx context.Context) ([]content.Publication, error) {
	return list[content.Publication](ctx, c, content.KindPublications)
}

func (c *Client) ListNews(ctx context.Context) ([]content.NewsItem, error) {
	return list[content.NewsItem](ctx, c, content.KindNews)
}

func (c *Client) ListEvents(ctx context.Context) ([]content.Event, error) {
	return list[content.Event](ctx, c, content.KindEvents)
}

func list[T any](ctx context.Context, c *Client, k content.Kind) ([]T, error) {
	out := []T{}
	if err := c.do(ctx, http.MethodGet, k.Path(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds v to kind k and returns the stored row. For the profile it
// saves the singleton.
func (c *Client) Create(ctx context.Context, k content.Kind, v any) (any, error) {
	method := http.MethodPost
	if k == content.KindProfile {
		method = http.MethodPut
	}
	return c.send(ctx, method, k, v)
}

// Update replaces row id of kind k with v. It returns nil when the row does
// not exist.
func (c *Client) Update(ctx context.Context, k content.Kind, id int64, v any) (any, error) {
	body, err := withID(v, id)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPut, k, body)
}

func (c *Client) Delete(ctx context.Context, k content.Kind, id int64) error {
	q := url.Values{"id": {strconv.FormatInt(id, 10)}}
	return c.do(ctx, http.MethodDelete, k.Path()+"?"+q.Encode(), nil, nil)
}

// send writes v and decodes the answer into a record of kind k. A JSON
// null answer comes back as nil.
func (c *Client) send(ctx context.Context, method string, k content.Kind, v any) (any, error) {
	rec := k.New()
	if rec == nil {
		return nil, fmt.Errorf("unknown collection %q", k)
	}
	var raw json.RawMessage
	if err := c.do(ctx, method, k.Path(), v, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", k, err)
	}
	return reflect.ValueOf(rec).Elem().Interface(), nil
}

// withID encodes v as a JSON object carrying id.
func withID(v any, id int64) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	m["id"] = id
	return m, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(b, &body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: body.Error}
}
