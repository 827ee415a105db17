package viewmodel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eringen/folio/content"
)

var (
	// ErrSaveFailed is the generic failure surfaced to the editor when a
	// create, update or delete is rejected. The cause stays wrapped.
	ErrSaveFailed = errors.New("failed to save changes")
	// ErrNotConfirmed is returned when a delete was not confirmed.
	ErrNotConfirmed = errors.New("delete not confirmed")
	// ErrNoDraft is returned by Submit when nothing is being edited.
	ErrNoDraft = errors.New("no draft open")
)

// Draft is the record being edited. Value is a pointer to a content record;
// ID is zero while creating.
type Draft struct {
	Kind  content.Kind
	ID    int64
	Value any
}

// Creating reports whether submitting the draft creates a new row.
func (d *Draft) Creating() bool { return d.ID == 0 }

// Editor drives one edit session: open a draft, submit or delete, and
// reload the whole snapshot after every successful mutation.
type Editor struct {
	src  Source
	mut  Mutator
	caps content.Capabilities

	draft *Draft
	err   error
}

func NewEditor(src Source, mut Mutator, caps content.Capabilities) *Editor {
	return &Editor{src: src, mut: mut, caps: caps}
}

// OpenNew starts a create draft of kind k filled with its defaults.
func (e *Editor) OpenNew(k content.Kind) *Draft {
	e.draft = &Draft{Kind: k, Value: k.New()}
	e.err = nil
	return e.draft
}

// Open starts an edit draft holding a copy of v, so that changes to the
// draft never leak into the snapshot it came from.
func (e *Editor) Open(k content.Kind, v any) (*Draft, error) {
	cp := k.New()
	if cp == nil {
		return nil, fmt.Errorf("unknown collection %q", k)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, cp); err != nil {
		return nil, err
	}
	e.draft = &Draft{Kind: k, ID: content.IDOf(cp), Value: cp}
	e.err = nil
	return e.draft, nil
}

// Draft returns the open draft, or nil.
func (e *Editor) Draft() *Draft { return e.draft }

// Err returns the failure of the last submit or delete, if any.
func (e *Editor) Err() error { return e.err }

// Cancel discards the open draft.
func (e *Editor) Cancel() {
	e.draft = nil
	e.err = nil
}

// Submit creates or updates the draft. On success the draft is discarded
// and a fresh snapshot is loaded; on failure the draft stays open and the
// error wraps ErrSaveFailed.
func (e *Editor) Submit(ctx context.Context) (*Snapshot, error) {
	d := e.draft
	if d == nil {
		return nil, ErrNoDraft
	}
	var err error
	if d.Creating() {
		_, err = e.mut.Create(ctx, d.Kind, d.Value)
	} else {
		_, err = e.mut.Update(ctx, d.Kind, d.ID, d.Value)
	}
	if err != nil {
		e.err = fmt.Errorf("%w: %w", ErrSaveFailed, err)
		return nil, e.err
	}
	e.draft = nil
	e.err = nil
	return Load(ctx, e.src, e.caps)
}

// Delete removes row id of kind once confirm returns true, then reloads.
// Without confirmation nothing is sent.
func (e *Editor) Delete(ctx context.Context, k content.Kind, id int64, confirm func() bool) (*Snapshot, error) {
	if confirm == nil || !confirm() {
		return nil, ErrNotConfirmed
	}
	if err := e.mut.Delete(ctx, k, id); err != nil {
		e.err = fmt.Errorf("%w: %w", ErrSaveFailed, err)
		return nil, e.err
	}
	e.err = nil
	return Load(ctx, e.src, e.caps)
}
