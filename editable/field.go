// Package editable implements the click-to-edit contract of the content
// widgets: a view mode, an edit mode with a local draft, Escape to cancel and
// Enter or Save to persist through a callback.
package editable

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"
)

type Mode int

const (
	ModeView Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "view"
}

// Key is a keyboard key as reported by the browser's KeyboardEvent.key.
type Key string

const (
	KeyEnter  Key = "Enter"
	KeyEscape Key = "Escape"
	KeySpace  Key = " "
)

var ErrSaveInProgress = errors.New("save already in progress")

type SaveFunc[T any] func(ctx context.Context, value T) error

type Option[T any] func(*Field[T])

// WithMultiline makes Enter insert a newline instead of saving.
func WithMultiline[T any]() Option[T] {
	return func(f *Field[T]) { f.multiline = true }
}

func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(f *Field[T]) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithClone sets how the draft is copied from the content, for values that
// share memory such as slices and maps.
func WithClone[T any](clone func(T) T) Option[T] {
	return func(f *Field[T]) { f.clone = clone }
}

// Field holds one editable value.
type Field[T any] struct {
	mu        sync.Mutex
	content   T
	draft     T
	mode      Mode
	saving    bool
	multiline bool
	onSave    SaveFunc[T]
	clone     func(T) T
	logger    *zap.Logger
}

func NewField[T any](content T, onSave SaveFunc[T], opts ...Option[T]) *Field[T] {
	f := &Field[T]{
		content: content,
		onSave:  onSave,
		clone:   func(v T) T { return v },
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.draft = f.clone(content)
	return f
}

func (f *Field[T]) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

func (f *Field[T]) Content() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

func (f *Field[T]) Draft() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// SetContent replaces the known-good value, e.g. after the parent reloads.
// An open edit is left alone.
func (f *Field[T]) SetContent(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content = v
	if f.mode == ModeView {
		f.draft = f.clone(v)
	}
}

// Activate enters edit mode with a fresh draft. It reports false if the
// field was already editing.
func (f *Field[T]) Activate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mode == ModeEdit {
		return false
	}
	f.draft = f.clone(f.content)
	f.mode = ModeEdit
	return true
}

// SetDraft changes the draft; it is ignored outside edit mode.
func (f *Field[T]) SetDraft(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mode == ModeEdit {
		f.draft = v
	}
}

// Update edits the draft in place.
func (f *Field[T]) Update(fn func(draft T) T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mode == ModeEdit {
		f.draft = fn(f.draft)
	}
}

// Cancel restores the pre-edit value and returns to view mode without
// calling onSave. It is ignored while a save is in flight, since the value
// has already been handed to onSave.
func (f *Field[T]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saving {
		return
	}
	f.draft = f.clone(f.content)
	f.mode = ModeView
}

// KeyDown handles Enter/Space (activate), Escape (cancel) and Enter (save,
// single-line only).
func (f *Field[T]) KeyDown(ctx context.Context, key Key) error {
	switch f.Mode() {
	case ModeView:
		if key == KeyEnter || key == KeySpace {
			f.Activate()
		}
		return nil
	default:
		switch key {
		case KeyEscape:
			f.Cancel()
		case KeyEnter:
			if !f.multiline {
				return f.Save(ctx)
			}
		}
		return nil
	}
}

// Save passes the draft to onSave. On success the draft becomes the content;
// on failure the draft reverts to the content and the error is logged. Both
// paths return to view mode.
func (f *Field[T]) Save(ctx context.Context) error {
	f.mu.Lock()
	if f.mode != ModeEdit {
		f.mu.Unlock()
		return nil
	}
	if f.saving {
		f.mu.Unlock()
		return ErrSaveInProgress
	}
	f.saving = true
	value := f.draft
	f.mu.Unlock()

	var err error
	if f.onSave != nil {
		err = f.onSave(ctx, value)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.saving = false
	f.mode = ModeView
	if err != nil {
		f.logger.Error("failed to save content", zap.Error(err))
		f.draft = f.clone(f.content)
		return err
	}
	f.content = value
	f.draft = f.clone(value)
	return nil
}

// NewListField is a Field over a slice whose draft never aliases the content.
func NewListField[T any](items []T, onSave SaveFunc[[]T], opts ...Option[[]T]) *Field[[]T] {
	opts = append([]Option[[]T]{WithClone(func(v []T) []T { return slices.Clone(v) })}, opts...)
	return NewField(items, onSave, opts...)
}

func AddItem[T any](f *Field[[]T], item T) {
	f.Update(func(d []T) []T { return append(d, item) })
}

func RemoveItem[T any](f *Field[[]T], index int) {
	f.Update(func(d []T) []T {
		if index < 0 || index >= len(d) {
			return d
		}
		return slices.Delete(d, index, index+1)
	})
}

func UpdateItem[T any](f *Field[[]T], index int, item T) {
	f.Update(func(d []T) []T {
		if index >= 0 && index < len(d) {
			d[index] = item
		}
		return d
	})
}
