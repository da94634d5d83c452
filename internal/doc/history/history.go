package history

import (
	"log/slog"
	"time"

	"github.com/dshills/richdoc/internal/doc"
	"github.com/dshills/richdoc/internal/doc/action"
	"github.com/dshills/richdoc/internal/doc/selection"
)

// DefaultMaxEntries bounds the undo stack when no limit is configured.
const DefaultMaxEntries = 1000

// Entry is one undoable unit.
type Entry struct {
	Name       string
	Operations []action.Operation
	Before     selection.Paths
	After      selection.Paths
	Timestamp  time.Time
}

// Event says what a listener is being told about.
type Event int

const (
	// Pushed fires after an entry is recorded.
	Pushed Event = iota
	// Undone fires after an entry is undone.
	Undone
	// Redone fires after an entry is redone.
	Redone
	// Cleared fires after Clear.
	Cleared
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case Pushed:
		return "pushed"
	case Undone:
		return "undone"
	case Redone:
		return "redone"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Option configures a History.
type Option func(*History)

// WithMaxEntries sets the maximum number of undo entries.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.maxEntries = n
		}
	}
}

// WithLogger sets the logger. The default is the document's logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithDeferredSelection restores the selection after the next
// doc.Document.Rendered call instead of right after the replay.
func WithDeferredSelection() Option {
	return func(h *History) {
		h.deferSelection = true
	}
}

// History manages the undo and redo stacks of one document.
type History struct {
	doc    *doc.Document
	logger *slog.Logger

	undoStack []*Entry
	redoStack []*Entry

	grouping bool
	group    *Entry

	maxEntries     int
	deferSelection bool

	listeners   []func(Event, *Entry)
	unsubscribe func()
}

// New creates a history recording d.
func New(d *doc.Document, opts ...Option) *History {
	h := &History{
		doc:        d,
		logger:     d.Logger(),
		maxEntries: DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.unsubscribe = d.Subscribe(h.record)
	return h
}

// Listen registers fn to run after every change of the stacks.
func (h *History) Listen(fn func(Event, *Entry)) {
	h.listeners = append(h.listeners, fn)
}

func (h *History) emit(ev Event, e *Entry) {
	for _, fn := range h.listeners {
		fn(ev, e)
	}
}

func (h *History) record(b doc.Batch) {
	if b.Origin != doc.Local || b.IsEmpty() {
		return
	}
	if h.grouping {
		if len(h.group.Operations) == 0 {
			h.group.Before = b.Before
		}
		h.group.Operations = append(h.group.Operations, b.Operations...)
		h.group.After = b.After
		return
	}
	h.push(&Entry{
		Operations: b.Operations,
		Before:     b.Before,
		After:      b.After,
		Timestamp:  time.Now(),
	})
}

// push adds an entry, clears redo and enforces the entry limit.
func (h *History) push(e *Entry) {
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
	h.emit(Pushed, e)
}

// Undo reverts the most recent entry. It fails with ErrInTransaction while
// a document transaction is open.
func (h *History) Undo() error {
	if h.doc == nil {
		return ErrDestroyed
	}
	if h.doc.InTransaction() {
		return ErrInTransaction
	}
	if len(h.undoStack) == 0 {
		return ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	if err := h.doc.Revert(doc.History, e.Operations...); err != nil {
		h.undoStack = append(h.undoStack, e)
		return err
	}
	h.redoStack = append(h.redoStack, e)
	h.restore(e.Before)
	h.logger.Debug("undo", slog.Int("operations", len(e.Operations)), slog.Int("remaining", len(h.undoStack)))
	h.emit(Undone, e)
	return nil
}

// Redo re-applies the most recently undone entry. It fails with
// ErrInTransaction while a document transaction is open.
func (h *History) Redo() error {
	if h.doc == nil {
		return ErrDestroyed
	}
	if h.doc.InTransaction() {
		return ErrInTransaction
	}
	if len(h.redoStack) == 0 {
		return ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	if err := h.doc.Apply(doc.History, e.Operations...); err != nil {
		h.redoStack = append(h.redoStack, e)
		return err
	}
	h.undoStack = append(h.undoStack, e)
	h.restore(e.After)
	h.logger.Debug("redo", slog.Int("operations", len(e.Operations)), slog.Int("remaining", len(h.redoStack)))
	h.emit(Redone, e)
	return nil
}

func (h *History) restore(p selection.Paths) {
	sel := h.doc.Selection()
	set := func() {
		if err := sel.SetPaths(p); err != nil {
			h.logger.Warn("selection not restored", slog.String("error", err.Error()))
		}
	}
	if h.deferSelection {
		h.doc.AfterRender(set)
		return
	}
	set()
}

// CanUndo reports whether undo is available.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo reports whether redo is available.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int { return len(h.undoStack) }

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int { return len(h.redoStack) }

// PeekUndo returns the next entry Undo would revert.
func (h *History) PeekUndo() (*Entry, bool) {
	if len(h.undoStack) == 0 {
		return nil, false
	}
	return h.undoStack[len(h.undoStack)-1], true
}

// PeekRedo returns the next entry Redo would re-apply.
func (h *History) PeekRedo() (*Entry, bool) {
	if len(h.redoStack) == 0 {
		return nil, false
	}
	return h.redoStack[len(h.redoStack)-1], true
}

// Clear removes all undo and redo entries.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.group = nil
	h.emit(Cleared, nil)
}

// SetMaxEntries changes the entry limit, dropping the oldest entries if
// the stack is larger.
func (h *History) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}
	h.maxEntries = n
	if len(h.undoStack) > n {
		h.undoStack = h.undoStack[len(h.undoStack)-n:]
	}
}

// MaxEntries returns the entry limit.
func (h *History) MaxEntries() int { return h.maxEntries }

// Destroy stops recording and releases the document.
func (h *History) Destroy() {
	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
	h.undoStack = nil
	h.redoStack = nil
	h.listeners = nil
	h.doc = nil
}
