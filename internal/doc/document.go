package doc

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/dshills/richdoc/internal/doc/action"
	"github.com/dshills/richdoc/internal/doc/content"
	"github.com/dshills/richdoc/internal/doc/format"
	"github.com/dshills/richdoc/internal/doc/model"
	"github.com/dshills/richdoc/internal/doc/selection"
)

// Re-export commonly used types for convenience.
type (
	// Slot is a content container.
	Slot = model.Slot

	// Component is a tree node owning slots.
	Component = model.Component

	// Registry resolves component, formatter and attribute names.
	Registry = model.Registry

	// Operation is the record of one node mutation.
	Operation = action.Operation

	// Selection tracks the caret or selected range.
	Selection = selection.Selection

	// Paths is the serializable form of a selection.
	Paths = selection.Paths

	// Formatter identifies one kind of formatting.
	Formatter = format.Formatter

	// ContentType is a kind of slot content.
	ContentType = content.Type
)

// Document ties a tree to its registry, selection and subscribers.
// It is not safe for concurrent use.
type Document struct {
	root      *model.Component
	registry  *model.Registry
	selection *selection.Selection
	logger    *slog.Logger
	readOnly  bool

	depth     int
	origin    Origin
	pending   *Batch
	lastPaths selection.Paths

	subscribers map[int]func(Batch)
	nextSubID   int
	afterRender []func()
}

// New creates a document over root.
func New(root *model.Component, reg *model.Registry, opts ...Option) *Document {
	d := &Document{
		root:        root,
		registry:    reg,
		selection:   selection.New(root),
		logger:      discardLogger(),
		subscribers: make(map[int]func(Batch)),
	}
	for _, opt := range opts {
		opt(d)
	}
	root.SetReadOnly(d.readOnly)

	root.Marker().OnChange(d.record)
	root.Marker().OnComponentRemoved(func(c *model.Component) {
		d.batch().Removed = append(d.batch().Removed, c)
	})
	d.selection.OnChange(func(s *selection.Selection) {
		if d.pending == nil {
			d.lastPaths = s.Paths()
		}
	})
	return d
}

// FromLiteral builds a document from a serialized root component.
func FromLiteral(reg *model.Registry, lit action.ComponentLiteral, opts ...Option) (*Document, error) {
	if lit.Name == "" {
		return nil, ErrNoRoot
	}
	root, err := reg.CreateComponent(lit)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return New(root, reg, opts...), nil
}

// Root returns the root component.
func (d *Document) Root() *model.Component { return d.root }

// Registry returns the name registry.
func (d *Document) Registry() *model.Registry { return d.registry }

// Selection returns the document selection.
func (d *Document) Selection() *selection.Selection { return d.selection }

// Logger returns the document logger.
func (d *Document) Logger() *slog.Logger { return d.logger }

// IsReadOnly reports whether the document rejects mutations.
func (d *Document) IsReadOnly() bool { return d.readOnly }

// SetReadOnly toggles read-only mode.
func (d *Document) SetReadOnly(v bool) {
	d.readOnly = v
	d.root.SetReadOnly(v)
}

// ToJSON returns the root component literal.
func (d *Document) ToJSON() action.ComponentLiteral { return d.root.ToJSON() }

// ToString returns the plain text of the document.
func (d *Document) ToString() string { return d.root.ToString() }

// Subscribe registers fn to receive every finished batch. The returned
// function removes the subscription.
func (d *Document) Subscribe(fn func(Batch)) (unsubscribe func()) {
	id := d.nextSubID
	d.nextSubID++
	d.subscribers[id] = fn
	return func() { delete(d.subscribers, id) }
}

func (d *Document) batch() *Batch {
	if d.pending == nil {
		d.pending = &Batch{Origin: d.origin, Before: d.lastPaths}
	}
	return d.pending
}

func (d *Document) record(op action.Operation) {
	b := d.batch()
	b.Operations = append(b.Operations, op)
}

// InTransaction reports whether a Transact call is running.
func (d *Document) InTransaction() bool { return d.depth > 0 }

// Pending reports whether emitted operations await delivery.
func (d *Document) Pending() bool { return d.pending != nil }

// Transact runs fn and delivers the operations it emits as one batch with
// the given origin. Nested calls join the outermost batch and keep its
// origin. Operations already pending are flushed first.
func (d *Document) Transact(origin Origin, fn func() error) error {
	if d.depth == 0 {
		d.Flush()
		d.origin = origin
		d.lastPaths = d.selection.Paths()
	}
	d.depth++
	defer func() {
		d.depth--
		if d.depth == 0 {
			d.Flush()
			d.origin = Local
		}
	}()
	return fn()
}

// Flush delivers the pending batch, if any, after collecting the components
// the batch detached for good. Inside a transaction it does nothing.
func (d *Document) Flush() {
	if d.depth > 0 {
		return
	}
	d.root.Marker().FlushRemoved()
	if d.pending == nil {
		return
	}
	b := d.pending
	d.pending = nil
	b.After = d.selection.Paths()
	d.lastPaths = b.After

	d.logger.Debug("batch flushed",
		slog.String("origin", b.Origin.String()),
		slog.Int("operations", len(b.Operations)),
		slog.Int("removed", len(b.Removed)),
	)
	ids := make([]int, 0, len(d.subscribers))
	for id := range d.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := d.subscribers[id]; ok {
			fn(*b)
		}
	}
}

// Apply replays the forward side of each operation under origin.
func (d *Document) Apply(origin Origin, ops ...action.Operation) error {
	return d.replay(origin, ops, false)
}

// Revert replays the inverse side of each operation, last first.
func (d *Document) Revert(origin Origin, ops ...action.Operation) error {
	return d.replay(origin, ops, true)
}

func (d *Document) replay(origin Origin, ops []action.Operation, inverse bool) error {
	if d.readOnly {
		return ErrReadOnly
	}
	return d.Transact(origin, func() error {
		for i := range ops {
			op := ops[i]
			actions := op.Apply
			if inverse {
				op = ops[len(ops)-1-i]
				actions = op.UnApply
			}
			if err := model.Apply(d.root, op.Path, actions, d.registry); err != nil {
				d.logger.Warn("replay rejected",
					slog.String("origin", origin.String()),
					slog.Any("path", op.Path),
					slog.String("error", err.Error()),
				)
				return fmt.Errorf("replay operation at %v: %w", op.Path, err)
			}
		}
		return nil
	})
}

// AfterRender queues fn to run at the next Rendered call.
func (d *Document) AfterRender(fn func()) {
	d.afterRender = append(d.afterRender, fn)
}

// Rendered signals the end of a visual update cycle. Pending operations
// are flushed, then queued AfterRender callbacks run once.
func (d *Document) Rendered() {
	d.Flush()
	queued := d.afterRender
	d.afterRender = nil
	for _, fn := range queued {
		fn()
	}
}
