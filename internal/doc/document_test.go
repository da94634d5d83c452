package doc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dshills/richdoc/internal/doc/action"
	"github.com/dshills/richdoc/internal/doc/content"
	"github.com/dshills/richdoc/internal/doc/format"
	"github.com/dshills/richdoc/internal/doc/model"
)

var (
	rootDef = &model.Definition{Name: "root", Type: content.TypeBlock}
	paraDef = &model.Definition{Name: "paragraph", Type: content.TypeBlock}
	bold    = format.NewFormatter("bold")
	schema  = []content.Type{content.TypeText, content.TypeInline, content.TypeBlock}
)

func newDocument(t *testing.T, opts ...Option) (*Document, *model.Slot) {
	t.Helper()
	reg := model.NewRegistry()
	reg.RegisterComponent(rootDef, paraDef)
	reg.RegisterFormatter(bold)
	body := model.NewSlot(schema, nil)
	d := New(model.NewComponent(rootDef, nil, body), reg, opts...)
	return d, body
}

func collect(d *Document) *[]Batch {
	var got []Batch
	d.Subscribe(func(b Batch) { got = append(got, b) })
	return &got
}

func TestTransactDeliversOneBatch(t *testing.T) {
	d, body := newDocument(t)
	got := collect(d)

	err := d.Transact(Local, func() error {
		body.Insert(model.Text("hello"))
		return d.Transact(Remote, func() error {
			body.ApplyFormat(bold, true, 0, 2)
			return nil
		})
	})
	if err != nil {
		t.Fatalf("Transact: %v", err)
	}
	if len(*got) != 1 {
		t.Fatalf("got %d batches, want 1", len(*got))
	}
	b := (*got)[0]
	if b.Origin != Local {
		t.Errorf("origin = %v, want local", b.Origin)
	}
	if len(b.Operations) != 2 {
		t.Errorf("got %d operations, want 2", len(b.Operations))
	}
	if diff := cmp.Diff([]int{0}, b.Operations[0].Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestTransactReturnsError(t *testing.T) {
	d, body := newDocument(t)
	got := collect(d)
	boom := errors.New("boom")

	err := d.Transact(Local, func() error {
		body.Insert(model.Text("x"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if len(*got) != 1 {
		t.Errorf("emitted operations should still be delivered, got %d batches", len(*got))
	}
}

func TestEmissionsWaitForFlush(t *testing.T) {
	d, body := newDocument(t)
	got := collect(d)
	d.Selection().SetPosition(body, 0)

	body.Insert(model.Text("ab"))
	d.Selection().SetPosition(body, 2)
	body.Insert(model.Text("cd"))
	d.Selection().SetPosition(body, 4)

	if len(*got) != 0 || !d.Pending() {
		t.Fatal("batch delivered before Flush")
	}
	d.Flush()
	if len(*got) != 1 {
		t.Fatalf("got %d batches, want 1", len(*got))
	}
	b := (*got)[0]
	if diff := cmp.Diff(Paths{Anchor: []int{0, 0}, Focus: []int{0, 0}}, b.Before); diff != "" {
		t.Errorf("before mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Paths{Anchor: []int{0, 4}, Focus: []int{0, 4}}, b.After); diff != "" {
		t.Errorf("after mismatch (-want +got):\n%s", diff)
	}
	d.Flush()
	if len(*got) != 1 {
		t.Error("empty flush delivered a batch")
	}
}

func TestApplyAndRevert(t *testing.T) {
	d, body := newDocument(t)
	got := collect(d)
	body.Insert(model.Text("hello"))
	d.Flush()
	before := d.ToJSON()

	d.Transact(Local, func() error {
		body.Retain(1)
		body.Retain(4, format.Entry{Formatter: bold, Value: true})
		body.Delete(2)
		return nil
	})
	after := d.ToJSON()
	ops := (*got)[1].Operations

	if err := d.Revert(Remote, ops...); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if diff := cmp.Diff(before, d.ToJSON(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("revert mismatch (-want +got):\n%s", diff)
	}
	if err := d.Apply(Remote, ops...); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if diff := cmp.Diff(after, d.ToJSON(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("apply mismatch (-want +got):\n%s", diff)
	}
	if last := (*got)[len(*got)-1]; last.Origin != Remote {
		t.Errorf("replay origin = %v, want remote", last.Origin)
	}

	stale := action.Operation{Path: []int{7}, Apply: []action.Action{action.NewRetain(0, nil)}}
	if err := d.Apply(Remote, stale); !errors.Is(err, model.ErrStalePath) {
		t.Errorf("err = %v, want ErrStalePath", err)
	}
}

func TestReadOnly(t *testing.T) {
	d, body := newDocument(t, WithReadOnly())
	if body.Insert(model.Text("x")) {
		t.Error("read-only document accepted an insert")
	}
	op := action.Operation{Path: []int{0}, Apply: []action.Action{action.NewInsert(action.TextContent("x"), nil)}}
	if err := d.Apply(Remote, op); !errors.Is(err, ErrReadOnly) {
		t.Errorf("err = %v, want ErrReadOnly", err)
	}
	d.SetReadOnly(false)
	if !body.Insert(model.Text("x")) {
		t.Error("writable document rejected an insert")
	}
}

func TestBatchListsRemovedComponents(t *testing.T) {
	d, body := newDocument(t)
	para := model.NewComponent(paraDef, nil, model.NewSlot(schema, nil))
	body.Insert(model.Ref(para))
	d.Flush()
	got := collect(d)

	d.Transact(Local, func() error {
		body.RemoveComponent(para)
		return nil
	})
	if len(*got) != 1 || len((*got)[0].Removed) != 1 || (*got)[0].Removed[0] != para {
		t.Errorf("removed = %v, want [para]", *got)
	}
}

func TestBatchOmitsMovedComponents(t *testing.T) {
	d, body := newDocument(t)
	para := model.NewComponent(paraDef, nil, model.NewSlot(schema, nil))
	box := model.NewSlot(schema, nil)
	body.Insert(model.Ref(para))
	body.Insert(model.Ref(model.NewComponent(paraDef, nil, box)))
	d.Flush()
	got := collect(d)

	err := d.Transact(Local, func() error {
		if _, ok := body.CutTo(box, 0, 1); !ok {
			t.Error("cut rejected")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Transact: %v", err)
	}
	if len(*got) != 1 {
		t.Fatalf("got %d batches, want 1", len(*got))
	}
	if removed := (*got)[0].Removed; len(removed) != 0 {
		t.Errorf("removed = %v, want none", removed)
	}
	if para.Parent() != box {
		t.Errorf("para parent = %v, want box slot", para.Parent())
	}
}

func TestRenderedRunsCallbacksOnce(t *testing.T) {
	d, _ := newDocument(t)
	calls := 0
	d.AfterRender(func() { calls++ })
	d.Rendered()
	d.Rendered()
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestUnsubscribe(t *testing.T) {
	d, body := newDocument(t)
	calls := 0
	stop := d.Subscribe(func(Batch) { calls++ })
	body.Insert(model.Text("a"))
	d.Flush()
	stop()
	body.Insert(model.Text("b"))
	d.Flush()
	if calls != 1 {
		t.Errorf("subscriber called %d times, want 1", calls)
	}
}

func TestFromLiteral(t *testing.T) {
	d, body := newDocument(t)
	body.Insert(model.Text("hi"))
	lit := d.ToJSON()

	loaded, err := FromLiteral(d.Registry(), lit)
	if err != nil {
		t.Fatalf("FromLiteral: %v", err)
	}
	if got := loaded.ToString(); got != "hi" {
		t.Errorf("text = %q, want %q", got, "hi")
	}
	if _, err := FromLiteral(d.Registry(), action.ComponentLiteral{}); !errors.Is(err, ErrNoRoot) {
		t.Errorf("err = %v, want ErrNoRoot", err)
	}
	if _, err := FromLiteral(d.Registry(), action.ComponentLiteral{Name: "nope"}); !errors.Is(err, model.ErrMissingFactory) {
		t.Errorf("err = %v, want ErrMissingFactory", err)
	}
}
