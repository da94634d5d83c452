package main

import (
	"maps"
	"slices"

	"github.com/dshills/richdoc/internal/config"
	"github.com/dshills/richdoc/internal/doc/action"
	"github.com/dshills/richdoc/internal/doc/content"
	"github.com/dshills/richdoc/internal/doc/format"
	"github.com/dshills/richdoc/internal/doc/model"
)

// discovery collects the names a document and its operation log use.
type discovery struct {
	components map[string]content.Type
	order      []string
	formatters map[string]bool
	attributes map[string]bool
}

func newDiscovery() *discovery {
	return &discovery{
		components: make(map[string]content.Type),
		formatters: make(map[string]bool),
		attributes: make(map[string]bool),
	}
}

// component records lit, guessing its type from the slot that holds it.
// A component without a holder (the root) or in a slot accepting both
// kinds is a block when it has slots.
func (d *discovery) component(lit action.ComponentLiteral, holder []content.Type) {
	if _, ok := d.components[lit.Name]; !ok {
		typ := content.TypeInline
		inline := slices.Contains(holder, content.TypeInline)
		block := slices.Contains(holder, content.TypeBlock)
		switch {
		case block && !inline:
			typ = content.TypeBlock
		case inline && !block:
		case len(lit.Slots) > 0:
			typ = content.TypeBlock
		}
		d.components[lit.Name] = typ
		d.order = append(d.order, lit.Name)
	}
	for _, s := range lit.Slots {
		d.slot(s)
	}
}

func (d *discovery) slot(lit action.SlotLiteral) {
	for name := range lit.Formats {
		d.formatters[name] = true
	}
	for name := range lit.Attributes {
		d.attributes[name] = true
	}
	for _, c := range lit.Content {
		if c.IsComponent() {
			d.component(*c.Component, lit.Schema)
		}
	}
}

func (d *discovery) actions(list []action.Action) {
	for _, a := range list {
		for name := range a.Formats {
			d.formatters[name] = true
		}
		switch a.Type {
		case action.Insert:
			if a.Content.IsComponent() {
				d.component(*a.Content.Component, nil)
			}
		case action.InsertSlot:
			if a.Slot != nil {
				d.slot(*a.Slot)
			}
		case action.AttrSet, action.AttrDelete:
			d.attributes[a.Name] = true
		}
	}
}

// buildRegistry registers every declared name and then every name the
// document or log references but the schema does not declare.
func buildRegistry(schema config.SchemaConfig, lit action.ComponentLiteral, ops []action.Operation) *model.Registry {
	reg := model.NewRegistry()
	for _, c := range schema.Components {
		typ, _ := content.ParseType(c.Type)
		reg.RegisterComponent(&model.Definition{Name: c.Name, Type: typ})
	}
	for _, f := range schema.Formatters {
		kind := format.Inline
		if f.Kind == "block" {
			kind = format.Block
		}
		reg.RegisterFormatter(&format.Formatter{Name: f.Name, Kind: kind, Columned: f.Columned, Priority: f.Priority})
	}
	for _, name := range schema.Attributes {
		reg.RegisterAttribute(model.NewAttribute(name))
	}

	d := newDiscovery()
	d.component(lit, nil)
	for _, op := range ops {
		d.actions(op.Apply)
		d.actions(op.UnApply)
	}

	for _, name := range d.order {
		if _, ok := reg.Component(name); !ok {
			reg.RegisterComponent(&model.Definition{Name: name, Type: d.components[name]})
		}
	}
	for _, name := range slices.Sorted(maps.Keys(d.formatters)) {
		if _, ok := reg.Formatter(name); !ok {
			reg.RegisterFormatter(format.NewFormatter(name))
		}
	}
	for _, name := range slices.Sorted(maps.Keys(d.attributes)) {
		if _, ok := reg.Attribute(name); !ok {
			reg.RegisterAttribute(model.NewAttribute(name))
		}
	}
	return reg
}
