package items

import (
	"fmt"
	"slices"

	"github.com/raveit65/caja-actions/factory"
)

// Menu groups actions and other menus in a submenu.
type Menu struct {
	object
	children []Item
	linked   bool
}

// NewMenu returns a menu with its defaults and without children.
func NewMenu(id string) *Menu {
	m := &Menu{object: newObject(MenuType), linked: true}
	m.SetID(id)
	factory.ApplyDefaults(m)
	return m
}

func (m *Menu) Type() string {
	return MenuType
}

// ChildIDs returns the ordered ids of the children as stored, whether they are linked or not.
func (m *Menu) ChildIDs() []string {
	if m.linked {
		ids := make([]string, len(m.children))
		for i, child := range m.children {
			ids[i] = child.ID()
		}
		return ids
	}

	return stringList(m, FieldItems)
}

// Children returns the linked children in order.
func (m *Menu) Children() []Item {
	return slices.Clone(m.children)
}

// AddChild appends item to the children of m.
func (m *Menu) AddChild(item Item) {
	mustSet(item, FieldParent, m)
	m.children = append(m.children, item)
	m.linked = true
}

// RemoveChild removes the child with the given id and reports whether there was one.
func (m *Menu) RemoveChild(id string) bool {
	for i, child := range m.children {
		if child.ID() == id {
			m.children = slices.Delete(m.children, i, i+1)
			return true
		}
	}

	return false
}

// Link resolves the stored child ids with lookup. Ids which do not resolve are dropped.
func (m *Menu) Link(lookup func(id string) Item) {
	ids := stringList(m, FieldItems)

	m.children = nil
	for _, id := range ids {
		if child := lookup(id); child != nil {
			m.AddChild(child)
		}
	}
	m.linked = true
}

// WriteStart rebuilds the ordered list of children ids. A menu which was never linked keeps the
// list it was read with.
func (m *Menu) WriteStart(factory.Writer, any, *factory.Messages) factory.Code {
	mustSet(m, FieldItems, m.ChildIDs())
	return factory.OK
}

// CopyFrom replaces the children of m with duplicates of the children of source.
func (m *Menu) CopyFrom(source factory.Object) error {
	src, ok := source.(*Menu)
	if !ok {
		return fmt.Errorf("%w: cannot copy %s into a menu", ErrUnknownType, source.Class().Name)
	}

	m.children = nil
	m.linked = src.linked
	for _, child := range src.children {
		dup, err := Duplicate(child)
		if err != nil {
			return err
		}
		m.AddChild(dup)
	}

	return nil
}

// EqualTo compares the ordered ids of the children.
func (m *Menu) EqualTo(other factory.Object) bool {
	o, ok := other.(*Menu)
	return ok && slices.Equal(m.ChildIDs(), o.ChildIDs())
}

// Validate requires a label.
func (m *Menu) Validate() bool {
	return m.Label() != "" && conditionsValid(m)
}
