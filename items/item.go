// Package items implements the items of the file manager actions: actions, their profiles, and
// menus. Their data is described by the classes registered in Register, all generic behavior comes
// from the factory package.
package items

import (
	"errors"
	"fmt"

	"github.com/raveit65/caja-actions/factory"
)

var ErrUnknownType = errors.New("unknown item type")

// Item is an action or a menu, an element of the file manager menus.
type Item interface {
	factory.Object

	Type() string
	ID() string
	SetID(id string)
	Label() string
	SetLabel(label string)
	IsEnabled() bool
	IsReadonly() bool
	SetReadonly(readonly bool)
}

// object implements the accessors shared by all item classes.
type object struct {
	factory.Base
}

func newObject(class string) object {
	Register()

	switch class {
	case ActionType:
		return object{Base: factory.NewBase(actionClass)}
	case ProfileType:
		return object{Base: factory.NewBase(profileClass)}
	case MenuType:
		return object{Base: factory.NewBase(menuClass)}
	}

	panic("items: no class " + class)
}

func (o *object) ID() string {
	return text(o, FieldID)
}

func (o *object) SetID(id string) {
	mustSet(o, FieldID, id)
}

func (o *object) Label() string {
	return text(o, FieldLabel)
}

func (o *object) SetLabel(label string) {
	mustSet(o, FieldLabel, label)
}

func (o *object) IsEnabled() bool {
	return boolean(o, FieldEnabled)
}

func (o *object) IsReadonly() bool {
	return boolean(o, FieldReadonly)
}

func (o *object) SetReadonly(readonly bool) {
	mustSet(o, FieldReadonly, readonly)
}

// New returns an item of type typ with all its defaults.
func New(typ string, id string) (Item, error) {
	item, err := Empty(typ, id)
	if err != nil {
		return nil, err
	}

	factory.ApplyDefaults(item)
	return item, nil
}

// Empty returns an item of type typ with only its id, ready to be read from storage.
func Empty(typ string, id string) (Item, error) {
	var item Item

	switch typ {
	case ActionType:
		item = &Action{object: newObject(ActionType)}
	case MenuType:
		item = &Menu{object: newObject(MenuType)}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typ)
	}

	item.SetID(id)
	return item, nil
}

// Duplicate returns a deep copy of item.
func Duplicate(item Item) (Item, error) {
	dup, err := Empty(item.Type(), item.ID())
	if err != nil {
		return nil, err
	}

	if err := factory.Copy(dup, item); err != nil {
		return nil, fmt.Errorf("duplicate %s: %w", item.ID(), err)
	}

	return dup, nil
}

func text(obj factory.Object, name string) string {
	value, _ := factory.Get(obj, name)
	s, _ := value.(string)
	return s
}

func boolean(obj factory.Object, name string) bool {
	value, _ := factory.Get(obj, name)
	b, _ := value.(bool)
	return b
}

func stringList(obj factory.Object, name string) []string {
	value, _ := factory.Get(obj, name)
	list, _ := value.([]string)
	return list
}

// mustSet assigns a value whose name and type are fixed by this package.
func mustSet(obj factory.Object, name string, x any) {
	if err := factory.Set(obj, name, x); err != nil {
		panic(err)
	}
}

// parentOf returns the item holding obj, nil if there is none.
func parentOf(obj factory.Object) factory.Object {
	value, _ := factory.Get(obj, FieldParent)
	parent, _ := value.(factory.Object)
	return parent
}

// conditionsValid reports whether the conditions of obj can match anything.
func conditionsValid(obj factory.Object) bool {
	for _, name := range []string{FieldBasenames, FieldMimetypes, FieldSchemes, FieldFolders} {
		if len(stringList(obj, name)) == 0 {
			return false
		}
	}

	return true
}
