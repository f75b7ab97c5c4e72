package datadef

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrDuplicateData = errors.New("duplicate data name")
	ErrInvalidKind   = errors.New("invalid data kind")
	ErrEmptyName     = errors.New("empty name")
)

// Class is the registered data table of an item class.
// Each class owns its own copy of the definitions, so classes sharing a group still have distinct
// Def pointers.
type Class struct {
	Name   string
	Groups []Group
}

// Lookup returns the definition named name, or nil.
// Tables hold tens of definitions, they are scanned linearly.
func (c *Class) Lookup(name string) *Def {
	for gi := range c.Groups {
		defs := c.Groups[gi].Defs
		for di := range defs {
			if defs[di].Name == name {
				return &defs[di]
			}
		}
	}

	return nil
}

// Defs returns all definitions in table order.
func (c *Class) Defs() []*Def {
	var result []*Def

	for gi := range c.Groups {
		defs := c.Groups[gi].Defs
		for di := range defs {
			result = append(result, &defs[di])
		}
	}

	return result
}

// Group returns the group named name, or nil.
func (c *Class) Group(name string) *Group {
	for gi := range c.Groups {
		if c.Groups[gi].Name == name {
			return &c.Groups[gi]
		}
	}

	return nil
}

var registry = struct {
	sync.Mutex
	classes map[string]*Class
}{
	classes: make(map[string]*Class),
}

// Register registers the data table of the class name.
// The groups are copied, callers can share group variables between classes.
//
// Registering a name that is already registered returns the registered class and ignores groups,
// which makes registration safe to repeat.
func Register(name string, groups ...Group) (*Class, error) {
	registry.Lock()
	defer registry.Unlock()

	if class, exists := registry.classes[name]; exists {
		return class, nil
	}

	if name == "" {
		return nil, fmt.Errorf("Register: class %w", ErrEmptyName)
	}

	class := &Class{
		Name:   name,
		Groups: make([]Group, len(groups)),
	}

	seen := make(map[string]bool)
	for gi, group := range groups {
		class.Groups[gi] = Group{
			Name: group.Name,
			Defs: append([]Def(nil), group.Defs...),
		}

		for _, def := range group.Defs {
			switch {
			case def.Name == "":
				return nil, fmt.Errorf("Register: class %s, group %s: data %w", name, group.Name, ErrEmptyName)
			case seen[def.Name]:
				return nil, fmt.Errorf("Register: class %s: %w: %s", name, ErrDuplicateData, def.Name)
			case !def.Kind.Valid():
				return nil, fmt.Errorf("Register: class %s, data %s: %w: %v", name, def.Name, ErrInvalidKind, def.Kind)
			}
			seen[def.Name] = true
		}
	}

	registry.classes[name] = class
	return class, nil
}

// MustRegister is like Register but panics if the table is malformed.
func MustRegister(name string, groups ...Group) *Class {
	class, err := Register(name, groups...)
	if err != nil {
		panic(err)
	}

	return class
}

// Lookup returns the registered class named name.
func Lookup(name string) (*Class, bool) {
	registry.Lock()
	defer registry.Unlock()

	class, ok := registry.classes[name]
	return class, ok
}

// Classes returns the names of all registered classes, sorted.
func Classes() []string {
	registry.Lock()
	defer registry.Unlock()

	names := make([]string, 0, len(registry.classes))
	for name := range registry.classes {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
