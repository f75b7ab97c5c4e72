// Package datadef describes the elementary data of item classes.
//
// Each class declares its data once, as an ordered table of Def grouped in Group, and registers it
// under its name. Everything else, from applying defaults to reading and writing the data through
// a storage provider, is driven by these tables.
package datadef

import (
	"github.com/raveit65/caja-actions/boxed"
)

// Flag is a set of properties of a Def.
type Flag uint

const (
	// Readable data is read from storage providers.
	Readable Flag = 1 << iota

	// Writable data is written to storage providers.
	Writable

	// HasProperty data can be accessed through the generic property accessors.
	HasProperty

	// Mandatory data must be attached for the item to be valid.
	Mandatory

	// Copyable data is duplicated when an item is copied.
	Copyable

	// Comparable data takes part in item equality.
	Comparable

	// WriteIfDefault data is written even when its value is the default, instead of being removed
	// from storage.
	WriteIfDefault

	// Localizable data may have a value per locale in storage.
	Localizable
)

// Persisted is the usual set of flags of data that is stored.
const Persisted = Readable | Writable | HasProperty | Copyable | Comparable

// Backend identifies a storage format that keys data by its own names.
type Backend int

const (
	// BackendDesktop stores data in desktop files, keyed by Def.DesktopKey.
	BackendDesktop Backend = iota

	// BackendConfig stores data in a hierarchical configuration store, keyed by Def.ConfigKey.
	BackendConfig
)

func (b Backend) String() string {
	switch b {
	case BackendDesktop:
		return "desktop"
	case BackendConfig:
		return "config"
	}

	return "unknown"
}

// Def defines one elementary datum of a class.
type Def struct {
	// Name is unique within the class.
	Name string

	Kind boxed.Kind

	// Default is the textual default value, parsed with boxed.Parse. Nil means there is no default
	// and the data is not attached until it is read or set.
	Default *string

	Flags Flag

	// ShortLabel and LongLabel describe the datum to users.
	ShortLabel string
	LongLabel  string

	// DesktopKey is the key in a desktop file, empty if the datum is not stored there.
	DesktopKey string

	// ConfigKey is the entry name in the configuration store, empty if the datum is not stored there.
	ConfigKey string
}

// Text returns a pointer to s, to be used as a Def.Default.
func Text(s string) *string {
	return &s
}

// Has reports whether all flags in f are set.
func (d *Def) Has(f Flag) bool {
	return d.Flags&f == f
}

// Key returns the key of the datum in the given backend, empty if it is not stored there.
func (d *Def) Key(backend Backend) string {
	switch backend {
	case BackendDesktop:
		return d.DesktopKey
	case BackendConfig:
		return d.ConfigKey
	}

	return ""
}

// DefaultValue returns the parsed default, or nil if the datum has no default.
func (d *Def) DefaultValue() *boxed.Value {
	if d.Default == nil {
		return nil
	}

	return boxed.Parse(d.Kind, *d.Default)
}

// Group is a named part of a class table. Classes sharing a part of their data, such as all items
// sharing an identifier, use a group with the same definitions.
type Group struct {
	Name string
	Defs []Def
}
