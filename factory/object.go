// Package factory runs the generic operations of items over their attached data: defaults, copy,
// equality, validity, and reading or writing through a storage provider.
//
// An item implements Object, usually by embedding Base, and overrides the hooks it needs. All
// other behavior is driven by the datadef.Class of the item.
package factory

import (
	"slices"

	"github.com/raveit65/caja-actions/datadef"
)

// Field names with a meaning to this package.
const (
	// ProviderField holds the provider an item was read from.
	ProviderField = "provider"

	// ProviderDataField holds the provider-specific handle of an item.
	ProviderDataField = "provider-data"
)

// Object is an item whose data is described by a datadef.Class.
type Object interface {
	Class() *datadef.Class
	Data() *Data

	// ReadStart is called before any datum is read.
	ReadStart(reader Reader, handle any, msgs *Messages)

	// ReadDone is called after all data has been read and before defaults are applied.
	ReadDone(reader Reader, handle any, msgs *Messages)

	// WriteStart is called before any datum is written. A non-OK code aborts the write.
	WriteStart(writer Writer, handle any, msgs *Messages) Code

	// WriteDone is called after all data has been written.
	WriteDone(writer Writer, handle any, msgs *Messages) Code
}

// Copier is implemented by objects with state beyond their data, such as children.
// CopyFrom runs after the data of source has been copied.
type Copier interface {
	CopyFrom(source Object) error
}

// Comparer is implemented by objects with class-specific equality, checked after data equality.
type Comparer interface {
	EqualTo(other Object) bool
}

// Validator is implemented by objects with class-specific validity, checked after mandatory data
// is known to be attached.
type Validator interface {
	Validate() bool
}

// Base implements the data access of Object and no-op hooks.
type Base struct {
	class *datadef.Class
	data  Data
}

// NewBase returns a Base of class without any attached data.
func NewBase(class *datadef.Class) Base {
	return Base{class: class}
}

func (b *Base) Class() *datadef.Class {
	return b.class
}

func (b *Base) Data() *Data {
	return &b.data
}

func (b *Base) ReadStart(Reader, any, *Messages) {}

func (b *Base) ReadDone(Reader, any, *Messages) {}

func (b *Base) WriteStart(Writer, any, *Messages) Code {
	return OK
}

func (b *Base) WriteDone(Writer, any, *Messages) Code {
	return OK
}

// Data is the attached data of one object, most recently attached first.
type Data struct {
	list []*datadef.DataBoxed
}

// Get returns the datum named name, or nil if it is not attached.
func (d *Data) Get(name string) *datadef.DataBoxed {
	for _, data := range d.list {
		if data.Name() == name {
			return data
		}
	}

	return nil
}

// Attach attaches data. The caller ensures no datum of the same name is attached.
func (d *Data) Attach(data *datadef.DataBoxed) {
	d.list = slices.Insert(d.list, 0, data)
}

// Detach removes the datum named name and returns it, or nil if it is not attached.
func (d *Data) Detach(name string) *datadef.DataBoxed {
	for i, data := range d.list {
		if data.Name() == name {
			d.list = slices.Delete(d.list, i, i+1)
			return data
		}
	}

	return nil
}

// All returns the attached data, most recently attached first.
func (d *Data) All() []*datadef.DataBoxed {
	return slices.Clone(d.list)
}

// Len returns the number of attached data.
func (d *Data) Len() int {
	return len(d.list)
}

func (d *Data) clear() {
	d.list = nil
}
