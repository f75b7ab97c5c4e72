package datadef

import (
	"fmt"

	"github.com/raveit65/caja-actions/boxed"
)

// DataBoxed attaches a value to its definition. It is the unit of data owned by an item.
type DataBoxed struct {
	def   *Def
	value *boxed.Value
}

// NewDataBoxed returns an unset value for def.
func NewDataBoxed(def *Def) *DataBoxed {
	return &DataBoxed{
		def:   def,
		value: boxed.New(def.Kind),
	}
}

// Def returns the definition the value is attached to.
func (d *DataBoxed) Def() *Def {
	return d.def
}

// Name is the name of the definition.
func (d *DataBoxed) Name() string {
	return d.def.Name
}

// Value returns the value itself.
func (d *DataBoxed) Value() *boxed.Value {
	return d.value
}

// Rebind attaches the value to another definition of the same name and kind, typically the
// definition of another class.
func (d *DataBoxed) Rebind(def *Def) error {
	if def.Name != d.def.Name {
		return fmt.Errorf("Rebind: cannot rebind %s to %s", d.def.Name, def.Name)
	}

	if def.Kind != d.def.Kind {
		return &boxed.KindError{Op: "Rebind", Want: d.def.Kind, Got: def.Kind}
	}

	d.def = def
	return nil
}

// SetDefault sets the value to the default of the definition. It does nothing when there is no
// default.
func (d *DataBoxed) SetDefault() {
	if d.def.Default == nil {
		return
	}

	d.value.SetFromString(*d.def.Default)
}

// IsDefault reports whether the value equals the default of the definition. Without a default,
// an unset or zero value is considered default.
func (d *DataBoxed) IsDefault() bool {
	dflt := d.def.DefaultValue()
	if dflt == nil {
		return !d.value.IsSet() || d.value.IsZero()
	}

	if !d.value.IsSet() {
		return true
	}

	return d.value.Equal(dflt)
}

// IsValid reports whether the value is acceptable for its definition: mandatory strings and lists
// must not be empty.
func (d *DataBoxed) IsValid() bool {
	if !d.def.Has(Mandatory) {
		return true
	}

	switch d.def.Kind {
	case boxed.KindString, boxed.KindLocaleString, boxed.KindStringList, boxed.KindUintList:
		return d.value.IsSet() && !d.value.IsZero()
	}

	return d.value.IsSet()
}

// String formats the datum for logs.
func (d *DataBoxed) String() string {
	if !d.value.IsSet() {
		return fmt.Sprintf("%s (%s): unset", d.def.Name, d.def.Kind)
	}

	return fmt.Sprintf("%s (%s): %s", d.def.Name, d.def.Kind, d.value)
}
