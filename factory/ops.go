package factory

import (
	"errors"
	"fmt"

	"github.com/raveit65/caja-actions/boxed"
	"github.com/raveit65/caja-actions/datadef"
	"github.com/rs/zerolog/log"
)

var (
	// ErrUnknownField is returned for a name that is not defined in the class of the object.
	ErrUnknownField = errors.New("unknown field")

	// ErrNotAttached is returned when moving a datum which is not attached to the source.
	ErrNotAttached = errors.New("field not attached")

	// ErrAlreadyAttached is returned when moving a datum onto an object which already has it.
	ErrAlreadyAttached = errors.New("field already attached")

	// ErrNoProperty is returned by the property accessors for data without the HasProperty flag.
	ErrNoProperty = errors.New("field is not a property")
)

func lookupDef(obj Object, name string) (*datadef.Def, error) {
	def := obj.Class().Lookup(name)
	if def == nil {
		return nil, fmt.Errorf("%s: %w: %s", obj.Class().Name, ErrUnknownField, name)
	}

	return def, nil
}

// attachment returns the datum named name, attaching an unset one if needed.
func attachment(obj Object, name string) (*datadef.DataBoxed, error) {
	if data := obj.Data().Get(name); data != nil {
		return data, nil
	}

	def, err := lookupDef(obj, name)
	if err != nil {
		return nil, err
	}

	data := datadef.NewDataBoxed(def)
	obj.Data().Attach(data)
	return data, nil
}

// ApplyDefaults attaches the default value of every datum which has a default and is not
// attached yet. Calling it again does nothing.
func ApplyDefaults(obj Object) {
	for _, def := range obj.Class().Defs() {
		if def.Default == nil || obj.Data().Get(def.Name) != nil {
			continue
		}

		data := datadef.NewDataBoxed(def)
		data.SetDefault()
		obj.Data().Attach(data)
	}
}

// Move detaches the datum named name from source and attaches it to target, bound to the
// definition of the target class. The value is kept as is, set or not.
func Move(target, source Object, name string) error {
	data := source.Data().Get(name)
	if data == nil {
		return fmt.Errorf("Move %s: %w", name, ErrNotAttached)
	}

	if target.Data().Get(name) != nil {
		return fmt.Errorf("Move %s: %w", name, ErrAlreadyAttached)
	}

	def, err := lookupDef(target, name)
	if err != nil {
		return fmt.Errorf("Move: %w", err)
	}

	if err := data.Rebind(def); err != nil {
		return fmt.Errorf("Move: %w", err)
	}

	source.Data().Detach(name)
	target.Data().Attach(data)
	return nil
}

// Copy replaces the data of target with copies of the copyable data of source.
// The provider linkage of target is kept. Objects implementing Copier complete the copy.
func Copy(target, source Object) error {
	var linkage []*datadef.DataBoxed
	for _, name := range []string{ProviderField, ProviderDataField} {
		if data := target.Data().Get(name); data != nil {
			linkage = append(linkage, data)
		}
	}

	target.Data().clear()

	for _, src := range source.Data().All() {
		if !src.Def().Has(datadef.Copyable) {
			continue
		}

		dst, err := attachment(target, src.Name())
		if errors.Is(err, ErrUnknownField) {
			continue
		}
		if err != nil {
			return fmt.Errorf("Copy: %w", err)
		}

		if err := dst.Value().SetFrom(src.Value()); err != nil {
			return fmt.Errorf("Copy %s: %w", src.Name(), err)
		}
	}

	for _, data := range linkage {
		target.Data().Detach(data.Name())
		target.Data().Attach(data)
	}

	if copier, ok := target.(Copier); ok {
		if err := copier.CopyFrom(source); err != nil {
			return fmt.Errorf("Copy: %w", err)
		}
	}

	return nil
}

// AreEqual reports whether every comparable datum of a is attached to b with an equal value, and
// every comparable datum of b is attached to a. Objects implementing Comparer are compared further.
func AreEqual(a, b Object) bool {
	if !comparableIn(a, b) || !presentIn(b, a) {
		return false
	}

	if comparer, ok := a.(Comparer); ok {
		return comparer.EqualTo(b)
	}

	return true
}

func comparableIn(a, b Object) bool {
	for _, data := range a.Data().All() {
		if !data.Def().Has(datadef.Comparable) {
			continue
		}

		other := b.Data().Get(data.Name())
		if other == nil || other.Value().Kind() != data.Value().Kind() {
			return false
		}

		if !data.Value().Equal(other.Value()) {
			log.Debug().
				Str("class", a.Class().Name).
				Str("field", data.Name()).
				Stringer("a", data.Value()).
				Stringer("b", other.Value()).
				Msg("data differ")
			return false
		}
	}

	return true
}

func presentIn(b, a Object) bool {
	for _, data := range b.Data().All() {
		if data.Def().Has(datadef.Comparable) && a.Data().Get(data.Name()) == nil {
			return false
		}
	}

	return true
}

// IsValid reports whether all mandatory data is attached and all attached data is valid.
// Objects implementing Validator are checked further.
func IsValid(obj Object) bool {
	for _, def := range obj.Class().Defs() {
		if def.Has(datadef.Mandatory) && obj.Data().Get(def.Name) == nil {
			log.Debug().Str("class", obj.Class().Name).Str("field", def.Name).Msg("mandatory data not attached")
			return false
		}
	}

	for _, data := range obj.Data().All() {
		if !data.IsValid() {
			log.Debug().Str("class", obj.Class().Name).Str("field", data.Name()).Msg("invalid data")
			return false
		}
	}

	if validator, ok := obj.(Validator); ok {
		return validator.Validate()
	}

	return true
}

// Dump logs the attached data of obj at debug level.
func Dump(obj Object) {
	for _, data := range obj.Data().All() {
		event := log.Debug().Str("class", obj.Class().Name).Str("field", data.Name())
		if data.Value().IsSet() {
			event = event.Stringer("value", data.Value())
		}
		event.Bool("set", data.Value().IsSet()).Msg("dump")
	}
}

// IsSet reports whether the datum named name is attached and set.
func IsSet(obj Object, name string) bool {
	data := obj.Data().Get(name)
	return data != nil && data.Value().IsSet()
}

// Value returns the value of the datum named name, or nil if it is not attached.
func Value(obj Object, name string) *boxed.Value {
	data := obj.Data().Get(name)
	if data == nil {
		return nil
	}

	return data.Value()
}

// Get returns the datum named name as a Go value, see boxed.Value.Any.
// Unattached data falls back to its default, or nil without default.
func Get(obj Object, name string) (any, error) {
	if data := obj.Data().Get(name); data != nil {
		return data.Value().Any(), nil
	}

	def, err := lookupDef(obj, name)
	if err != nil {
		return nil, err
	}

	if dflt := def.DefaultValue(); dflt != nil {
		return dflt.Any(), nil
	}

	return nil, nil
}

// Set assigns a Go value to the datum named name, attaching it if needed. See boxed.Value.SetAny.
func Set(obj Object, name string, x any) error {
	data, err := attachment(obj, name)
	if err != nil {
		return err
	}

	return data.Value().SetAny(x)
}

// GetVoid is Get returning the raw form, see boxed.Value.Void.
func GetVoid(obj Object, name string) (any, error) {
	if data := obj.Data().Get(name); data != nil {
		return data.Value().Void(), nil
	}

	def, err := lookupDef(obj, name)
	if err != nil {
		return nil, err
	}

	if dflt := def.DefaultValue(); dflt != nil {
		return dflt.Void(), nil
	}

	return nil, nil
}

// SetVoid is Set accepting the raw form, see boxed.Value.SetVoid.
func SetVoid(obj Object, name string, x any) error {
	data, err := attachment(obj, name)
	if err != nil {
		return err
	}

	return data.Value().SetVoid(x)
}

// SetFromString parses text into the datum named name, attaching it if needed.
func SetFromString(obj Object, name string, text string) error {
	data, err := attachment(obj, name)
	if err != nil {
		return err
	}

	data.Value().SetFromString(text)
	return nil
}

// Property is Get restricted to data with the HasProperty flag.
func Property(obj Object, name string) (any, error) {
	if err := requireProperty(obj, name); err != nil {
		return nil, err
	}

	return Get(obj, name)
}

// SetProperty is Set restricted to data with the HasProperty flag.
func SetProperty(obj Object, name string, x any) error {
	if err := requireProperty(obj, name); err != nil {
		return err
	}

	return Set(obj, name, x)
}

func requireProperty(obj Object, name string) error {
	def, err := lookupDef(obj, name)
	if err != nil {
		return err
	}

	if !def.Has(datadef.HasProperty) {
		return fmt.Errorf("%s: %w: %s", obj.Class().Name, ErrNoProperty, name)
	}

	return nil
}
