package boxed

import (
	"fmt"
	"reflect"
)

// Pointer is the non-owning reference held by KindPointer values.
//
// A Value never owns what a Pointer refers to. Copying the Value copies the reference only, so the
// caller must keep the referent alive, and unchanged if that matters, for as long as any copy is in
// use. A Pointer is never the source of a deep copy.
type Pointer struct {
	ref any
}

// NewPointer wraps ref without taking ownership of it.
func NewPointer(ref any) Pointer {
	return Pointer{ref: ref}
}

// Ref returns the referent given to NewPointer.
func (p Pointer) Ref() any {
	return p.ref
}

// IsNil reports whether the pointer refers to nothing, including a typed nil.
func (p Pointer) IsNil() bool {
	if p.ref == nil {
		return true
	}

	rv := reflect.ValueOf(p.ref)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func,
		reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}

	return false
}

// Same reports whether both pointers refer to the same thing. Reference types are compared by
// address; other values must be comparable and are compared with ==.
func (p Pointer) Same(other Pointer) bool {
	if p.ref == nil || other.ref == nil {
		return p.ref == nil && other.ref == nil
	}

	a := reflect.ValueOf(p.ref)
	b := reflect.ValueOf(other.ref)
	if a.Type() != b.Type() {
		return false
	}

	switch a.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func,
		reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	}

	if !a.Type().Comparable() {
		return false
	}

	return p.ref == other.ref
}

// String formats the address for diagnostics only.
func (p Pointer) String() string {
	if p.IsNil() {
		return "(nil)"
	}

	rv := reflect.ValueOf(p.ref)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func,
		reflect.UnsafePointer:
		return fmt.Sprintf("%#x", rv.Pointer())
	}

	return fmt.Sprintf("%T(%v)", p.ref, p.ref)
}
