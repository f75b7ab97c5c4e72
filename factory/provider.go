package factory

import (
	"errors"
	"fmt"

	"github.com/raveit65/caja-actions/datadef"
)

// Code is the status returned by write operations.
type Code int

const (
	OK Code = iota

	// NotWillingToRun is returned by a provider which does not handle the object at all.
	NotWillingToRun

	// NotWritable is returned when the target storage is read-only.
	NotWritable

	// WriteError is an I/O failure while writing.
	WriteError

	// DeleteError is an I/O failure while removing stored data.
	DeleteError

	// ProgramError reports a misuse, such as a data kind the provider cannot store.
	ProgramError
)

var codeNames = map[Code]string{
	OK:              "ok",
	NotWillingToRun: "not willing to run",
	NotWritable:     "not writable",
	WriteError:      "write error",
	DeleteError:     "delete error",
	ProgramError:    "program error",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return fmt.Sprintf("code(%d)", int(c))
}

// Err returns nil for OK and a *CodeError otherwise.
func (c Code) Err() error {
	if c == OK {
		return nil
	}

	return &CodeError{Code: c}
}

// CodeError wraps a non-OK Code into an error.
type CodeError struct {
	Code Code
}

func (e *CodeError) Error() string {
	return "provider: " + e.Code.String()
}

// Messages collects the human-readable errors of one read or write, to be reported once per item.
// A nil *Messages discards everything.
type Messages struct {
	list []string
}

// Add appends a formatted message.
func (m *Messages) Add(format string, args ...any) {
	if m == nil {
		return
	}

	m.list = append(m.list, fmt.Sprintf(format, args...))
}

// List returns the collected messages in order.
func (m *Messages) List() []string {
	if m == nil {
		return nil
	}

	return append([]string(nil), m.list...)
}

// Len returns the number of collected messages.
func (m *Messages) Len() int {
	if m == nil {
		return 0
	}

	return len(m.list)
}

// Err joins the collected messages into one error, nil if there are none.
func (m *Messages) Err() error {
	if m.Len() == 0 {
		return nil
	}

	errs := make([]error, len(m.list))
	for i, msg := range m.list {
		errs[i] = errors.New(msg)
	}

	return errors.Join(errs...)
}

// Provider is a storage backend. Backend selects which key of a datadef.Def the provider uses.
// Data without a key for the backend is never handed to the provider.
type Provider interface {
	Backend() datadef.Backend
}

// Reader supplies stored data to Read, one datum at a time.
// The handle is opaque to this package and identifies the stored instance of obj.
type Reader interface {
	Provider

	ReadStart(obj Object, handle any, msgs *Messages)

	// ReadData returns the stored value of def, or nil if there is none or the kind is not
	// supported by the provider.
	ReadData(obj Object, handle any, def *datadef.Def, msgs *Messages) *datadef.DataBoxed

	ReadDone(obj Object, handle any, msgs *Messages)
}

// Writer consumes the data of an object during Write, one datum at a time.
type Writer interface {
	Provider

	WriteStart(obj Object, handle any, msgs *Messages) Code
	WriteData(obj Object, handle any, data *datadef.DataBoxed, msgs *Messages) Code

	// RemoveData removes any stored value of def, so that its default applies on next read.
	RemoveData(obj Object, handle any, def *datadef.Def, msgs *Messages) Code

	WriteDone(obj Object, handle any, msgs *Messages) Code
}
