package factory

import (
	"github.com/raveit65/caja-actions/datadef"
	"github.com/rs/zerolog/log"
)

// Read populates obj from reader.
//
// Each readable datum with a key for the backend of reader is read once. Data found overwrites
// any attached value, data not found is left alone. Once the object hook ran, defaults fill what
// is still missing.
func Read(obj Object, reader Reader, handle any, msgs *Messages) {
	reader.ReadStart(obj, handle, msgs)
	obj.ReadStart(reader, handle, msgs)

	backend := reader.Backend()
	for _, def := range obj.Class().Defs() {
		if !def.Has(datadef.Readable) || def.Key(backend) == "" {
			continue
		}

		data := reader.ReadData(obj, handle, def, msgs)
		if data == nil {
			continue
		}

		existing := obj.Data().Get(def.Name)
		if existing == nil {
			obj.Data().Attach(data)
			continue
		}

		if err := existing.Value().SetFrom(data.Value()); err != nil {
			log.Error().Err(err).Str("class", obj.Class().Name).Str("field", def.Name).Msg("Read")
			msgs.Add("%s: %v", def.Name, err)
		}
	}

	obj.ReadDone(reader, handle, msgs)
	ApplyDefaults(obj)
	reader.ReadDone(obj, handle, msgs)
}

// Write stores obj through writer and returns the first non-OK code, which stops the write.
// What was written before that is not rolled back.
//
// Data equal to its default is removed from storage instead of written, unless its definition
// carries datadef.WriteIfDefault.
func Write(obj Object, writer Writer, handle any, msgs *Messages) Code {
	code := writer.WriteStart(obj, handle, msgs)
	if code == OK {
		code = obj.WriteStart(writer, handle, msgs)
	}

	if code == OK {
		code = writeData(obj, writer, handle, msgs)
	}

	if code == OK {
		code = obj.WriteDone(writer, handle, msgs)
	}

	if code == OK {
		code = writer.WriteDone(obj, handle, msgs)
	}

	if code == ProgramError {
		log.Error().Str("class", obj.Class().Name).Strs("messages", msgs.List()).Msg("Write: program error")
	}

	return code
}

func writeData(obj Object, writer Writer, handle any, msgs *Messages) Code {
	backend := writer.Backend()

	for _, def := range obj.Class().Defs() {
		if !def.Has(datadef.Writable) || def.Key(backend) == "" {
			continue
		}

		data := obj.Data().Get(def.Name)
		if data == nil {
			continue
		}

		var code Code
		if data.IsDefault() && !def.Has(datadef.WriteIfDefault) {
			code = writer.RemoveData(obj, handle, def, msgs)
		} else {
			code = writer.WriteData(obj, handle, data, msgs)
		}

		if code != OK {
			log.Debug().
				Str("class", obj.Class().Name).
				Str("field", def.Name).
				Stringer("code", code).
				Msg("write aborted")
			return code
		}
	}

	return OK
}
