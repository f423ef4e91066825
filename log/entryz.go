package log

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

const maxZFields = 16

// EntryZ is a log entry built field by field. A nil *EntryZ is a disabled
// entry: all its methods are no-ops, so a disabled module costs a nil check.
type EntryZ struct {
	mod Module
	lvl Level
	msg string

	zfbuf [maxZFields]ZField
	zfidx int
}

func (e *EntryZ) add(f ZField) *EntryZ {
	if e == nil {
		return nil
	}
	if e.zfidx < maxZFields {
		e.zfbuf[e.zfidx] = f
		e.zfidx++
	}
	return e
}

func (e *EntryZ) String(key, val string) *EntryZ {
	return e.add(ZField{Type: FieldTypeString, Key: key, String: val})
}

func (e *EntryZ) Stringer(key string, val fmt.Stringer) *EntryZ {
	return e.add(ZField{Type: FieldTypeStringer, Key: key, Interface: val})
}

func (e *EntryZ) Int(key string, val int) *EntryZ {
	return e.add(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	return e.add(ZField{Type: FieldTypeError, Key: key, Error: err})
}

// End emits the entry.
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = e.mod.String()
	for i := range e.zfbuf[:e.zfidx] {
		fields[e.zfbuf[i].Key] = e.zfbuf[i].Value()
	}

	entry := logrus.StandardLogger().WithFields(fields)
	switch e.lvl {
	case WarnLevel:
		entry.Warn(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	default:
		entry.Debug(e.msg)
	}
}
