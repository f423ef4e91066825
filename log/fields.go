package log

import (
	"fmt"
	"strconv"
)

type FieldType int

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeString
	FieldTypeHex8
	FieldTypeHex16
	FieldTypeInt
	FieldTypeError
	FieldTypeStringer
)

type ZField struct {
	Type FieldType
	Key  string

	// Possible values. Only one of these is populated, depending on Type
	String    string
	Integer   uint64
	Error     error
	Interface any
}

func (f *ZField) Value() string {
	switch f.Type {
	case FieldTypeString:
		return f.String
	case FieldTypeInt:
		return strconv.FormatInt(int64(f.Integer), 10)
	case FieldTypeHex8:
		return fmt.Sprintf("%02x", uint(f.Integer))
	case FieldTypeHex16:
		return fmt.Sprintf("%04x", uint(f.Integer))
	case FieldTypeError:
		if f.Error == nil {
			return "<nil>"
		}
		return f.Error.Error()
	case FieldTypeStringer:
		return f.Interface.(fmt.Stringer).String()
	}
	return ""
}
