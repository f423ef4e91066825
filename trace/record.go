package trace

import "strings"

// Field identifies one of the processor registers held by a Record.
type Field int

const (
	FieldPC Field = iota
	FieldA
	FieldX
	FieldY
	FieldP
	FieldSP

	NumFields
)

var fieldNames = [NumFields]string{"pc", "a", "x", "y", "p", "sp"}

// width of each field, in hex digits.
var fieldWidths = [NumFields]int{4, 2, 2, 2, 2, 2}

func (f Field) String() string {
	if f < 0 || f >= NumFields {
		return "<invalid>"
	}
	return fieldNames[f]
}

// Width returns the number of hex digits of the field.
func (f Field) Width() int { return fieldWidths[f] }

// FieldByName returns the field with the given (lowercase) name.
func FieldByName(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return -1, false
}

// Record is the normalized processor state at one instruction step. Each
// field is a lowercase, zero-padded hex string of the field width, so two
// records are equal if and only if the processor states they were extracted
// from are equivalent.
type Record struct {
	PC string
	A  string
	X  string
	Y  string
	P  string
	SP string
}

func (r *Record) Get(f Field) string {
	switch f {
	case FieldPC:
		return r.PC
	case FieldA:
		return r.A
	case FieldX:
		return r.X
	case FieldY:
		return r.Y
	case FieldP:
		return r.P
	case FieldSP:
		return r.SP
	}
	panic("trace: invalid field " + f.String())
}

func (r *Record) set(f Field, v string) {
	switch f {
	case FieldPC:
		r.PC = v
	case FieldA:
		r.A = v
	case FieldX:
		r.X = v
	case FieldY:
		r.Y = v
	case FieldP:
		r.P = v
	case FieldSP:
		r.SP = v
	default:
		panic("trace: invalid field " + f.String())
	}
}

// Diff returns the fields whose value differs between r and other.
func (r Record) Diff(other Record) []Field {
	var fields []Field
	for f := Field(0); f < NumFields; f++ {
		if r.Get(f) != other.Get(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// String returns the record as "pc:c000 a:00 x:00 y:00 p:24 sp:fd".
func (r Record) String() string {
	var sb strings.Builder
	for f := Field(0); f < NumFields; f++ {
		if f != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.String())
		sb.WriteByte(':')
		sb.WriteString(r.Get(f))
	}
	return sb.String()
}
