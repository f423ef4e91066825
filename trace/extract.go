package trace

import (
	"strconv"
	"strings"
)

const hextable = "0123456789abcdef"

// Extract reads the processor state from a trace line of dialect d.
//
// Fields are sliced at the dialect columns and lowercased. The status flags
// are masked with the dialect flag mask and rendered again as 2 lowercase hex
// digits. Extract either returns a fully populated record or an error, either
// a *MalformedLineError or an *InvalidFlagEncodingError.
func Extract(line string, d Dialect) (Record, error) {
	if need := d.MinLen(); len(line) < need {
		return Record{}, &MalformedLineError{Dialect: d.Name, Line: line, Need: need}
	}

	var rec Record
	for f := Field(0); f < NumFields; f++ {
		col := d.Columns[f]
		s := line[col.Start:col.End]

		if f == FieldP {
			p, err := maskFlags(s, d.FlagMask)
			if err != nil {
				return Record{}, &InvalidFlagEncodingError{Dialect: d.Name, Text: s, Err: err}
			}
			rec.P = p
			continue
		}

		if !isHex(s) {
			return Record{}, &MalformedLineError{Dialect: d.Name, Line: line, Field: f.String(), Need: d.MinLen()}
		}
		rec.set(f, strings.ToLower(s))
	}
	return rec, nil
}

// maskFlags parses a 2 digits hex status byte, clears the bits in mask and
// renders it back in lowercase.
func maskFlags(s string, mask uint8) (string, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return "", err
	}
	if len(s) != 2 {
		return "", strconv.ErrSyntax
	}

	p := uint8(v) &^ mask
	return string([]byte{hextable[p>>4], hextable[p&0x0f]}), nil
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
		case 'a' <= c && c <= 'f':
		case 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}
