package trace

import (
	"fmt"
	"io"

	"github.com/go-faster/jx"
)

// WriteText writes a human readable report of the comparison result to w. d
// may be nil, meaning no divergence was found.
func WriteText(w io.Writer, d *Divergence) error {
	if d == nil {
		_, err := fmt.Fprintln(w, "no divergence found")
		return err
	}

	_, err := fmt.Fprintf(w, `divergence at step %d
  emulator:       %s
  reference:      %s
  fields:         %s
  emulator line:  %s
  reference line: %s
`, d.Index, d.Emulator, d.Reference, joinFields(d.Fields()), d.EmulatorLine, d.ReferenceLine)
	return err
}

// EncodeJSON encodes the comparison result into e. d may be nil, meaning no
// divergence was found.
func EncodeJSON(e *jx.Encoder, d *Divergence) {
	e.ObjStart()
	e.FieldStart("diverged")
	e.Bool(d != nil)
	if d != nil {
		e.FieldStart("index")
		e.Int(d.Index)
		e.FieldStart("emulator")
		encodeRecord(e, d.Emulator)
		e.FieldStart("reference")
		encodeRecord(e, d.Reference)
		e.FieldStart("fields")
		e.ArrStart()
		for _, f := range d.Fields() {
			e.Str(f.String())
		}
		e.ArrEnd()
		e.FieldStart("emulator_line")
		e.Str(d.EmulatorLine)
		e.FieldStart("reference_line")
		e.Str(d.ReferenceLine)
	}
	e.ObjEnd()
}

func encodeRecord(e *jx.Encoder, r Record) {
	e.ObjStart()
	for f := Field(0); f < NumFields; f++ {
		e.FieldStart(f.String())
		e.Str(r.Get(f))
	}
	e.ObjEnd()
}

// MarshalJSON implements json.Marshaler.
func (d *Divergence) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	EncodeJSON(&e, d)
	return e.Bytes(), nil
}

// DecodeJSON decodes a comparison result encoded with EncodeJSON. It returns
// nil if the result reports no divergence.
func DecodeJSON(data []byte) (*Divergence, error) {
	var (
		div      Divergence
		diverged bool
	)

	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "diverged":
			diverged, err = d.Bool()
		case "index":
			div.Index, err = d.Int()
		case "emulator":
			err = decodeRecord(d, &div.Emulator)
		case "reference":
			err = decodeRecord(d, &div.Reference)
		case "emulator_line":
			div.EmulatorLine, err = d.Str()
		case "reference_line":
			div.ReferenceLine, err = d.Str()
		default:
			// "fields" is derived from the records.
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("decode comparison result: %w", err)
	}
	if !diverged {
		return nil, nil
	}
	return &div, nil
}

func decodeRecord(d *jx.Decoder, r *Record) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		f, ok := FieldByName(key)
		if !ok {
			return d.Skip()
		}
		v, err := d.Str()
		if err != nil {
			return err
		}
		r.set(f, v)
		return nil
	})
}
