package trace

import "io"

// State is the numeric CPU state of one instruction step.
type State struct {
	PC         uint16
	A, X, Y, P uint8
	SP         uint8
}

func hexEncode(dst []byte, v byte) {
	const hextable = "0123456789ABCDEF"
	dst[0] = hextable[v>>4]
	dst[1] = hextable[v&0x0f]
}

// Record returns the normalized record of s, as Extract would return it for
// a line without any flag bits to mask.
func (s State) Record() Record {
	return Record{
		PC: string([]byte{hextable[s.PC>>12], hextable[s.PC>>8&0x0f], hextable[s.PC>>4&0x0f], hextable[s.PC&0x0f]}),
		A:  string([]byte{hextable[s.A>>4], hextable[s.A&0x0f]}),
		X:  string([]byte{hextable[s.X>>4], hextable[s.X&0x0f]}),
		Y:  string([]byte{hextable[s.Y>>4], hextable[s.Y&0x0f]}),
		P:  string([]byte{hextable[s.P>>4], hextable[s.P&0x0f]}),
		SP: string([]byte{hextable[s.SP>>4], hextable[s.SP&0x0f]}),
	}
}

// AppendLine appends to dst the trace line of s, in the layout of dialect d,
// and returns the extended buffer. Bytes not covered by a field or its label
// are spaces. No newline is appended. d must be a valid dialect.
func AppendLine(dst []byte, s State, d Dialect) []byte {
	off := len(dst)
	n := d.MinLen()
	for i := 0; i < n; i++ {
		dst = append(dst, ' ')
	}
	buf := dst[off:]

	for f := Field(0); f < NumFields; f++ {
		col := d.Columns[f]
		if lbl := d.Labels[f]; lbl != "" && col.Start >= len(lbl) {
			copy(buf[col.Start-len(lbl):], lbl)
		}

		switch f {
		case FieldPC:
			hexEncode(buf[col.Start:], byte(s.PC>>8))
			hexEncode(buf[col.Start+2:], byte(s.PC))
		case FieldA:
			hexEncode(buf[col.Start:], s.A)
		case FieldX:
			hexEncode(buf[col.Start:], s.X)
		case FieldY:
			hexEncode(buf[col.Start:], s.Y)
		case FieldP:
			hexEncode(buf[col.Start:], s.P)
		case FieldSP:
			hexEncode(buf[col.Start:], s.SP)
		}
	}
	return dst
}

// Format returns the trace line of s in the layout of dialect d.
func Format(s State, d Dialect) string {
	return string(AppendLine(nil, s, d))
}

// A Tracer writes one line per state to w, in the layout of its dialect.
type Tracer struct {
	d   Dialect
	w   io.Writer
	buf []byte
}

func NewTracer(w io.Writer, d Dialect) *Tracer {
	return &Tracer{d: d, w: w}
}

// Write writes the trace line of s, followed by a newline.
func (t *Tracer) Write(s State) error {
	t.buf = AppendLine(t.buf[:0], s, t.d)
	t.buf = append(t.buf, '\n')
	_, err := t.w.Write(t.buf)
	return err
}
