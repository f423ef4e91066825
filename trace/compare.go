package trace

import (
	"strings"

	"tracecheck/log"
)

// A Divergence is the first step at which both traces disagree.
type Divergence struct {
	Index     int
	Emulator  Record
	Reference Record

	// Raw lines the records were extracted from.
	EmulatorLine  string
	ReferenceLine string
}

// Fields returns the fields that differ between both records.
func (d *Divergence) Fields() []Field {
	return d.Emulator.Diff(d.Reference)
}

// A Comparator compares an emulator trace against a reference trace, each
// side having its own dialect.
type Comparator struct {
	EmuDialect Dialect
	RefDialect Dialect
}

// DefaultComparator compares Emulator lines against Reference lines.
func DefaultComparator() Comparator {
	return Comparator{EmuDialect: Emulator, RefDialect: Reference}
}

// FindFirstDivergence is DefaultComparator().FindFirstDivergence.
func FindFirstDivergence(emu, ref []string, start int) (*Divergence, error) {
	return DefaultComparator().FindFirstDivergence(emu, ref, start)
}

// FindFirstDivergence scans both traces in step order, starting at index
// start, and returns the first step at which the extracted records differ.
// Lines before start are never read. The scan stops at the end of the shortest
// trace, so a length difference alone never produces a divergence.
//
// A nil Divergence and a nil error means both traces agree over the scanned
// range. If a line can't be extracted, the scan is aborted and a *LineError is
// returned.
func (c Comparator) FindFirstDivergence(emu, ref []string, start int) (*Divergence, error) {
	if start < 0 {
		return nil, ErrNegativeStart
	}

	end := min(len(emu), len(ref))
	log.ModTrace.DebugZ("scanning traces").
		Int("start", start).
		Int("end", end).
		Int("emulator_len", len(emu)).
		Int("reference_len", len(ref)).
		End()

	for i := start; i < end; i++ {
		recA, err := Extract(emu[i], c.EmuDialect)
		if err != nil {
			return nil, &LineError{Index: i, Side: c.EmuDialect.Name, Err: err}
		}
		recB, err := Extract(ref[i], c.RefDialect)
		if err != nil {
			return nil, &LineError{Index: i, Side: c.RefDialect.Name, Err: err}
		}

		if recA != recB {
			d := &Divergence{
				Index:         i,
				Emulator:      recA,
				Reference:     recB,
				EmulatorLine:  emu[i],
				ReferenceLine: ref[i],
			}
			log.ModTrace.InfoZ("divergence").
				Int("index", i).
				String("fields", joinFields(d.Fields())).
				Stringer("emulator", recA).
				Stringer("reference", recB).
				End()
			return d, nil
		}
	}

	return nil, nil
}

func joinFields(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return strings.Join(names, ",")
}
