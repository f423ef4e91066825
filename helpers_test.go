package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"tracecheck/trace"
)

/* general testing helpers */

func tcheck(tb testing.TB, err error) {
	if err == nil {
		return
	}

	tb.Helper()
	tb.Fatalf("fatal error:\n\n%s\n", err)
}

func tcheckf(tb testing.TB, err error, format string, args ...any) {
	if err == nil {
		return
	}

	tb.Helper()
	tb.Fatalf("fatal error:\n\n%s: %s\n", fmt.Sprintf(format, args...), err)
}

// writeTrace writes the trace of states in dialect d to a temporary file and
// returns its path.
func writeTrace(tb testing.TB, d trace.Dialect, states []trace.State) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), d.Name+".log")
	f, err := os.Create(path)
	tcheckf(tb, err, "create %s", path)
	defer f.Close()

	tr := trace.NewTracer(f, d)
	for _, s := range states {
		if d.Name == trace.Reference.Name {
			// Nintendulator always shows bit 5 of P.
			s.P |= trace.BreakFlag
		}
		tcheckf(tb, tr.Write(s), "write %s", path)
	}
	return path
}

// nops returns the states of n steps of a NOP slide at $C000.
func nops(n int) []trace.State {
	states := make([]trace.State, n)
	for i := range states {
		states[i] = trace.State{PC: 0xC000 + uint16(i), P: 0x04, SP: 0xFD}
	}
	return states
}
