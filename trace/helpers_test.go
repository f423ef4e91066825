package trace

import (
	"fmt"
	"testing"
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

/* trace fixtures */

// emuLine returns the emulator log line of s.
func emuLine(s State) string {
	return Format(s, Emulator)
}

// refLine returns the Nintendulator log line of s, with the disassembly and
// PPU columns a real log has. The break flag is set, as Nintendulator does.
func refLine(s State, disasm string) string {
	s.P |= BreakFlag
	buf := []byte(Format(s, Reference))
	copy(buf[6:47], disasm)
	return string(buf) + " CYC:  0 SL:241"
}

// traces returns both sides of a trace for the given states.
func traces(states ...State) (emu, ref []string) {
	for _, s := range states {
		emu = append(emu, emuLine(s))
		ref = append(ref, refLine(s, "EA        NOP"))
	}
	return emu, ref
}

// steps returns n distinct states, as executed by a run of NOPs.
func steps(n int) []State {
	states := make([]State, n)
	for i := range states {
		states[i] = State{PC: 0xC000 + uint16(i), A: 0x00, X: 0x00, Y: 0x00, P: 0x04, SP: 0xFD}
	}
	return states
}
