package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tracecheck/config"
	"tracecheck/trace"
)

func TestRunCompareNoDivergence(t *testing.T) {
	states := nops(20)
	args := Compare{
		EmuLog: writeTrace(t, trace.Emulator, states),
		RefLog: writeTrace(t, trace.Reference, states),
		Start:  -1,
	}

	var out bytes.Buffer
	div, err := runCompare(context.Background(), args, config.Default(), &out)
	tcheck(t, err)
	if div != nil {
		t.Fatalf("want no divergence, got step %d", div.Index)
	}
	if out.String() != "no divergence found\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunCompareDivergence(t *testing.T) {
	states := nops(20)
	emuStates := append([]trace.State(nil), states...)
	emuStates[5].Y = 0x80  // skipped by the default start index
	emuStates[15].A = 0x01 // reported

	args := Compare{
		EmuLog: writeTrace(t, trace.Emulator, emuStates),
		RefLog: writeTrace(t, trace.Reference, states),
		Start:  -1,
	}

	var out bytes.Buffer
	div, err := runCompare(context.Background(), args, config.Default(), &out)
	tcheck(t, err)
	if div == nil || div.Index != 15 {
		t.Fatalf("got %+v, want divergence at step 15", div)
	}
	if !strings.HasPrefix(out.String(), "divergence at step 15\n") {
		t.Errorf("output = %q", out.String())
	}

	// Starting at 0 reports the earlier divergence.
	args.Start = 0
	args.JSON = true
	out.Reset()
	div, err = runCompare(context.Background(), args, config.Default(), &out)
	tcheck(t, err)
	if div == nil || div.Index != 5 {
		t.Fatalf("got %+v, want divergence at step 5", div)
	}

	if !bytes.HasPrefix(out.Bytes(), []byte(`{"diverged":true,"index":5,`)) || !bytes.HasSuffix(out.Bytes(), []byte("}\n")) {
		t.Errorf("JSON output = %q", out.String())
	}

	got, err := trace.DecodeJSON(out.Bytes())
	tcheck(t, err)
	if got == nil || got.Index != 5 || got.Emulator.Y != "80" || got.Reference.Y != "00" {
		t.Errorf("decoded JSON result = %+v", got)
	}
}

func TestRunCompareFlagMask(t *testing.T) {
	states := nops(20)
	args := Compare{
		EmuLog: writeTrace(t, trace.Emulator, states),
		RefLog: writeTrace(t, trace.Reference, states),
		Start:  0,
	}

	// Not masking the break flag makes every step diverge.
	var zero uint8
	cfg := config.Default()
	cfg.Reference.FlagMask = &zero

	var out bytes.Buffer
	div, err := runCompare(context.Background(), args, cfg, &out)
	tcheck(t, err)
	if div == nil || div.Index != 0 {
		t.Fatalf("got %+v, want divergence at step 0", div)
	}
	if div.Emulator.P != "04" || div.Reference.P != "24" {
		t.Errorf("p = %s/%s, want 04/24", div.Emulator.P, div.Reference.P)
	}
}

func TestRunCompareMalformed(t *testing.T) {
	args := Compare{
		EmuLog: writeTrace(t, trace.Emulator, nops(20)),
		RefLog: writeTrace(t, trace.Emulator, nops(20)), // wrong dialect
		Start:  -1,
	}

	var out bytes.Buffer
	_, err := runCompare(context.Background(), args, config.Default(), &out)

	var lerr *trace.LineError
	if !errors.As(err, &lerr) {
		t.Fatalf("error = %v, want *trace.LineError", err)
	}
	if lerr.Index != config.DefaultStartIndex || lerr.Side != "reference" {
		t.Errorf("error at %s step %d", lerr.Side, lerr.Index)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be written on error, got %q", out.String())
	}
}

func TestRunExtract(t *testing.T) {
	states := nops(4)
	states[3].X = 0xAB

	args := Extract{
		Path:    writeTrace(t, trace.Reference, states),
		Dialect: "reference",
		Start:   2,
	}

	var out bytes.Buffer
	tcheck(t, runExtract(context.Background(), args, config.Default(), &out))

	want := "2 pc:c002 a:00 x:00 y:00 p:04 sp:fd\n" +
		"3 pc:c003 a:00 x:ab y:00 p:04 sp:fd\n"
	if out.String() != want {
		t.Errorf("output\ngot:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestStartIndex(t *testing.T) {
	cfg := config.Default()
	cfg.StartIndex = 7

	tests := []struct {
		flag    int
		want    int
		wantErr bool
	}{
		{flag: unsetStart, want: 7},
		{flag: 0, want: 0},
		{flag: 3, want: 3},
		{flag: -2, wantErr: true},
		{flag: -5, wantErr: true},
	}
	for _, tt := range tests {
		got, err := startIndex(tt.flag, cfg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("startIndex(%d) = %d, want an error", tt.flag, got)
			}
			continue
		}
		tcheckf(t, err, "startIndex(%d)", tt.flag)
		if got != tt.want {
			t.Errorf("startIndex(%d) = %d, want %d", tt.flag, got, tt.want)
		}
	}
}

func TestRunNegativeStart(t *testing.T) {
	states := nops(20)
	emuLog := writeTrace(t, trace.Emulator, states)
	refLog := writeTrace(t, trace.Reference, states)

	var out bytes.Buffer
	_, err := runCompare(context.Background(), Compare{EmuLog: emuLog, RefLog: refLog, Start: -5}, config.Default(), &out)
	if err == nil || !strings.Contains(err.Error(), "--start must not be negative") {
		t.Errorf("compare: error = %v, want negative start error", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be written on error, got %q", out.String())
	}

	err = runExtract(context.Background(), Extract{Path: refLog, Dialect: "reference", Start: -5}, config.Default(), &out)
	if err == nil || !strings.Contains(err.Error(), "--start must not be negative") {
		t.Errorf("extract: error = %v, want negative start error", err)
	}
}
