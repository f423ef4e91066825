package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/go-faster/jx"

	"tracecheck/config"
	"tracecheck/log"
	"tracecheck/trace"
	"tracecheck/tracefile"
)

// compareMain compares the traces given on the command line and returns the
// process exit code.
func compareMain(args Compare, cfg config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var out io.Writer = os.Stdout
	if args.Out != nil {
		out = args.Out
		defer args.Out.Close()
	}

	div, err := runCompare(ctx, args, cfg, out)
	checkf(err, "failed to compare traces")
	if div != nil {
		return exitDivergence
	}
	return exitOK
}

func runCompare(ctx context.Context, args Compare, cfg config.Config, out io.Writer) (*trace.Divergence, error) {
	start, err := startIndex(args.Start, cfg)
	if err != nil {
		return nil, err
	}

	emuDialect, refDialect, err := cfg.Dialects()
	if err != nil {
		return nil, err
	}

	emu, ref, err := tracefile.LoadPair(ctx, args.EmuLog, args.RefLog)
	if err != nil {
		return nil, err
	}
	if len(emu) != len(ref) {
		log.ModCLI.WarnZ("traces have different lengths, comparing up to the shortest").
			Int("emulator", len(emu)).
			Int("reference", len(ref)).
			End()
	}

	cmp := trace.Comparator{EmuDialect: emuDialect, RefDialect: refDialect}
	div, err := cmp.FindFirstDivergence(emu, ref, start)
	if err != nil {
		return nil, err
	}

	if args.JSON {
		var e jx.Encoder
		trace.EncodeJSON(&e, div)
		_, err = out.Write(append(e.Bytes(), '\n'))
	} else {
		err = trace.WriteText(out, div)
	}
	return div, err
}

func extractMain(args Extract, cfg config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	checkf(runExtract(ctx, args, cfg, os.Stdout), "failed to extract %s", args.Path)
}

// runExtract writes the normalized record of each line of a trace, prefixed
// by its step index.
func runExtract(ctx context.Context, args Extract, cfg config.Config, out io.Writer) error {
	start, err := startIndex(args.Start, cfg)
	if err != nil {
		return err
	}

	emuDialect, refDialect, err := cfg.Dialects()
	if err != nil {
		return err
	}
	d := emuDialect
	if args.Dialect == trace.Reference.Name {
		d = refDialect
	}

	lines, err := tracefile.Load(ctx, args.Path)
	if err != nil {
		return err
	}

	for i := start; i < len(lines); i++ {
		rec, err := trace.Extract(lines[i], d)
		if err != nil {
			return &trace.LineError{Index: i, Side: d.Name, Err: err}
		}
		if _, err := fmt.Fprintf(out, "%d %s\n", i, rec); err != nil {
			return err
		}
	}
	return nil
}

// startIndex returns the first compared step: the --start value if it was
// given, the configured one otherwise.
func startIndex(flag int, cfg config.Config) (int, error) {
	switch {
	case flag == unsetStart:
		return cfg.StartIndex, nil
	case flag < 0:
		return 0, fmt.Errorf("--start must not be negative, got %d", flag)
	}
	return flag, nil
}
