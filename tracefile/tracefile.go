// Package tracefile loads execution trace logs in memory.
package tracefile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"tracecheck/log"
)

// Longest line accepted. Nintendulator lines are less than 100 bytes long,
// some emulators append a lot more (PPU state, cycle counts, etc.)
const maxLineLen = 64 * 1024

// ReadLines reads all lines from r. Line terminators, either "\n" or "\r\n",
// are stripped.
func ReadLines(ctx context.Context, r io.Reader) ([]string, error) {
	var lines []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLen)
	for sc.Scan() {
		if len(lines)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Load reads all lines of the trace file at path.
func Load(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	lines, err := ReadLines(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read trace %s: %w", path, err)
	}

	log.ModLoad.DebugZ("loaded trace").
		String("path", path).
		Int("lines", len(lines)).
		End()
	return lines, nil
}

// LoadPair loads the emulator and reference traces concurrently. If any
// fails, the other load is canceled and the first error is returned.
func LoadPair(ctx context.Context, emuPath, refPath string) (emu, ref []string, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emu, err = Load(ctx, emuPath)
		return err
	})
	g.Go(func() error {
		var err error
		ref, err = Load(ctx, refPath)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return emu, ref, nil
}
