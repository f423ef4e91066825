package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"tracecheck/log"
)

type mode byte

const (
	compareMode mode = iota // Compare two traces
	extractMode             // Print normalized records of a trace
	configMode              // Print effective configuration
	versionMode             // Show tracecheck version
)

// Value of --start when the flag isn't given.
const unsetStart = -1

// Exit codes.
const (
	exitOK         = 0
	exitDivergence = 1
	exitError      = 2
)

type (
	CLI struct {
		Compare Compare   `cmd:"" help:"Compare an emulator trace against a reference trace."`
		Extract Extract   `cmd:"" help:"Print the normalized processor states of a trace."`
		Config  ConfigCmd `cmd:"" help:"Print the effective configuration."`
		Version Version   `cmd:"" help:"Show tracecheck version."`

		Log        logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		ConfigPath string     `name:"config" help:"${config_help}" type:"path" placeholder:"FILE"`

		mode mode
	}

	Compare struct {
		EmuLog string `arg:"" name:"emulator-log" help:"Execution log written by the emulator." type:"existingfile"`
		RefLog string `arg:"" name:"reference-log" help:"Nintendulator CPU debug log." type:"existingfile"`

		Start int      `name:"start" help:"${start_help}" default:"-1"`
		JSON  bool     `name:"json" help:"Write the result as JSON."`
		Out   *outfile `name:"out" help:"Write the result to file." placeholder:"FILE|stdout|stderr"`
	}

	Extract struct {
		Path    string `arg:"" name:"log" help:"Trace log." type:"existingfile"`
		Dialect string `name:"dialect" help:"Trace log dialect." enum:"emulator,reference" default:"emulator"`
		Start   int    `name:"start" help:"${start_help}" default:"-1"`
	}

	ConfigCmd struct{}

	Version struct{}
)

var vars = kong.Vars{
	"log_help":    "Enable logging for specified modules.",
	"config_help": "Configuration file. (default: <user config dir>/tracecheck/config.toml)",
	"start_help":  "Index of the first compared step. (default: start_index from the configuration)",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("tracecheck"),
		kong.Description("Find the first divergence between an emulator CPU trace and a Nintendulator debug log."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch strings.Fields(ctx.Command())[0] {
	case "compare":
		cfg.mode = compareMode
	case "extract":
		cfg.mode = extractMode
	case "config":
		cfg.mode = configMode
	case "version":
		cfg.mode = versionMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}

	loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
	var strs []string
	for _, m := range log.ModuleNames() {
		strs = append(strs, "    - "+m)
	}

	fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf("%s.\n\t%s", fmt.Sprintf(format, args...), err)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(exitError)
}
