package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"tracecheck/config"
)

func main() {
	args := parseArgs(os.Args[1:])

	if args.mode == versionMode {
		fmt.Println("tracecheck", version())
		return
	}

	cfg, err := config.LoadOrDefault(args.ConfigPath)
	checkf(err, "failed to load configuration")

	switch args.mode {
	case compareMode:
		os.Exit(compareMain(args.Compare, cfg))
	case extractMode:
		extractMain(args.Extract, cfg)
	case configMode:
		checkf(config.Encode(os.Stdout, cfg), "failed to write configuration")
	}
}

func version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}
