/*
Reaper analyzes a project for dead code: unused imports, unused locals,
unused or unreachable functions, classes, branches, arguments and loop
variables.

Usage:

	reaper [flags] [PATHS...]

If no paths are given, the current directory is analyzed.

The flags are:

	--select CODES
		Comma-separated list of rule codes (e.g. RP001,RP003). Only listed
		rules produce diagnostics. Default: all rules.

	--exclude NAMES
		Comma-separated list of path component names to skip, in addition
		to the fixed auto-exclude list (VCS directories, virtualenvs,
		caches, build output).

	--json
		Emit the structured {count, diagnostics} document instead of the
		human-readable line format.

	--no-exit-code
		Always exit 0, even when diagnostics were produced.

	-h, --help
		Print the flag usage and exit.

	-V, --version
		Print the version and exit.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/viant/afs"

	"github.com/taradepan/reaper/internal/config"
	"github.com/taradepan/reaper/internal/discover"
	"github.com/taradepan/reaper/internal/orchestrate"
	"github.com/taradepan/reaper/internal/report"
)

// version is the reaper release version, overridden at build time via
// -ldflags "-X main.version=...".
var version = "dev"

var (
	flagSelect     = pflag.String("select", "", "comma-separated list of rule codes to run")
	flagExclude    = pflag.String("exclude", "", "comma-separated list of path component names to skip")
	flagJSON       = pflag.Bool("json", false, "emit the structured JSON diagnostic document")
	flagNoExitCode = pflag.Bool("no-exit-code", false, "always exit 0, even when diagnostics were produced")
	flagVersion    = pflag.BoolP("version", "V", false, "print the version and exit")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("reaper %s\n", version)
		os.Exit(0)
	}

	paths := pflag.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	fileCfg, err := config.Load(paths[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg := config.Merge(fileCfg, splitList(*flagSelect), splitList(*flagExclude), *flagJSON, *flagNoExitCode)

	d := discover.New(afs.New(), cfg.Exclude)
	diags, err := orchestrate.Run(context.Background(), d, paths, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var writeErr error
	if cfg.JSON {
		writeErr = report.WriteJSON(os.Stdout, diags)
	} else {
		writeErr = report.WriteHuman(os.Stdout, diags)
	}
	if writeErr != nil {
		fmt.Fprintln(os.Stderr, writeErr)
		os.Exit(2)
	}

	if cfg.NoExitCode || len(diags) == 0 {
		os.Exit(0)
	}
	os.Exit(1)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
