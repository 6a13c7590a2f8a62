// Command rep2html converts REP documents to HTML pages.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// A first argument that is not a command name runs convert, so
// "rep2html 5 7" works like "rep2html convert 5 7".
func runMain(args []string, env *Environment) int {
	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS value,
	// in which case the runtime default stays in place.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	warnUnknownEnvVars(env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	rest := args[1:]
	cmd := "convert"
	if len(rest) > 0 && isCommand(rest[0]) {
		cmd, rest = strings.ToLower(rest[0]), rest[1:]
	}

	var err error
	switch cmd {
	case "convert":
		err = runConvertCmd(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "config":
		err = runConfigCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "rep2html %s\n", Version)
	case "help":
		runHelp(rest, env)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// commands lists the subcommand names.
var commands = []string{"convert", "doctor", "config", "version", "help"}

// isCommand reports whether arg names a subcommand, ignoring case.
func isCommand(arg string) bool {
	for _, c := range commands {
		if strings.EqualFold(arg, c) {
			return true
		}
	}
	return false
}
