package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdScore     = "score"
	cmdRender    = "render"
	cmdExport    = "export"
	cmdTemplates = "templates"
	cmdDoctor    = "doctor"
	cmdVersion   = "version"
	cmdHelp      = "help"
)

var commands = []string{cmdScore, cmdRender, cmdExport, cmdTemplates, cmdDoctor, cmdVersion, cmdHelp}

func main() {
	// A missing .env is normal; anything else is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr)

	cmd, rest := args[1], args[2:]
	if cmd == "-h" || cmd == "--help" {
		cmd = cmdHelp
	}
	if !isCommand(cmd) {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		if hasInputExtension(cmd) {
			fmt.Fprintf(env.Stderr, "hint: try 'resumekit score %s' or 'resumekit export %s'\n", cmd, cmd)
		}
		printUsage(env.Stderr)
		return ExitUsage
	}

	var err error
	switch cmd {
	case cmdScore:
		err = runScore(rest, env)
	case cmdRender:
		ctx, stop := notifyContext(context.Background())
		defer stop()
		err = runRender(ctx, rest, env)
	case cmdExport:
		ctx, stop := notifyContext(context.Background())
		defer stop()
		err = runExport(ctx, rest, env)
	case cmdTemplates:
		err = runTemplates(rest, env)
	case cmdDoctor:
		return runDoctorCmd(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "resumekit %s\n", Version)
		return ExitSuccess
	case cmdHelp:
		return runHelp(rest, env)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether name is a known command. Case sensitive.
func isCommand(name string) bool {
	return slices.Contains(commands, name)
}

// hasVerboseFlag reports whether -v or --verbose appears in args.
func hasVerboseFlag(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}
