package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/jessevdk/go-flags"
	"golang.org/x/term"
)

var version string

type options struct {
	Config  string `short:"c" long:"config" description:"Path to the sanitizer strategy configuration file" value-name:"PATH"`
	Output  string `short:"o" long:"output" description:"Path to write the sanitized dump into; defaults to stdout" value-name:"PATH"`
	Verbose bool   `long:"verbose" description:"Log every dropped row to stderr"`
	Debug   bool   `long:"debug" description:"Pretty-print every emitted line to stderr"`
	Verify  string `long:"verify" description:"After sanitizing, load the result into this scratch database URL to confirm it is loadable" value-name:"URL"`
	Help    bool   `long:"help" description:"Show this help"`
	Version bool   `long:"version" description:"Show this version"`
}

// parseOptions parses args and returns the flags plus the positional
// database URL. Usage problems exit the process with status 2 (§6).
func parseOptions(args []string) (options, string) {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[options] url"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(2)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}

	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "No database URL is specified!")
		parser.WriteHelp(os.Stderr)
		os.Exit(2)
	}
	if len(rest) > 1 {
		fmt.Fprintf(os.Stderr, "Multiple database URLs are given: %v\n", rest)
		parser.WriteHelp(os.Stderr)
		os.Exit(2)
	}

	return opts, rest[0]
}

// promptPassword reads a password from the controlling terminal, used when
// a dump URL has a user but no password embedded in it.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Enter Password: ")
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pass), nil
}
