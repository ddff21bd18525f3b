// Package main provides the CLI entrypoint for class-composer.
//
// class-composer inspects composition manifests:
//   - check validates a manifest and prints its diagnostics
//   - describe builds a manifest and prints every member table it defines
//
// Method bodies, decorators and transforms live in Go code, so the CLI resolves the
// names a manifest refers to with stand-ins (see manifest.NewLenientRegistry).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"

	"class-composer/class"
	"class-composer/internal/diagnostic"
	"class-composer/internal/manifest"
)

const usage = `usage: class-composer <command> [flags] <manifest.yaml>

Commands:
  check      validate a manifest and report diagnostics
  describe   print the member tables a manifest defines

Run class-composer <command> -h for the flags of a command.
`

func main() {
	fd := os.Stdout.Fd()
	color := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, color))
}

// run executes the command in args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer, color bool) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	switch args[0] {
	case "check":
		return runCheck(args[1:], stdout, stderr, color)
	case "describe":
		return runDescribe(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
}

func runCheck(args []string, stdout, stderr io.Writer, color bool) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	noColor := fs.Bool("no-color", false, "disable coloured output")
	quiet := fs.Bool("q", false, "only report errors")

	path, ok := parseArgs(fs, args, stderr)
	if !ok {
		return 2
	}

	f, err := manifest.LoadFile(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	diags := manifest.Validate(f, manifest.NewLenientRegistry())
	p := printer{w: stdout, color: color && !*noColor}

	for _, d := range diags.Errors {
		p.diagnostic(d)
	}

	if !*quiet {
		for _, d := range diags.Warnings {
			p.diagnostic(d)
		}

		for _, d := range diags.Infos {
			p.diagnostic(d)
		}
	}

	fmt.Fprintf(stdout, "%s: %d error(s), %d warning(s)\n", path, len(diags.Errors), len(diags.Warnings))

	if diags.HasErrors() {
		return 1
	}

	return 0
}

func runDescribe(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dump := fs.Bool("dump", false, "print a structural dump of the description")

	path, ok := parseArgs(fs, args, stderr)
	if !ok {
		return 2
	}

	f, err := manifest.LoadFile(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	set, err := manifest.Build(f, manifest.NewLenientRegistry())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	descs, err := set.Describe()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if *dump {
		spew.Fdump(stdout, descs)
		return 0
	}

	writeDescriptions(stdout, descs)

	return 0
}

// parseArgs parses flags and returns the single manifest path.
func parseArgs(fs *flag.FlagSet, args []string, stderr io.Writer) (string, bool) {
	if err := fs.Parse(args); err != nil {
		return "", false
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "%s: expected exactly one manifest path\n", fs.Name())
		return "", false
	}

	return fs.Arg(0), true
}

func writeDescriptions(w io.Writer, descs []manifest.Description) {
	for i, d := range descs {
		if i > 0 {
			fmt.Fprintln(w)
		}

		kind := "class"
		if d.Kind == class.KindTrait {
			kind = "trait"
		}

		fmt.Fprintf(w, "%s %s\n", kind, d.Name)

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, row := range d.Members {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", row.Name, row.Kind, row.Layer)
		}

		tw.Flush()
	}
}

// printer writes diagnostics, colouring the severity on terminals.
type printer struct {
	w     io.Writer
	color bool
}

var severityColors = map[diagnostic.DiagnosticSeverity]string{
	diagnostic.DiagnosticError:   "\x1b[31m",
	diagnostic.DiagnosticWarning: "\x1b[33m",
	diagnostic.DiagnosticInfo:    "\x1b[36m",
}

func (p printer) diagnostic(d diagnostic.Diagnostic) {
	label := d.Severity.String()
	if p.color {
		label = severityColors[d.Severity] + label + "\x1b[0m"
	}

	fmt.Fprintf(p.w, "%s: %s\n", label, d.String())
}
