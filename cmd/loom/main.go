// Command loom runs lowered loom programs: loaded from YAML, executed
// by the evaluator under an optional fuel budget, or driven as a test
// suite with a per-binding pass/fail report.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"

	"github.com/loomlang/loom/internal/evaluator"
	"github.com/loomlang/loom/internal/program"
)

const usage = `loom

Usage:
  loom run PROGRAM [--fuel=N]
  loom test PROGRAM [NAMES...]
  loom -h
  loom --version

Arguments:
  PROGRAM  Path to a lowered program file (YAML definition table).
  NAMES    Test bindings to run. Defaults to every binding whose name
           starts with "test".

Options:
  --fuel=N    Bound the run to N evaluation steps.
  -h, --help  Display this help.
  --version   Print loom version.
`

const version = "loom 0.3.0"

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	path, _ := opts.String("PROGRAM")
	prog, err := program.LoadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if runCmd, _ := opts.Bool("run"); runCmd {
		os.Exit(run(prog, opts))
	}
	os.Exit(test(prog, opts))
}

func run(prog *program.Program, opts docopt.Opts) int {
	runOpts := evaluator.RunOptions{Out: os.Stdout}
	if fuel, _ := opts.String("--fuel"); fuel != "" {
		budget, err := strconv.ParseInt(fuel, 10, 64)
		if err != nil || budget <= 0 {
			fmt.Fprintf(os.Stderr, "invalid fuel budget %q\n", fuel)
			return 1
		}
		runOpts.Fuel = budget
	}

	result := evaluator.Run(prog, runOpts)
	if evaluator.IsFailure(result) {
		fmt.Fprintln(os.Stderr, evaluator.ResultMessage(result))
		return 1
	}
	if evaluator.IsFuelExhausted(result) {
		fmt.Fprintln(os.Stderr, evaluator.ResultMessage(result))
	}
	return 0
}

func test(prog *program.Program, opts docopt.Opts) int {
	var names []string
	if raw, okN := opts["NAMES"].([]string); okN {
		names = raw
	}

	results := evaluator.RunTestSuite(prog, names, evaluator.RunOptions{Out: os.Stdout})
	if len(results) == 0 {
		fmt.Println("no test bindings")
		return 0
	}

	color := isatty.IsTerminal(os.Stdout.Fd())
	failed := 0
	for _, r := range results {
		if r.Passed {
			fmt.Printf("%s %s\n", mark("PASS", "32", color), r.Name)
			continue
		}
		failed++
		fmt.Printf("%s %s\n    %s\n", mark("FAIL", "31", color), r.Name, r.Message)
	}
	fmt.Printf("%d passed, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func mark(label, colorCode string, color bool) string {
	if !color {
		return label
	}
	return "\x1b[" + colorCode + "m" + label + "\x1b[0m"
}
