package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	cachectl "github.com/peppapig450/cachectl/pkg"
)

const usage = `Usage: cachectl [OPTIONS] OPERATION FILE

Page cache helper for benchmarking

Operations:
  check     Check if file pages are in cache
  add       Add file to page cache
  remove    Remove file from page cache

Options:
  -v, --verbose    Verbose output
  -d, --details    Show detailed page-by-page cache status
  -h, --help       Show this help message

Examples:
  cachectl check /path/to/file
  cachectl -vd add /path/to/file`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("cachectl")

	var verbose, details bool

	flags.BoolVarP(&verbose, "verbose", "v", false, "")
	flags.BoolVarP(&details, "details", "d", false, "")

	ok, err := parse(flags, args, stdout)
	if err != nil {
		return err
	}

	if !ok {
		// --help short-circuits everything else
		return nil
	}

	pargs := flags.Args()
	if len(pargs) != 2 {
		return fmt.Errorf("missing operation or filename\n\n%s", usage)
	}

	op, err := cachectl.ParseOperation(pargs[0])
	if err != nil {
		return fmt.Errorf("%w\n\n%s", err, usage)
	}

	cfg := cachectl.Config{
		Op:      op,
		Path:    pargs[1],
		Verbose: verbose,
		Details: details,
	}

	pageSize := cachectl.HostPageSize()

	switch op {
	case cachectl.OpCheck:
		return cachectl.Check(cfg, pageSize, stdout)
	case cachectl.OpAdd:
		return cachectl.Advise(cfg, cachectl.AdviceWillNeed, stdout)
	case cachectl.OpRemove:
		return cachectl.Advise(cfg, cachectl.AdviceDontNeed, stdout)
	}

	return fmt.Errorf("unknown operation %s", op)
}

func newFlagSet(prog string) *flag.FlagSet {
	f := flag.NewFlagSet(prog, flag.ContinueOnError)
	f.SetOutput(io.Discard)
	f.Usage = nil

	return f
}

func parse(flags *flag.FlagSet, args []string, stdout io.Writer) (bool, error) {
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stdout, usage)
			return false, nil
		}

		return false, fmt.Errorf("%v\n\n%s", err, usage)
	}

	return true, nil
}
