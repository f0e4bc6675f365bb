// Command strfile builds the random access index of a fortune data file,
// or inspects an existing index with -i.
//
//	strfile [-c delim] source [output]
//	strfile -i index
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/meigma/fortune"
)

var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "strfile: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("strfile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	delim := fs.String("c", "%", "delimiter character")
	inspect := fs.Bool("i", false, "print the header and offsets of an existing index")
	quiet := fs.Bool("s", false, "silent: do not print a summary")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(*delim) != 1 {
		fmt.Fprintf(stderr, "delimiter must be a single byte, got %q\n", *delim)
		return errUsage
	}

	switch {
	case *inspect && fs.NArg() == 1:
		return inspectIndex(fs.Arg(0), stdout)
	case !*inspect && (fs.NArg() == 1 || fs.NArg() == 2):
	default:
		fs.Usage()
		return errUsage
	}

	source := fs.Arg(0)
	output := source + fortune.IndexSuffix
	if fs.NArg() == 2 {
		output = fs.Arg(1)
	}
	return build(source, output, (*delim)[0], *quiet, stdout)
}

func build(source, output string, delim byte, quiet bool, stdout io.Writer) error {
	data, err := os.ReadFile(source) //nolint:gosec // operator-supplied path
	if err != nil {
		return err
	}
	indexData, err := fortune.BuildIndex(data, delim)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	if err := os.WriteFile(output, indexData, 0o644); err != nil { //nolint:gosec // index files are world readable
		return err
	}
	if quiet {
		return nil
	}

	v, err := fortune.NewIndexView(indexData)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%q created\n", output)
	if v.Len() == 1 {
		fmt.Fprintln(stdout, "There was 1 string")
	} else {
		fmt.Fprintf(stdout, "There were %d strings\n", v.Len())
	}
	fmt.Fprintf(stdout, "Longest string: %d byte(s)\n", v.Longest())
	fmt.Fprintf(stdout, "Shortest string: %d byte(s)\n", v.Shortest())
	return nil
}

func inspectIndex(name string, stdout io.Writer) error {
	indexData, err := os.ReadFile(name) //nolint:gosec // operator-supplied path
	if err != nil {
		return err
	}
	v, err := fortune.NewIndexView(indexData)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	flags := fmt.Sprintf("%#x", v.Flags())
	if names := v.FlagNames(); len(names) > 0 {
		flags += " (" + strings.Join(names, ",") + ")"
	}
	fmt.Fprintf(stdout, "version=%d\nrecords=%d\nlongest=%d\nshortest=%d\nflags=%s\ndelimiter=%q\nend=%d\n",
		v.Version(), v.Len(), v.Longest(), v.Shortest(), flags, v.Delimiter(), v.End())
	for i, off := range v.Offsets() {
		fmt.Fprintf(stdout, "%d\t%d\n", i+1, off)
	}
	if err := v.CheckMonotonic(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
