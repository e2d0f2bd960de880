// Command campus_export validates a campus graph table and writes it out as
// JSON or YAML. Without -in it exports the compiled-in campus table, which
// is the usual starting point for a GRAPH_FILE.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"campus-nav-server/routing"
)

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("campus_export", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var in, out, format string
	fs.StringVar(&in, "in", "", "Graph table to validate (.json, .yaml or .yml); empty uses the compiled-in campus")
	fs.StringVar(&out, "out", "", "Output file; empty writes to stdout")
	fs.StringVar(&format, "format", "", "Output format (json or yaml); defaults to the -out extension, else yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	table := routing.CampusTable()
	if in != "" {
		t, err := routing.LoadTable(in)
		if err != nil {
			return err
		}
		table = t
	}

	g, err := routing.NewGraph(table)
	if err != nil {
		return fmt.Errorf("invalid graph table: %w", err)
	}

	outFormat := routing.Format(format)
	if outFormat == "" {
		outFormat = routing.FormatYAML
		if out != "" {
			if f, err := routing.FormatFromPath(out); err == nil {
				outFormat = f
			}
		}
	}

	var buf bytes.Buffer
	if err := routing.EncodeTable(&buf, g.Table(), outFormat); err != nil {
		return err
	}

	if out == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", out, err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Fprintf(stdout, "Wrote %s (%s)\n", out, outFormat)
	fmt.Fprintf(stdout, "Nodes: %d, Links: %d\n", g.Len(), len(g.Links()))
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
