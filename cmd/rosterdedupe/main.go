// Command rosterdedupe clusters player names read from a file or stdin.
//
// Plain input is one name per line and prints one representative per line.
// With -json the input is a backend roster document and the output maps each
// category to its result. -clusters prints members alongside representatives.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carson3m/TrackmanAnalyticsProgram/internal/dedup"
	"github.com/carson3m/TrackmanAnalyticsProgram/internal/domain/roster"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	jsonInput  bool
	clusters   bool
	strategy   string
	variations string
	input      string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("rosterdedupe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.jsonInput, "json", false, "read a roster JSON document instead of one name per line")
	fs.BoolVar(&opts.clusters, "clusters", false, "print cluster members as JSON")
	fs.StringVar(&opts.strategy, "strategy", string(dedup.StrategySeed), "clustering strategy: seed or connected")
	fs.StringVar(&opts.variations, "variations", "", "YAML file with extra name variation groups")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: rosterdedupe [flags] [file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return opts, errors.New("at most one input file")
	}
	switch dedup.Strategy(strings.ToLower(opts.strategy)) {
	case dedup.StrategySeed, dedup.StrategyConnected:
	default:
		fmt.Fprintf(stderr, "rosterdedupe: unknown strategy %q\n", opts.strategy)
		fs.Usage()
		return opts, fmt.Errorf("unknown strategy %q", opts.strategy)
	}
	opts.input = fs.Arg(0)
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	deduper, err := newDeduper(opts)
	if err != nil {
		fmt.Fprintln(stderr, "rosterdedupe:", err)
		return 1
	}

	in := stdin
	if opts.input != "" && opts.input != "-" {
		f, err := os.Open(opts.input)
		if err != nil {
			fmt.Fprintln(stderr, "rosterdedupe:", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	if opts.jsonInput {
		err = dedupeRoster(deduper, in, stdout, opts.clusters)
	} else {
		err = dedupeLines(deduper, in, stdout, opts.clusters)
	}
	if err != nil {
		fmt.Fprintln(stderr, "rosterdedupe:", err)
		return 1
	}
	return 0
}

func newDeduper(opts options) (*dedup.Deduper, error) {
	groups := [][][]string{dedup.DefaultVariationGroups()}
	if opts.variations != "" {
		extra, err := dedup.LoadVariationFile(opts.variations)
		if err != nil {
			return nil, err
		}
		groups = append(groups, extra)
	}
	cfg := dedup.DefaultConfig()
	cfg.Strategy = dedup.ParseStrategy(opts.strategy)
	return dedup.New(dedup.NewVariationTable(groups...), cfg), nil
}

func readLines(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	return names, nil
}

func dedupeLines(d *dedup.Deduper, in io.Reader, out io.Writer, withClusters bool) error {
	names, err := readLines(in)
	if err != nil {
		return err
	}
	if withClusters {
		return writeJSON(out, d.Clusters(names))
	}
	w := bufio.NewWriter(out)
	for _, name := range d.Dedupe(names) {
		fmt.Fprintln(w, name)
	}
	return w.Flush()
}

func dedupeRoster(d *dedup.Deduper, in io.Reader, out io.Writer, withClusters bool) error {
	var raw roster.Roster
	if err := json.NewDecoder(in).Decode(&raw); err != nil {
		return fmt.Errorf("decode roster: %w", err)
	}
	result := make(map[roster.Category]any, len(roster.Categories()))
	for _, c := range roster.Categories() {
		clusters := d.Clusters(raw.Names(c))
		if withClusters {
			result[c] = clusters
			continue
		}
		reps := make([]string, len(clusters))
		for i, cl := range clusters {
			reps[i] = cl.Representative
		}
		result[c] = reps
	}
	return writeJSON(out, result)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
