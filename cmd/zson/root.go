// Command zson filters NDJSON or JSON-array record data with a
// MongoDB-style query language, using a zero-copy parser and a
// parallel fork-join engine across the input's newline boundaries.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"

	"github.com/melihbirim/zson/internal/engine"
	"github.com/melihbirim/zson/internal/output"
	"github.com/melihbirim/zson/internal/query"
)

// version is set via ldflags at build time:
//
//	go build -ldflags "-X main.version=0.1.0" ./cmd/zson
var version = "dev"

var (
	flagSelect  []string
	flagCount   bool
	flagLimit   int
	flagThreads int
	flagOutput  string
	flagPretty  bool
	flagQuiet   bool
	flagGzip    bool
	flagVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "zson [flags] <query> <path>",
	Short: "filter NDJSON/JSON records with a MongoDB-style query",
	Long: `zson filters NDJSON or JSON-array record data against a MongoDB-style
query ($eq, $gt, $in, $regex, $and/$or/$nor/$not, $exists, $size, $type, ...),
parsing with a zero-copy tokenizer and evaluating across the input in
parallel, newline-aligned chunks.

The query and the input path may appear in either order; a ".json"/
".ndjson" suffix or a literal "-" (standard input) identifies the path.

Examples:
  zson '{"a":{"$gt":1}}' data.ndjson
  cat data.ndjson | zson '{"status":"active"}' -
  zson --output csv --select name,age '{}' users.json`,
	Args:          cobra.RangeArgs(0, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runZson,
}

func init() {
	rootCmd.Flags().StringSliceVar(&flagSelect, "select", nil, "project only these fields (dotted paths allowed)")
	rootCmd.Flags().BoolVar(&flagCount, "count", false, "emit only the integer match count")
	rootCmd.Flags().IntVar(&flagLimit, "limit", 0, "emit at most the first N matches (0 = unlimited)")
	rootCmd.Flags().IntVar(&flagThreads, "threads", 4, "worker count, clamped to available cores")
	rootCmd.Flags().StringVar(&flagOutput, "output", "ndjson", "output format: ndjson, json, or csv")
	rootCmd.Flags().BoolVar(&flagPretty, "pretty", false, "pretty-print json output")
	rootCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "suppress the per-record parse-error diagnostic")
	rootCmd.Flags().BoolVar(&flagGzip, "gzip", false, "treat input as gzip-compressed, bypassing extension/magic-byte detection")
	rootCmd.Flags().BoolVarP(&flagVersion, "version", "v", false, "print version and exit")
}

func runZson(cmd *cobra.Command, args []string) error {
	if flagVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version)
		fmt.Fprintf(cmd.OutOrStdout(), "cpu: %s (%d logical cores)\n", cpuid.CPU.BrandName, cpuid.CPU.LogicalCores)
		return nil
	}

	queryStr, path, err := resolveArgs(args)
	if err != nil {
		return fmt.Errorf("%w: %v", errArgument, err)
	}

	filter, err := query.Compile([]byte(queryStr))
	if err != nil {
		red := color.New(color.FgRed)
		_, _ = red.Fprintf(cmd.ErrOrStderr(), "query compile error: %v\n", err)
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "query: %s\n", queryStr)
		return errQueryCompile
	}

	format, err := parseFormat(flagOutput)
	if err != nil {
		return fmt.Errorf("%w: %v", errArgument, err)
	}

	src, err := engine.OpenInput(path, flagGzip)
	if err != nil {
		return fmt.Errorf("%w: %v", errIO, err)
	}
	defer src.Close()

	opts := engine.Options{
		Threads:    flagThreads,
		Count:      flagCount,
		Limit:      flagLimit,
		Format:     format,
		Pretty:     flagPretty,
		Quiet:      flagQuiet,
		Projection: output.ParseSelect(flagSelect),
	}

	res, err := engine.Run(src, filter, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", errIO, err)
	}

	if flagCount {
		fmt.Fprintln(cmd.OutOrStdout(), res.Count)
		return nil
	}
	if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
		return fmt.Errorf("%w: %v", errIO, err)
	}
	return nil
}

// resolveArgs splits the positional args into (query, path). Either
// order is accepted; a path is identified by a ".json"/".ndjson"
// suffix or the literal "-". Absent a disambiguating marker on either
// argument, the documented default order (query, then path) applies.
func resolveArgs(args []string) (query, path string, err error) {
	switch len(args) {
	case 0:
		return "", "", fmt.Errorf("a query argument is required")
	case 1:
		return args[0], "-", nil
	case 2:
		a, b := args[0], args[1]
		switch {
		case looksLikePath(a) && !looksLikePath(b):
			return b, a, nil
		case looksLikePath(b) && !looksLikePath(a):
			return a, b, nil
		default:
			return a, b, nil
		}
	default:
		return "", "", fmt.Errorf("expected at most a query and a path, got %d arguments", len(args))
	}
}

func looksLikePath(s string) bool {
	return s == "-" || strings.HasSuffix(s, ".json") || strings.HasSuffix(s, ".ndjson")
}

func parseFormat(name string) (engine.Format, error) {
	switch name {
	case "ndjson":
		return engine.FormatNDJSON, nil
	case "json":
		return engine.FormatJSON, nil
	case "csv":
		return engine.FormatCSV, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (want ndjson, json, or csv)", name)
	}
}

// Execute runs the root command and sets the process exit code.
// Errors are printed to stderr.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
