// Package cmd implements the nonogram command-line driver.
package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jrbyrne/nonogram/internal/puzzle"
	"github.com/jrbyrne/nonogram/internal/queue"
	"github.com/jrbyrne/nonogram/internal/solver"
)

var (
	configPath string
	files      []string
	workers    int
	printGrid  bool
	logLevel   string
	cpuProfile bool
)

var rootCmd = &cobra.Command{
	Use:   "nonogram",
	Short: "Solve nonogram puzzles",
	Long: `Solve one or more nonogram puzzle files against a scoring configuration.

Examples:
  nonogram --config config.json -f puzzle1.json -f puzzle2.json
  nonogram --config config.json --workers 4 --print puzzle.json`,
	RunE:          runSolve,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to the solver configuration JSON file")
	rootCmd.Flags().StringSliceVarP(&files, "file", "f", nil, "puzzle file to solve (repeatable)")
	rootCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "worker pool size")
	rootCmd.Flags().BoolVar(&printGrid, "print", false, "print the solved grid for each puzzle")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&cpuProfile, "profile", false, "write a CPU profile to cpu.pprof")
}

// errMissingRequired is returned by runSolve when --config or --file
// was omitted, and is special-cased in Execute to print usage and
// exit 0 rather than cobra's default nonzero exit.
var errMissingRequired = fmt.Errorf("missing required flag")

func runSolve(c *cobra.Command, args []string) error {
	files = append(files, args...)
	if configPath == "" || len(files) == 0 {
		return errMissingRequired
	}

	if cpuProfile {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	log.SetLevel(level)

	configFile, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer configFile.Close()

	config, err := solver.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	q := queue.New(workers, log)
	for _, path := range files {
		path := path
		q.Add(queue.NewTask(path, func() string {
			spec, err := puzzle.Load(path)
			if err != nil {
				log.WithError(err).WithField("file", path).Warn("failed to parse puzzle")
				return fmt.Sprintf("%s (failed) 0 0 0 0 0", path)
			}
			result := puzzle.Solve(path, spec, config, printGrid)
			return result.String() + sentinelPrinted(result)
		}))
	}
	q.Close()

	results := make([]string, 0, len(files))
	for r := range q.Results() {
		results = append(results, r)
	}

	printed := reorderByIndex(results, files)
	for _, line := range printed {
		fmt.Fprintln(c.OutOrStdout(), line)
	}
	return nil
}

// sentinelPrinted embeds the --print grid (if any) after the result
// line, separated by a newline, so it survives the string-only queue
// result channel.
func sentinelPrinted(r puzzle.Result) string {
	if r.Printed == "" {
		return ""
	}
	return "\n" + r.Printed
}

// reorderByIndex restores submission order: each queue result starts
// with its puzzle's file path, which reorderByIndex matches back
// against the original --file order.
func reorderByIndex(results []string, files []string) []string {
	byPath := make(map[string]string, len(results))
	for _, r := range results {
		path := strings.SplitN(r, " ", 2)[0]
		byPath[path] = r
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		if r, ok := byPath[f]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Execute runs the root command. On the sentinel "missing required
// flag" error it prints usage and exits 0, matching the external
// interface contract; any other error exits 1 with a diagnostic on
// stderr.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if err == errMissingRequired {
		rootCmd.Println(rootCmd.UsageString())
		os.Exit(0)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
