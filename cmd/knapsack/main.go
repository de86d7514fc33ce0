package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eugenenazirov/knapsack/internal/items"
	"github.com/eugenenazirov/knapsack/internal/logging"
	"github.com/eugenenazirov/knapsack/internal/render"
	"github.com/eugenenazirov/knapsack/internal/solver"
)

const defaultMaxCells = "100000000"

// newLogger is swapped in tests to capture log output.
var newLogger = logging.New

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, solves the knapsack described by the item file, and
// writes the result to stdout. It returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	exitCode := -1
	app := kingpin.New("knapsack", "Selects the subset of items with the highest total value whose total cost fits the capacity.")
	app.UsageWriter(stderr).ErrorWriter(stderr).Terminate(func(code int) {
		if exitCode < 0 {
			exitCode = code
		}
	})

	itemsFile := app.Arg("file", "Item file: one 'index cost value' record per line, or a .yaml/.yml list").Required().String()
	capacity := app.Arg("capacity", "Maximum total cost of the selected items (use -- before negative values)").Required().Int()
	format := app.Flag("format", "Output format").Short('f').Default(render.FormatText).Enum(render.Formats()...)
	maxCells := app.Flag("max-cells", "Upper bound on items x (capacity+1) table cells, 0 disables").Default(defaultMaxCells).Int64()
	verbose := app.Flag("verbose", "Emit debug logs to stderr").Short('v').Bool()

	_, err := app.Parse(args)
	if exitCode >= 0 {
		// --help already printed usage.
		return exitCode
	}
	if err != nil {
		app.FatalUsage("%s", err)
		return exitCode
	}

	level := zapcore.InfoLevel
	if *verbose {
		level = zapcore.DebugLevel
	}
	logger, err := newLogger(logging.WithLevel(level))
	if err != nil {
		fmt.Fprintf(stderr, "knapsack: error: initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	loaded, err := items.Load(*itemsFile)
	if err != nil {
		app.Errorf("%v", err)
		return 1
	}

	start := time.Now()
	result, err := solver.New(solver.WithCellLimit(*maxCells)).Solve(loaded, *capacity)
	if err != nil {
		app.Errorf("%v", err)
		return 1
	}
	logger.Debug("knapsack solved",
		zap.String("file", *itemsFile),
		zap.Int("items", len(loaded)),
		zap.Int("capacity", *capacity),
		zap.Int("chosen", len(result.Chosen)),
		zap.Duration("duration", time.Since(start)),
	)

	if err := render.Write(stdout, *format, result); err != nil {
		app.Errorf("%v", err)
		return 1
	}
	return 0
}
