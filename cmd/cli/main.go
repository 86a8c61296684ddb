// Command cli runs one analysis against a dataset file and prints the
// classical verdict report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"statkit/adapters/excel"
	"statkit/adapters/stats/engine"
	"statkit/domain/dataset"
	"statkit/domain/freq"
	"statkit/domain/stats"
	"statkit/internal/plotting"
	"statkit/internal/report"
)

func main() {
	var (
		file        = flag.String("file", "", "dataset file (.xlsx or .csv)")
		test        = flag.String("test", "", "test to run: shapiro, levene, shapiro-levene, ttest-ind, ttest-rel, anova, wilcoxon, mannwhitney, friedman, kruskal, frequency")
		columns     = flag.String("columns", "", "comma-separated column names (default: all)")
		alpha       = flag.Float64("alpha", stats.DefaultAlpha, "significance threshold")
		alternative = flag.String("alternative", "two-sided", "alternative hypothesis: two-sided, less, greater")
		center      = flag.String("center", "mean", "levene centering: mean, median, trimmed")
		equalVar    = flag.Bool("equal-var", true, "assume equal variances (independent t-test)")
		counts      = flag.Bool("counts", false, "frequency: column already holds counts")
		plotOut     = flag.String("plot", "", "write the boxplot/histogram view for the first column to this PNG path")
	)
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	if *file == "" || *test == "" {
		flag.Usage()
		os.Exit(2)
	}

	frame, err := excel.NewDataReader(*file).ReadFrame()
	if err != nil {
		log.Fatalf("failed to read dataset: %v", err)
	}
	frame, names := selectColumns(frame, *columns)
	if len(names) == 0 {
		log.Fatal("dataset has no columns")
	}

	if *plotOut != "" {
		if err := writePlot(frame, names[0], *plotOut); err != nil {
			log.Fatalf("failed to render plot: %v", err)
		}
		log.Printf("plot written to %s", *plotOut)
	}

	opts := report.Options{
		Alpha:       *alpha,
		Alternative: stats.Alternative(*alternative),
		Center:      stats.Center(*center),
		EqualVar:    equalVar,
	}
	reporter := report.NewReporter(report.NewAnalyzer(engine.NewEngine()), os.Stdout)

	switch *test {
	case "shapiro":
		_, err = reporter.Shapiro(frame, opts)
	case "levene":
		_, err = reporter.Levene(frame, opts)
	case "shapiro-levene":
		_, err = reporter.ShapiroLevene(frame, opts)
	case "ttest-ind":
		_, err = reporter.TTestInd(frame, opts)
	case "ttest-rel":
		_, err = reporter.TTestRel(frame, opts)
	case "anova":
		_, err = reporter.ANOVAOneWay(frame, opts)
	case "wilcoxon":
		_, err = reporter.Wilcoxon(frame, opts)
	case "mannwhitney":
		_, err = reporter.MannWhitneyU(frame, opts)
	case "friedman":
		_, err = reporter.Friedman(frame, opts)
	case "kruskal":
		_, err = reporter.KruskalWallis(frame, opts)
	case "frequency":
		err = printFrequency(frame, names[0], *counts)
	default:
		log.Fatalf("unknown test %q", *test)
	}
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
}

// selectColumns narrows the frame to the requested columns, preserving
// the requested order
func selectColumns(frame *dataset.Frame, spec string) (*dataset.Frame, []string) {
	if spec == "" {
		return frame, frame.ColumnNames()
	}

	names := strings.Split(spec, ",")
	out := dataset.NewFrame()
	for i, name := range names {
		names[i] = strings.TrimSpace(name)
		col, err := frame.Column(names[i])
		if err != nil {
			log.Fatalf("%v", err)
		}
		if col.Kind == dataset.KindNumeric {
			_ = out.AddNumeric(col.Name, col.Values)
		} else {
			_ = out.AddCategorical(col.Name, col.Labels)
		}
	}
	return out, names
}

func printFrequency(frame *dataset.Frame, column string, counts bool) error {
	table, err := freq.Build(frame, column, counts)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %10s %10s %12s %12s\n", "key", "freq", "rel", "cum", "cum_rel")
	for _, row := range table.Rows {
		fmt.Printf("%-12s %10.0f %10.4f %12.0f %12.4f\n",
			row.Key, row.Frequency, row.Relative, row.Cumulative, row.CumulativeRelative)
	}
	return nil
}

func writePlot(frame *dataset.Frame, column, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return plotting.NewComposer().Compose(frame, column, 0, f)
}
