package report

import (
	"fmt"
	"io"
	"os"

	"statkit/domain/dataset"
	"statkit/domain/stats"
)

// Reporter runs tests and prints the classical three-line verdict report:
// test name, statistic to 3 decimals, and the accept/reject sentence with
// the p-value to 3 decimals. The strict p > alpha rule decides the branch,
// so p exactly equal to alpha rejects.
type Reporter struct {
	analyzer *Analyzer
	out      io.Writer
}

// NewReporter creates a reporter writing to out; nil means stdout
func NewReporter(analyzer *Analyzer, out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{analyzer: analyzer, out: out}
}

// Print renders one report in the classical format
func (r *Reporter) Print(rep *stats.TestReport) {
	fmt.Fprintln(r.out, rep.Label)

	switch rep.Test {
	case stats.TestShapiroWilk:
		for _, col := range rep.Columns {
			fmt.Fprintf(r.out, "statistic=%.3f\n", col.Statistic)
			if col.Normal {
				fmt.Fprintf(r.out, "%s follows a normal distribution (p-value: %.3f)\n", col.Column, col.PValue)
			} else {
				fmt.Fprintf(r.out, "%s does not follow a normal distribution (p-value: %.3f)\n", col.Column, col.PValue)
			}
		}
	case stats.TestLevene:
		fmt.Fprintf(r.out, "statistic=%.3f\n", rep.Statistic)
		if rep.RejectNull {
			fmt.Fprintf(r.out, "At least one variance differs (p-value: %.3f)\n", rep.PValue)
		} else {
			fmt.Fprintf(r.out, "Variances are equal (p-value: %.3f)\n", rep.PValue)
		}
	default:
		fmt.Fprintf(r.out, "statistic=%.3f\n", rep.Statistic)
		if rep.RejectNull {
			fmt.Fprintf(r.out, "Rejects the null hypothesis (p-value: %.3f)\n", rep.PValue)
		} else {
			fmt.Fprintf(r.out, "Fails to reject the null hypothesis (p-value: %.3f)\n", rep.PValue)
		}
	}
}

func (r *Reporter) runAndPrint(test stats.TestType, frame *dataset.Frame, opts Options) (*stats.TestReport, error) {
	rep, err := r.analyzer.Run(test, frame, opts)
	if err != nil {
		return nil, err
	}
	r.Print(rep)
	return rep, nil
}

// Shapiro reports Shapiro-Wilk normality for every column of the frame
func (r *Reporter) Shapiro(frame *dataset.Frame, opts Options) (*stats.TestReport, error) {
	return r.runAndPrint(stats.TestShapiroWilk, frame, opts)
}

// Levene reports variance homogeneity across the frame's columns
func (r *Reporter) Levene(frame *dataset.Frame, opts Options) (*stats.TestReport, error) {
	return r.runAndPrint(stats.TestLevene, frame, opts)
}

// ShapiroLevene runs both parametric preconditions in sequence, separated
// by a blank line
func (r *Reporter) ShapiroLevene(frame *dataset.Frame, opts Options) ([]*stats.TestReport, error) {
	shapiro, err := r.Shapiro(frame, opts)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(r.out)

	levene, err := r.Levene(frame, opts)
	if err != nil {
		return nil, err
	}
	return []*stats.TestReport{shapiro, levene}, nil
}

// TTestInd reports the independent two-sample t-test
func (r *Reporter) TTestInd(frame *dataset.Frame, opts Options) (*stats.TestReport, error) {
	return r.runAndPrint(stats.TestTTestInd, frame, opts)
}

// TTestRel reports the paired t-test
func (r *Reporter) TTestRel(frame *dataset.Frame, opts Options) (*stats.TestReport, error) {
	return r.runAndPrint(stats.TestTTestRel, frame, opts)
}

// ANOVAOneWay reports the one-way analysis of variance
func (r *Reporter) ANOVAOneWay(frame *dataset.Frame, opts Options) (*stats.TestReport, error) {
	return r.runAndPrint(stats.TestANOVAOneWay, frame, opts)
}

// Wilcoxon reports the Wilcoxon signed-rank test
func (r *Reporter) Wilcoxon(frame *dataset.Frame, opts Options) (*stats.TestReport, error) {
	return r.runAndPrint(stats.TestWilcoxon, frame, opts)
}

// MannWhitneyU reports the Mann-Whitney U test
func (r *Reporter) MannWhitneyU(frame *dataset.Frame, opts Options) (*stats.TestReport, error) {
	return r.runAndPrint(stats.TestMannWhitneyU, frame, opts)
}

// Friedman reports the Friedman chi-square test
func (r *Reporter) Friedman(frame *dataset.Frame, opts Options) (*stats.TestReport, error) {
	return r.runAndPrint(stats.TestFriedman, frame, opts)
}

// KruskalWallis reports the Kruskal-Wallis H test
func (r *Reporter) KruskalWallis(frame *dataset.Frame, opts Options) (*stats.TestReport, error) {
	return r.runAndPrint(stats.TestKruskalWallis, frame, opts)
}
