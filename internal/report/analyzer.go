// Package report turns frames and test selections into structured test
// reports, layering the classical printed verdicts on top.
package report

import (
	"math"

	"statkit/domain/dataset"
	"statkit/domain/stats"
	"statkit/internal/errors"
)

// TestEngine is the set of statistical routines the analyzer dispatches
// to. Satisfied by adapters/stats/engine.Engine; narrow enough to swap for
// a stub in tests.
type TestEngine interface {
	ShapiroWilk(sample []float64) (float64, float64, error)
	Levene(center stats.Center, samples ...[]float64) (float64, float64, error)
	TTestInd(x, y []float64, equalVar bool, alternative stats.Alternative) (float64, float64, error)
	TTestRel(x, y []float64, alternative stats.Alternative) (float64, float64, error)
	ANOVAOneWay(samples ...[]float64) (float64, float64, error)
	Wilcoxon(x, y []float64, alternative stats.Alternative) (float64, float64, error)
	MannWhitneyU(x, y []float64, alternative stats.Alternative) (float64, float64, error)
	Friedman(samples ...[]float64) (float64, float64, error)
	KruskalWallis(samples ...[]float64) (float64, float64, error)
}

// Options carries the caller-tunable test parameters. Zero values fall
// back to the classical defaults via normalize.
type Options struct {
	Alpha       float64           `json:"alpha"`
	Alternative stats.Alternative `json:"alternative"`
	Center      stats.Center      `json:"center"`
	EqualVar    *bool             `json:"equal_var,omitempty"` // nil means true
}

// DefaultOptions returns the classical defaults: alpha 0.05, two-sided,
// mean centering, equal variances assumed.
func DefaultOptions() Options {
	return Options{Alpha: stats.DefaultAlpha, Alternative: stats.TwoSided, Center: stats.CenterMean}
}

func (o Options) normalize() Options {
	if o.Alpha == 0 {
		o.Alpha = stats.DefaultAlpha
	}
	if o.Alternative == "" {
		o.Alternative = stats.TwoSided
	}
	if o.Center == "" {
		o.Center = stats.CenterMean
	}
	return o
}

func (o Options) equalVar() bool {
	if o.EqualVar == nil {
		return true
	}
	return *o.EqualVar
}

// pairing selects the missing-value omission policy for a test
type pairing int

const (
	independent pairing = iota // NaNs dropped per column
	rowAligned                 // a NaN anywhere drops the whole row
)

// testSpec describes one dispatchable test: its label, its column-count
// contract, its omission policy, and the runner that invokes the engine.
type testSpec struct {
	label      string
	minColumns int
	maxColumns int // 0 means unbounded
	pairing    pairing
	run        func(e TestEngine, samples [][]float64, opts Options) (statistic, pValue float64, err error)
}

// specs is the dispatch table; one entry per supported test
var specs = map[stats.TestType]testSpec{
	stats.TestLevene: {
		label:      "Levene test",
		minColumns: 2,
		run: func(e TestEngine, s [][]float64, o Options) (float64, float64, error) {
			return e.Levene(o.Center, s...)
		},
	},
	stats.TestTTestInd: {
		label:      "Student's t-test",
		minColumns: 2,
		maxColumns: 2,
		run: func(e TestEngine, s [][]float64, o Options) (float64, float64, error) {
			return e.TTestInd(s[0], s[1], o.equalVar(), o.Alternative)
		},
	},
	stats.TestTTestRel: {
		label:      "Student's t-test",
		minColumns: 2,
		maxColumns: 2,
		pairing:    rowAligned,
		run: func(e TestEngine, s [][]float64, o Options) (float64, float64, error) {
			return e.TTestRel(s[0], s[1], o.Alternative)
		},
	},
	stats.TestANOVAOneWay: {
		label:      "One-way ANOVA test",
		minColumns: 2,
		run: func(e TestEngine, s [][]float64, o Options) (float64, float64, error) {
			return e.ANOVAOneWay(s...)
		},
	},
	stats.TestWilcoxon: {
		label:      "Wilcoxon test",
		minColumns: 2,
		maxColumns: 2,
		pairing:    rowAligned,
		run: func(e TestEngine, s [][]float64, o Options) (float64, float64, error) {
			return e.Wilcoxon(s[0], s[1], o.Alternative)
		},
	},
	stats.TestMannWhitneyU: {
		label:      "Mann-Whitney test",
		minColumns: 2,
		maxColumns: 2,
		run: func(e TestEngine, s [][]float64, o Options) (float64, float64, error) {
			return e.MannWhitneyU(s[0], s[1], o.Alternative)
		},
	},
	stats.TestFriedman: {
		label:      "Friedman test",
		minColumns: 3,
		pairing:    rowAligned,
		run: func(e TestEngine, s [][]float64, o Options) (float64, float64, error) {
			return e.Friedman(s...)
		},
	},
	stats.TestKruskalWallis: {
		label:      "Kruskal-Wallis test",
		minColumns: 2,
		run: func(e TestEngine, s [][]float64, o Options) (float64, float64, error) {
			return e.KruskalWallis(s...)
		},
	},
}

// ShapiroLabel is the printed name of the normality check
const ShapiroLabel = "Shapiro-Wilk test"

// Analyzer dispatches tests over a frame's numeric columns
type Analyzer struct {
	engine TestEngine
}

// NewAnalyzer creates an analyzer backed by the given engine
func NewAnalyzer(engine TestEngine) *Analyzer {
	return &Analyzer{engine: engine}
}

// Run executes one test over the frame's numeric columns as positional
// samples, applying the test's missing-value omission policy, and returns
// the structured report. Errors from the engine propagate untranslated.
func (a *Analyzer) Run(test stats.TestType, frame *dataset.Frame, opts Options) (*stats.TestReport, error) {
	opts = opts.normalize()

	if test == stats.TestShapiroWilk {
		return a.runShapiro(frame, opts)
	}

	spec, ok := specs[test]
	if !ok {
		return nil, errors.InvalidInput("unknown test type: " + string(test))
	}

	samples := frame.Samples()
	if len(samples) < spec.minColumns {
		return nil, errors.InvalidInput(spec.label + " needs more columns than the frame provides")
	}
	if spec.maxColumns > 0 && len(samples) > spec.maxColumns {
		return nil, errors.InvalidInput(spec.label + " takes exactly 2 columns")
	}

	var err error
	switch spec.pairing {
	case rowAligned:
		samples, err = dataset.OmitIncompleteRows(samples...)
		if err != nil {
			return nil, err
		}
	default:
		for i, s := range samples {
			samples[i] = dataset.OmitNaN(s)
		}
	}

	statistic, pValue, err := spec.run(a.engine, samples, opts)
	if err != nil {
		return nil, err
	}
	return stats.NewTestReport(test, spec.label, statistic, pValue, opts.Alpha)
}

// runShapiro evaluates normality per column. The report-level statistic
// and p-value come from the least-normal column (smallest p), and the
// null is rejected if any column rejects.
func (a *Analyzer) runShapiro(frame *dataset.Frame, opts Options) (*stats.TestReport, error) {
	names := frame.ColumnNames()
	if len(names) < 1 {
		return nil, errors.InvalidInput("shapiro-wilk needs at least one column")
	}

	columns := make([]stats.ColumnResult, 0, len(names))
	worstStat, worstP := math.NaN(), math.Inf(1)
	for _, name := range names {
		values, err := frame.Numeric(name)
		if err != nil {
			return nil, err
		}
		statistic, pValue, err := a.engine.ShapiroWilk(dataset.OmitNaN(values))
		if err != nil {
			return nil, err
		}

		columns = append(columns, stats.ColumnResult{
			Column:    name,
			Statistic: statistic,
			PValue:    pValue,
			Normal:    pValue > opts.Alpha,
		})
		if pValue < worstP {
			worstStat, worstP = statistic, pValue
		}
	}

	rep, err := stats.NewTestReport(stats.TestShapiroWilk, ShapiroLabel, worstStat, worstP, opts.Alpha)
	if err != nil {
		return nil, err
	}
	rep.Columns = columns
	return rep, nil
}
