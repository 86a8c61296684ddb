package stats

import (
	"fmt"
	"math"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// TestType identifies the statistical test performed
type TestType string

const (
	TestShapiroWilk   TestType = "shapiro_wilk"   // Shapiro-Wilk normality test
	TestLevene        TestType = "levene"         // Levene variance-homogeneity test
	TestTTestInd      TestType = "ttest_ind"      // Independent two-sample t-test
	TestTTestRel      TestType = "ttest_rel"      // Paired t-test
	TestANOVAOneWay   TestType = "anova_one_way"  // One-way analysis of variance
	TestWilcoxon      TestType = "wilcoxon"       // Wilcoxon signed-rank test
	TestMannWhitneyU  TestType = "mann_whitney_u" // Mann-Whitney U test
	TestFriedman      TestType = "friedman"       // Friedman chi-square test
	TestKruskalWallis TestType = "kruskal_wallis" // Kruskal-Wallis H test
)

// Alternative selects the alternative hypothesis for directional tests
type Alternative string

const (
	TwoSided Alternative = "two-sided"
	Less     Alternative = "less"
	Greater  Alternative = "greater"
)

// Valid reports whether the alternative is one of the supported selectors
func (a Alternative) Valid() bool {
	switch a {
	case TwoSided, Less, Greater:
		return true
	}
	return false
}

// Center selects the centering statistic for the Levene test
type Center string

const (
	CenterMean    Center = "mean"
	CenterMedian  Center = "median"
	CenterTrimmed Center = "trimmed"
)

// Valid reports whether the center is one of the supported selectors
func (c Center) Valid() bool {
	switch c {
	case CenterMean, CenterMedian, CenterTrimmed:
		return true
	}
	return false
}

// DefaultAlpha is the conventional significance threshold used when the
// caller does not supply one.
const DefaultAlpha = 0.05

// ============================================================================
// DOMAIN ARTIFACTS
// ============================================================================

// ColumnResult carries a per-column statistic and p-value. Used by tests
// that evaluate each column independently (Shapiro-Wilk).
type ColumnResult struct {
	Column    string  `json:"column"`
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	Normal    bool    `json:"normal"` // p > alpha under the strict-greater rule
}

// TestReport is the structured outcome of one hypothesis test: the computed
// statistic, its p-value, the threshold it was judged against, and the
// verdict. Presentation (printing, persistence) is layered on top.
type TestReport struct {
	Test       TestType       `json:"test"`
	Label      string         `json:"label"` // human-readable test name
	Statistic  float64        `json:"statistic"`
	PValue     float64        `json:"p_value"`
	Alpha      float64        `json:"alpha"`
	RejectNull bool           `json:"reject_null"`
	Columns    []ColumnResult `json:"columns,omitempty"` // per-column results (Shapiro-Wilk)
}

// NewTestReport builds a report, deriving the verdict from the strict
// p > alpha rule: the null is rejected unless p exceeds alpha, so a
// p-value exactly equal to alpha rejects.
func NewTestReport(test TestType, label string, statistic, pValue, alpha float64) (*TestReport, error) {
	if err := validateReport(pValue, alpha); err != nil {
		return nil, err
	}

	return &TestReport{
		Test:       test,
		Label:      label,
		Statistic:  statistic,
		PValue:     pValue,
		Alpha:      alpha,
		RejectNull: !(pValue > alpha),
	}, nil
}

// validateReport checks invariants shared by all reports
func validateReport(pValue, alpha float64) error {
	if !math.IsNaN(pValue) && (pValue < 0.0 || pValue > 1.0) {
		return fmt.Errorf("p-value must be in [0.0, 1.0], got %f", pValue)
	}
	if alpha <= 0.0 || alpha >= 1.0 {
		return fmt.Errorf("alpha must be in (0.0, 1.0), got %f", alpha)
	}
	return nil
}
