package stats

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRun is a persisted record of one executed test report, so a
// dataset's analysis history can be reviewed later.
type AnalysisRun struct {
	ID          string         `json:"id" db:"id"`
	DatasetName string         `json:"dataset_name" db:"dataset_name"`
	Test        TestType       `json:"test" db:"test"`
	Label       string         `json:"label" db:"label"`
	Statistic   float64        `json:"statistic" db:"statistic"`
	PValue      float64        `json:"p_value" db:"p_value"`
	Alpha       float64        `json:"alpha" db:"alpha"`
	RejectNull  bool           `json:"reject_null" db:"reject_null"`
	Columns     []ColumnResult `json:"columns,omitempty" db:"-"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// NewAnalysisRun wraps a report as a run record for the named dataset
func NewAnalysisRun(datasetName string, report *TestReport) *AnalysisRun {
	return &AnalysisRun{
		ID:          uuid.NewString(),
		DatasetName: datasetName,
		Test:        report.Test,
		Label:       report.Label,
		Statistic:   report.Statistic,
		PValue:      report.PValue,
		Alpha:       report.Alpha,
		RejectNull:  report.RejectNull,
		Columns:     report.Columns,
		CreatedAt:   time.Now().UTC(),
	}
}
