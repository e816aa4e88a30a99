// Package report renders accuracy comparisons between model variants.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cheynewallace/tabby"

	"github.com/cognicore/disambig/internal/internalerr"
	"github.com/cognicore/disambig/pkg/disambig/eval"
)

// BaselineVariant is the variant name reductions are measured against.
const BaselineVariant = "baseline"

// Row is one evaluated variant for one confusable set.
type Row struct {
	Set            string  `json:"set"`
	Variant        string  `json:"variant"`
	Correct        int     `json:"correct"`
	Total          int     `json:"total"`
	Accuracy       float64 `json:"accuracy"`
	ErrorReduction float64 `json:"error_reduction"`
	RunID          string  `json:"run_id,omitempty"`
}

// Report collects rows in the order they were added.
type Report struct {
	TrainSize int   `json:"train_size"`
	TestSize  int   `json:"test_size"`
	Rows      []Row `json:"rows"`
}

// New creates an empty report for a train/test split.
func New(trainSize, testSize int) *Report {
	return &Report{TrainSize: trainSize, TestSize: testSize}
}

// Add appends the result of one variant and returns a pointer to the stored row.
func (r *Report) Add(set, variant string, res eval.Result) *Row {
	r.Rows = append(r.Rows, Row{
		Set:      set,
		Variant:  variant,
		Correct:  res.Correct,
		Total:    res.Total,
		Accuracy: res.Accuracy,
	})
	return &r.Rows[len(r.Rows)-1]
}

// Baseline returns the baseline row of a set.
func (r *Report) Baseline(set string) (Row, bool) {
	for _, row := range r.Rows {
		if row.Set == set && row.Variant == BaselineVariant {
			return row, true
		}
	}
	return Row{}, false
}

// ComputeReductions fills ErrorReduction of every row from its set's baseline.
// Rows of sets without a baseline keep 0.
func (r *Report) ComputeReductions() {
	for i := range r.Rows {
		base, ok := r.Baseline(r.Rows[i].Set)
		if !ok {
			continue
		}
		r.Rows[i].ErrorReduction = eval.ErrorReduction(base.Accuracy, r.Rows[i].Accuracy)
	}
}

// Best returns the most accurate row of a set. Earlier rows win ties.
func (r *Report) Best(set string) (Row, bool) {
	var (
		best  Row
		found bool
	)
	for _, row := range r.Rows {
		if row.Set != set {
			continue
		}
		if !found || row.Accuracy > best.Accuracy {
			best, found = row, true
		}
	}
	return best, found
}

// WriteTable prints an aligned table.
func (r *Report) WriteTable(w io.Writer) {
	table := tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 2, ' ', 0))
	table.AddHeader("SET", "VARIANT", "CORRECT", "ACCURACY", "ERR. REDUCTION")
	for _, row := range r.Rows {
		table.AddLine(
			row.Set,
			row.Variant,
			fmt.Sprintf("%d/%d", row.Correct, row.Total),
			fmt.Sprintf("%.2f%%", row.Accuracy),
			fmt.Sprintf("%+.1f%%", row.ErrorReduction),
		)
	}
	table.Print()
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Write renders the report in the named format: "table" or "json".
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case "", "table":
		r.WriteTable(w)
		return nil
	case "json":
		return r.WriteJSON(w)
	}
	return fmt.Errorf("unknown report format %q: %w", format, internalerr.ErrInvalidInput)
}
