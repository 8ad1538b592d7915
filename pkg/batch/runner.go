package batch

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/common/logger"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/survival"
)

// RowResult is one scored patient row.
type RowResult struct {
	PatientID       int
	PredictedDays   float64
	PredictedMonths float64
	RiskCategory    string
	Recommendation  string
}

// Summary aggregates a finished batch: scored rows, per-row failures and
// the risk distribution.
type Summary struct {
	Results      []RowResult
	Failures     map[int]string
	Distribution map[string]int
}

// Runner scores a tabular patient file row by row. Rows are independent, so
// a bad row is reported and skipped rather than aborting the batch.
type Runner struct {
	pipeline  *survival.Pipeline
	validator *survival.Validator
}

func NewRunner(pipeline *survival.Pipeline, validator *survival.Validator) *Runner {
	return &Runner{pipeline: pipeline, validator: validator}
}

// Run reads patients from inputPath, predicts each row sequentially, and
// writes the per-row results to outputPath. The returned summary carries
// the risk distribution for console reporting.
func (r *Runner) Run(inputPath, outputPath string) (Summary, error) {
	summary := Summary{
		Failures:     make(map[int]string),
		Distribution: make(map[string]int),
	}

	inputs, err := readPatients(inputPath)
	if err != nil {
		return summary, err
	}

	for i, input := range inputs {
		patientID := i + 1

		record, err := r.validator.Validate(input)
		if err != nil {
			summary.Failures[patientID] = err.Error()
			logger.Log.WithFields(map[string]interface{}{
				"patient_id": patientID,
				"error":      err.Error(),
			}).Warn("skipping invalid batch row")
			continue
		}

		result, err := r.pipeline.Predict(record)
		if err != nil {
			summary.Failures[patientID] = err.Error()
			logger.Log.WithError(err).WithField("patient_id", patientID).Warn("skipping failed batch row")
			continue
		}

		summary.Results = append(summary.Results, RowResult{
			PatientID:       patientID,
			PredictedDays:   result.PredictedDays,
			PredictedMonths: result.PredictedMonths,
			RiskCategory:    result.RiskCategory,
			Recommendation:  result.Recommendation,
		})
		summary.Distribution[result.RiskCategory]++
	}

	if outputPath != "" {
		if err := writeResults(outputPath, summary.Results); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

func readPatients(path string) ([]survival.PatientInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("input file has no patient rows")
	}

	header := make(map[string]int, len(rows[0]))
	for idx, name := range rows[0] {
		header[strings.TrimSpace(name)] = idx
	}

	inputs := make([]survival.PatientInput, 0, len(rows)-1)
	for _, row := range rows[1:] {
		input, err := parseRow(header, row)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func parseRow(header map[string]int, row []string) (survival.PatientInput, error) {
	var input survival.PatientInput

	cell := func(column string) string {
		idx, ok := header[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	age, err := strconv.Atoi(cell(survival.ColAge))
	if err != nil {
		return input, fmt.Errorf("parse %s: %w", survival.ColAge, err)
	}
	input.Age = age

	for _, p := range []struct {
		column string
		target *float64
	}{
		{survival.ColProtein1, &input.Protein1},
		{survival.ColProtein2, &input.Protein2},
		{survival.ColProtein3, &input.Protein3},
		{survival.ColProtein4, &input.Protein4},
	} {
		value, err := strconv.ParseFloat(cell(p.column), 64)
		if err != nil {
			return input, fmt.Errorf("parse %s: %w", p.column, err)
		}
		*p.target = value
	}

	input.Gender = cell(survival.ColGender)
	input.TumourStage = cell(survival.ColTumourStage)
	input.Histology = cell(survival.ColHistology)
	input.ERStatus = cell(survival.ColERStatus)
	input.PRStatus = cell(survival.ColPRStatus)
	input.HER2Status = cell(survival.ColHER2Status)
	input.SurgeryType = cell(survival.ColSurgeryType)

	return input, nil
}

func writeResults(path string, results []RowResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Patient_ID", "Predicted_Days", "Predicted_Months", "Risk_Category", "Recommendation"}); err != nil {
		return err
	}
	for _, result := range results {
		row := []string{
			strconv.Itoa(result.PatientID),
			strconv.FormatFloat(result.PredictedDays, 'f', 0, 64),
			strconv.FormatFloat(result.PredictedMonths, 'f', 1, 64),
			result.RiskCategory,
			result.Recommendation,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return writer.Error()
}
