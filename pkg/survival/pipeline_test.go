package survival

import (
	"testing"

	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/artifact"
)

// testBundle builds a bundle whose prediction equals bias + 10*scaled age,
// with an identity scaler, so outcomes are easy to place in a tier.
func testBundle(bias float64) *artifact.Bundle {
	features := testFeatures()
	coefficients := make([]float64, len(features))
	coefficients[0] = 10

	mean := make([]float64, len(features))
	scale := make([]float64, len(features))
	for i := range scale {
		scale[i] = 1
	}

	return &artifact.Bundle{
		Model: &artifact.LinearModel{
			ModelName: "test-regressor",
			Weights:   artifact.Weights{Bias: bias, Coefficients: coefficients},
		},
		Scaler:   &artifact.StandardScaler{Mean: mean, Scale: scale},
		Encoders: testEncoders(),
		Metadata: &artifact.Metadata{ModelName: "test-regressor", Features: features},
	}
}

func TestPredictEndToEnd(t *testing.T) {
	// bias -500 + 10*68 = 180 days exactly: inclusive lower bound of the
	// ELEVATED tier.
	pipeline := NewPipeline(testBundle(-500), DefaultPolicy())

	result, err := pipeline.Predict(testRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PredictedDays != 180 {
		t.Fatalf("expected 180 days, got %v", result.PredictedDays)
	}
	if result.RiskCategory != "ELEVATED RISK" {
		t.Fatalf("expected ELEVATED RISK, got %s", result.RiskCategory)
	}
	if result.RiskIndicator != "orange" {
		t.Fatalf("expected orange, got %s", result.RiskIndicator)
	}
	if result.PredictedMonths != 6.0 {
		t.Fatalf("expected 6.0 months, got %v", result.PredictedMonths)
	}
	if result.PredictedYears != 0.49 {
		t.Fatalf("expected 0.49 years, got %v", result.PredictedYears)
	}
}

func TestPredictRoundingNeverChangesTier(t *testing.T) {
	// bias -500.4 + 10*68 = 179.6 raw days: HIGH RISK even though the
	// displayed value rounds up to 180.
	pipeline := NewPipeline(testBundle(-500.4), DefaultPolicy())

	result, err := pipeline.Predict(testRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PredictedDays != 180 {
		t.Fatalf("expected displayed 180 days, got %v", result.PredictedDays)
	}
	if result.RiskCategory != "HIGH RISK" {
		t.Fatalf("expected HIGH RISK from the unrounded estimate, got %s", result.RiskCategory)
	}
}

func TestPredictIsIdempotent(t *testing.T) {
	pipeline := NewPipeline(testBundle(100), DefaultPolicy())
	rec := testRecord()

	first, err := pipeline.Predict(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := pipeline.Predict(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestPredictSurvivesUnknownCategoryAndMissingFeature(t *testing.T) {
	bundle := testBundle(200)
	bundle.Metadata.Features = append(bundle.Metadata.Features, "Tumour_Size")
	bundle.Model.Weights.Coefficients = append(bundle.Model.Weights.Coefficients, 1.0)
	bundle.Scaler.Mean = append(bundle.Scaler.Mean, 0)
	bundle.Scaler.Scale = append(bundle.Scaler.Scale, 1)

	pipeline := NewPipeline(bundle, DefaultPolicy())

	rec := testRecord()
	rec.Histology = "Never Seen Before"

	if _, err := pipeline.Predict(rec); err != nil {
		t.Fatalf("pipeline should degrade gracefully, got %v", err)
	}
}

func TestPredictWrapsScalerFailure(t *testing.T) {
	bundle := testBundle(100)
	bundle.Scaler = &artifact.StandardScaler{Mean: []float64{0}, Scale: []float64{1}}

	pipeline := NewPipeline(bundle, DefaultPolicy())

	_, err := pipeline.Predict(testRecord())
	if err == nil {
		t.Fatal("expected scaler mismatch to fail")
	}
	if !IsPredictionFailure(err) {
		t.Fatalf("expected PredictionFailure, got %v", err)
	}
	if IsValidationError(err) {
		t.Fatal("prediction failure must not look like a validation error")
	}
}

func TestPredictWrapsModelFailure(t *testing.T) {
	bundle := testBundle(100)
	bundle.Model.Weights.Coefficients = []float64{1, 2}

	pipeline := NewPipeline(bundle, DefaultPolicy())

	_, err := pipeline.Predict(testRecord())
	if !IsPredictionFailure(err) {
		t.Fatalf("expected PredictionFailure, got %v", err)
	}
}

func TestValidatedGenderFlowsThroughPipeline(t *testing.T) {
	pipeline := NewPipeline(testBundle(1000), DefaultPolicy())

	input := validInput()
	input.Gender = "male"
	rec, err := NewValidator().Validate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Gender != "MALE" {
		t.Fatalf("expected MALE, got %q", rec.Gender)
	}
	if _, err := pipeline.Predict(rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
