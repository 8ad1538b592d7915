package survival

import (
	"math"

	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/artifact"
)

// PredictionResult is the structured outcome of one prediction.
type PredictionResult struct {
	PredictedDays   float64 `json:"predicted_days"`
	PredictedMonths float64 `json:"predicted_months"`
	PredictedYears  float64 `json:"predicted_years"`
	RiskCategory    string  `json:"risk_category"`
	RiskIndicator   string  `json:"risk_indicator"`
	Recommendation  string  `json:"recommendation"`
}

// Pipeline runs the full prediction flow against a loaded artifact bundle:
// feature alignment, scaling, model invocation, risk classification. The
// bundle is read-only, so one Pipeline serves any number of concurrent
// requests.
type Pipeline struct {
	bundle *artifact.Bundle
	policy Policy
}

func NewPipeline(bundle *artifact.Bundle, policy Policy) *Pipeline {
	return &Pipeline{bundle: bundle, policy: policy}
}

// Bundle exposes the loaded artifacts for health reporting.
func (p *Pipeline) Bundle() *artifact.Bundle {
	return p.bundle
}

// Predict produces a complete PredictionResult for a validated record, or a
// PredictionFailure naming the stage that failed. There are no partial
// results.
func (p *Pipeline) Predict(rec PatientRecord) (PredictionResult, error) {
	vector := alignFeatures(rec, p.bundle.Metadata, p.bundle.Encoders)

	scaled, err := p.bundle.Scaler.Transform(vector)
	if err != nil {
		return PredictionResult{}, PredictionFailure{Stage: "scaling", cause: err}
	}

	days, err := p.bundle.Model.Predict(scaled)
	if err != nil {
		return PredictionResult{}, PredictionFailure{Stage: "model invocation", cause: err}
	}

	// Classification uses the raw estimate; rounding is display-only.
	tier := p.policy.Classify(days)

	return PredictionResult{
		PredictedDays:   roundTo(days, 0),
		PredictedMonths: roundTo(days/30, 1),
		PredictedYears:  roundTo(days/365, 2),
		RiskCategory:    tier.Category,
		RiskIndicator:   tier.Indicator,
		Recommendation:  tier.Recommendation,
	}, nil
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
