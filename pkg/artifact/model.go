package artifact

import "fmt"

// Weights are the fitted parameters of the linear regressor.
type Weights struct {
	Bias         float64   `json:"bias"`
	Coefficients []float64 `json:"coefficients"`
}

// LinearModel is the trained survival regressor. The training process fits
// it elsewhere; this side only evaluates it.
type LinearModel struct {
	ModelName string  `json:"model_name"`
	Algorithm string  `json:"algorithm"`
	Weights   Weights `json:"weights"`
}

// Predict evaluates the regressor on a single scaled feature vector and
// returns the raw survival estimate in days.
func (m *LinearModel) Predict(sample []float64) (float64, error) {
	if len(sample) != len(m.Weights.Coefficients) {
		return 0, fmt.Errorf("model expects %d features, got %d", len(m.Weights.Coefficients), len(sample))
	}
	sum := m.Weights.Bias
	for i, coeff := range m.Weights.Coefficients {
		sum += coeff * sample[i]
	}
	return sum, nil
}
