package artifact

import "fmt"

// StandardScaler centers and scales a feature vector with per-feature mean
// and scale fitted during training.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform applies (x - mean) / scale per feature. A zero scale entry
// passes the centered value through unscaled.
func (s *StandardScaler) Transform(sample []float64) ([]float64, error) {
	if len(sample) != len(s.Mean) || len(s.Mean) != len(s.Scale) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(sample))
	}
	scaled := make([]float64, len(sample))
	for i, value := range sample {
		centered := value - s.Mean[i]
		if s.Scale[i] == 0 {
			scaled[i] = centered
			continue
		}
		scaled[i] = centered / s.Scale[i]
	}
	return scaled, nil
}
