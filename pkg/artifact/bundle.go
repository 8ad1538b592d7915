package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names as written by the training pipeline.
const (
	ModelFile    = "best_breast_cancer_model.json"
	ScalerFile   = "scaler.json"
	EncodersFile = "label_encoders.json"
	MetadataFile = "model_metadata.json"
)

// ErrMissingArtifact marks a bundle that cannot be loaded. The process must
// not start serving without a complete bundle.
var ErrMissingArtifact = errors.New("missing model artifact")

// Metadata describes the feature schema the model was trained on and its
// reported test-set performance.
type Metadata struct {
	ModelName string   `json:"model_name"`
	Features  []string `json:"features"`
	TestR2    float64  `json:"test_r2"`
	TestRMSE  float64  `json:"test_rmse"`
}

// Bundle is the full set of trained artifacts: regressor, scaler, per-column
// label encoders and metadata. Loaded once at startup and read-only after
// that, so it is safe to share across concurrent requests.
type Bundle struct {
	Model    *LinearModel
	Scaler   *StandardScaler
	Encoders map[string]*LabelEncoder
	Metadata *Metadata
}

// Load reads every artifact from dir. Any missing or unreadable file fails
// the whole load with ErrMissingArtifact in the chain.
func Load(dir string) (*Bundle, error) {
	var model LinearModel
	if err := loadJSON(dir, ModelFile, &model); err != nil {
		return nil, err
	}

	var scaler StandardScaler
	if err := loadJSON(dir, ScalerFile, &scaler); err != nil {
		return nil, err
	}

	encoders := make(map[string]*LabelEncoder)
	if err := loadJSON(dir, EncodersFile, &encoders); err != nil {
		return nil, err
	}

	var meta Metadata
	if err := loadJSON(dir, MetadataFile, &meta); err != nil {
		return nil, err
	}
	if len(meta.Features) == 0 {
		return nil, fmt.Errorf("%w: %s lists no features", ErrMissingArtifact, MetadataFile)
	}
	if len(model.Weights.Coefficients) != len(meta.Features) {
		return nil, fmt.Errorf("%w: model has %d coefficients for %d features",
			ErrMissingArtifact, len(model.Weights.Coefficients), len(meta.Features))
	}

	return &Bundle{
		Model:    &model,
		Scaler:   &scaler,
		Encoders: encoders,
		Metadata: &meta,
	}, nil
}

func loadJSON(dir, name string, out interface{}) error {
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMissingArtifact, name, err)
	}
	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMissingArtifact, name, err)
	}
	return nil
}
