package survival

import (
	"fmt"

	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/artifact"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/common/logger"
)

// alignFeatures maps a normalized record onto the exact ordered vector the
// model was trained on. Schema features the record lacks default to 0, and
// categories the encoder never saw fall back to code 0 (the encoder's first
// known class). Neither case is an error: the vector degrades gracefully
// instead of aborting the pipeline. Columns outside the schema are dropped.
func alignFeatures(rec PatientRecord, meta *artifact.Metadata, encoders map[string]*artifact.LabelEncoder) []float64 {
	values := rec.columns()

	vector := make([]float64, len(meta.Features))
	for i, name := range meta.Features {
		value, ok := values[name]
		if !ok {
			logger.Log.WithField("feature", name).Debug("feature missing from record, defaulting to 0")
			continue
		}

		if encoder, fitted := encoders[name]; fitted {
			category := fmt.Sprintf("%v", value)
			code, known := encoder.TryEncode(category)
			if !known {
				logger.Log.WithFields(map[string]interface{}{
					"column":   name,
					"category": category,
				}).Debug("unseen category, falling back to code 0")
				code = 0
			}
			vector[i] = float64(code)
			continue
		}

		switch v := value.(type) {
		case float64:
			vector[i] = v
		case int:
			vector[i] = float64(v)
		default:
			// A categorical column without a fitted encoder carries no
			// usable signal; keep the neutral default.
			logger.Log.WithField("column", name).Debug("no encoder for non-numeric column, defaulting to 0")
		}
	}

	return vector
}
