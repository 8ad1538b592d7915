package artifact

import "fmt"

// LabelEncoder maps category strings to the integer codes assigned during
// training. Classes holds the fitted categories in code order.
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

// TryEncode returns the code for a known category, or false for one the
// encoder was never fitted on. The fallback policy belongs to the caller.
func (e *LabelEncoder) TryEncode(category string) (int, bool) {
	for code, class := range e.Classes {
		if class == category {
			return code, true
		}
	}
	return 0, false
}

// Transform is the strict variant: it fails on an unseen category.
func (e *LabelEncoder) Transform(category string) (int, error) {
	code, ok := e.TryEncode(category)
	if !ok {
		return 0, fmt.Errorf("category %q not seen during training", category)
	}
	return code, nil
}
