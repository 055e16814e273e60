package ml

import "errors"

var (
	ErrModelNotLoaded   = errors.New("model not loaded")
	ErrUnsupportedModel = errors.New("unsupported model type")
	ErrFeatureMismatch  = errors.New("feature names do not match model")
	ErrUnknownClass     = errors.New("class id not in label table")
)

// Classifier is a loaded model artifact. Probabilities returned by
// PredictProba are aligned with Classes(), which is the artifact's own
// ordering and may differ from the label table.
type Classifier interface {
	Classes() []int
	Predict(features []float64) (int, error)
	PredictProba(features []float64) ([]float64, error)
}
