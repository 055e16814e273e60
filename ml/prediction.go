package ml

import (
	"context"
	"fmt"
)

// PredictionResult is the response payload for a single patient.
type PredictionResult struct {
	ClassID       int                `json:"class_id"`
	ClassName     string             `json:"class_name"`
	Message       string             `json:"message"`
	Probabilities map[string]float64 `json:"probabilities"`
}

// Predictor runs a loaded classifier over feature vectors. It holds no
// mutable state and is safe for concurrent use.
type Predictor struct {
	model Classifier
}

func NewPredictor(model Classifier) *Predictor {
	return &Predictor{model: model}
}

// PredictClass returns the class id chosen by the model.
func (p *Predictor) PredictClass(features FeatureVector) (int, error) {
	if p.model == nil {
		return 0, ErrModelNotLoaded
	}
	return p.model.Predict(features.Row())
}

// PredictProbabilities returns class name -> probability, pairing each
// probability with the model's own class ordering.
func (p *Predictor) PredictProbabilities(features FeatureVector) (map[string]float64, error) {
	if p.model == nil {
		return nil, ErrModelNotLoaded
	}
	proba, err := p.model.PredictProba(features.Row())
	if err != nil {
		return nil, err
	}
	classes := p.model.Classes()
	if len(classes) != len(proba) {
		return nil, fmt.Errorf("model returned %d probabilities for %d classes", len(proba), len(classes))
	}
	out := make(map[string]float64, len(classes))
	for i, id := range classes {
		if !knownClass(id) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownClass, id)
		}
		out[ClassName(id)] = proba[i]
	}
	return out, nil
}

// Predict runs both the classification and the probability pass.
func (p *Predictor) Predict(ctx context.Context, features FeatureVector) (*PredictionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	classID, err := p.PredictClass(features)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	proba, err := p.PredictProbabilities(features)
	if err != nil {
		return nil, fmt.Errorf("estimate probabilities: %w", err)
	}
	return &PredictionResult{
		ClassID:       classID,
		ClassName:     ClassName(classID),
		Message:       ClassMessage(classID),
		Probabilities: proba,
	}, nil
}
