package ml

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePatient = FeatureVector{
	Gender: 0,
	AGE:    50,
	Urea:   4.7,
	Cr:     46,
	HbA1c:  4.9,
	Chol:   4.2,
	TG:     0.9,
	HDL:    2.4,
	LDL:    1.4,
	VLDL:   0.5,
	BMI:    24,
}

type stubModel struct {
	classes []int
	label   int
	proba   []float64
	err     error

	predictCalls int
	probaCalls   int
}

func (s *stubModel) Classes() []int { return s.classes }

func (s *stubModel) Predict(features []float64) (int, error) {
	s.predictCalls++
	return s.label, s.err
}

func (s *stubModel) PredictProba(features []float64) ([]float64, error) {
	s.probaCalls++
	return s.proba, s.err
}

func loadShippedPredictor(t *testing.T) *Predictor {
	t.Helper()
	model, err := LoadModel(ModelTypeRandomForest, shippedModel)
	require.NoError(t, err)
	return NewPredictor(model)
}

func TestPredictClassReferencePatient(t *testing.T) {
	predictor := loadShippedPredictor(t)
	label, err := predictor.PredictClass(referencePatient)
	require.NoError(t, err)
	assert.Equal(t, 0, label)
}

func TestPredictReferencePatient(t *testing.T) {
	predictor := loadShippedPredictor(t)
	result, err := predictor.Predict(context.Background(), referencePatient)
	require.NoError(t, err)

	assert.Equal(t, 0, result.ClassID)
	assert.Equal(t, "Non-Diabetic", result.ClassName)
	assert.Equal(t, "Non-diabetic. No worries :)", result.Message)
	assert.Greater(t, result.Probabilities["Non-Diabetic"], 0.5)
}

func TestPredictInvariantsAcrossInputs(t *testing.T) {
	predictor := loadShippedPredictor(t)

	var patients []FeatureVector
	for _, hba1c := range []float64{4.0, 5.65, 5.8, 6.2, 6.4, 7.5, 12} {
		for _, bmi := range []float64{19, 25.5, 27, 35} {
			for _, age := range []int{25, 46, 70} {
				for _, tg := range []float64{0.6, 2.5} {
					patient := referencePatient
					patient.HbA1c = hba1c
					patient.BMI = bmi
					patient.AGE = age
					patient.TG = tg
					patients = append(patients, patient)
				}
			}
		}
	}

	seen := make(map[int]bool)
	for _, patient := range patients {
		result, err := predictor.Predict(context.Background(), patient)
		require.NoError(t, err)
		seen[result.ClassID] = true

		require.Len(t, result.Probabilities, 3)
		sum := 0.0
		bestName, bestProb := "", -1.0
		for _, id := range ClassIDs() {
			p, ok := result.Probabilities[ClassName(id)]
			require.True(t, ok, "missing %s", ClassName(id))
			sum += p
			if p > bestProb {
				bestName, bestProb = ClassName(id), p
			}
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
		assert.Equal(t, bestName, result.ClassName, "patient %+v", patient)
	}
	assert.Len(t, seen, 3)
}

func TestPredictCallsBothPasses(t *testing.T) {
	stub := &stubModel{classes: []int{0, 1, 2}, label: 1, proba: []float64{0.1, 0.7, 0.2}}
	result, err := NewPredictor(stub).Predict(context.Background(), referencePatient)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.predictCalls)
	assert.Equal(t, 1, stub.probaCalls)
	assert.Equal(t, "Diabetic", result.ClassName)
	assert.Equal(t, "Diabetic.", result.Message)
}

func TestPredictZipsModelClassOrder(t *testing.T) {
	stub := &stubModel{classes: []int{2, 0, 1}, label: 2, proba: []float64{0.6, 0.3, 0.1}}
	result, err := NewPredictor(stub).Predict(context.Background(), referencePatient)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"Prediabetic":  0.6,
		"Non-Diabetic": 0.3,
		"Diabetic":     0.1,
	}, result.Probabilities)
	assert.Equal(t, "Prediabetic", result.ClassName)
}

func TestPredictUnknownClassID(t *testing.T) {
	stub := &stubModel{classes: []int{0, 1, 2}, label: 7, proba: []float64{0.2, 0.3, 0.5}}
	result, err := NewPredictor(stub).Predict(context.Background(), referencePatient)
	require.NoError(t, err)
	assert.Equal(t, 7, result.ClassID)
	assert.Equal(t, UnknownLabel, result.ClassName)
	assert.Equal(t, UnknownLabel, result.Message)
}

func TestPredictProbabilitiesUnknownModelClass(t *testing.T) {
	stub := &stubModel{classes: []int{0, 1, 9}, proba: []float64{0.2, 0.3, 0.5}}
	_, err := NewPredictor(stub).PredictProbabilities(referencePatient)
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestPredictProbabilitiesLengthMismatch(t *testing.T) {
	stub := &stubModel{classes: []int{0, 1, 2}, proba: []float64{1}}
	_, err := NewPredictor(stub).PredictProbabilities(referencePatient)
	assert.Error(t, err)
}

func TestPredictModelError(t *testing.T) {
	boom := errors.New("boom")
	stub := &stubModel{classes: []int{0, 1, 2}, err: boom}
	_, err := NewPredictor(stub).Predict(context.Background(), referencePatient)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, stub.probaCalls)
}

func TestPredictNoModel(t *testing.T) {
	_, err := NewPredictor(nil).Predict(context.Background(), referencePatient)
	assert.ErrorIs(t, err, ErrModelNotLoaded)
}

func TestPredictCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stub := &stubModel{classes: []int{0, 1, 2}}
	_, err := NewPredictor(stub).Predict(ctx, referencePatient)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, stub.predictCalls)
}
