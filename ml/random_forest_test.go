package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomForestAveragesTrees(t *testing.T) {
	classes := []int{0, 1, 2}
	first, err := NewDecisionTree(classes, hba1cStump([]float64{1, 0, 0}, []float64{0, 1, 0}))
	require.NoError(t, err)
	second, err := NewDecisionTree(classes, hba1cStump([]float64{0, 0, 1}, []float64{0, 1, 0}))
	require.NoError(t, err)
	third, err := NewDecisionTree(classes, hba1cStump([]float64{2, 1, 1}, []float64{0, 0, 4}))
	require.NoError(t, err)

	forest, err := NewRandomForest(classes, []*DecisionTree{first, second, third})
	require.NoError(t, err)

	proba, err := forest.PredictProba(FeatureVector{HbA1c: 5}.Row())
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 1.0 / 12, 0.5 - 1.0/12}, proba, 1e-9)

	label, err := forest.Predict(FeatureVector{HbA1c: 5}.Row())
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	label, err = forest.Predict(FeatureVector{HbA1c: 8}.Row())
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestRandomForestRequiresTrees(t *testing.T) {
	_, err := NewRandomForest([]int{0, 1, 2}, nil)
	assert.Error(t, err)
}
