package ml

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shippedModel = "../models/diabetes_model.json"

func writeArtifact(t *testing.T, artifact Artifact) string {
	t.Helper()
	payload, err := json.Marshal(artifact)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, payload, 0o600))
	return path
}

func stumpArtifact(modelType string, classes []int) Artifact {
	return Artifact{
		ModelType:    modelType,
		FeatureNames: FeatureNames(),
		Classes:      classes,
		Estimators: []Estimator{
			{Nodes: hba1cStump([]float64{8, 1, 1}, []float64{1, 6, 3})},
		},
	}
}

func TestLoadShippedModel(t *testing.T) {
	model, err := LoadModel(ModelTypeRandomForest, shippedModel)
	require.NoError(t, err)
	assert.IsType(t, &RandomForest{}, model)
	assert.Equal(t, []int{0, 1, 2}, model.Classes())

	_, err = LoadModel("", shippedModel)
	require.NoError(t, err)
}

func TestLoadModelDecisionTree(t *testing.T) {
	path := writeArtifact(t, stumpArtifact(ModelTypeDecisionTree, []int{0, 1, 2}))
	model, err := LoadModel(ModelTypeDecisionTree, path)
	require.NoError(t, err)
	assert.IsType(t, &DecisionTree{}, model)
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(ModelTypeRandomForest, filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadModelCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("\x80\x04\x95 not json"), 0o600))
	_, err := LoadModel(ModelTypeRandomForest, path)
	assert.Error(t, err)
}

func TestLoadModelTypeMismatch(t *testing.T) {
	path := writeArtifact(t, stumpArtifact(ModelTypeDecisionTree, []int{0, 1, 2}))
	_, err := LoadModel(ModelTypeRandomForest, path)
	assert.ErrorIs(t, err, ErrUnsupportedModel)

	path = writeArtifact(t, stumpArtifact("gradient_boosting", []int{0, 1, 2}))
	_, err = LoadModel("", path)
	assert.ErrorIs(t, err, ErrUnsupportedModel)
}

func TestLoadModelFeatureOrderMismatch(t *testing.T) {
	artifact := stumpArtifact(ModelTypeDecisionTree, []int{0, 1, 2})
	names := FeatureNames()
	names[0], names[1] = names[1], names[0]
	artifact.FeatureNames = names

	_, err := LoadModel(ModelTypeDecisionTree, writeArtifact(t, artifact))
	assert.ErrorIs(t, err, ErrFeatureMismatch)
}

func TestLoadModelRejectsUnknownClasses(t *testing.T) {
	path := writeArtifact(t, stumpArtifact(ModelTypeDecisionTree, []int{0, 1, 5}))
	_, err := LoadModel(ModelTypeDecisionTree, path)
	assert.ErrorIs(t, err, ErrUnknownClass)

	path = writeArtifact(t, stumpArtifact(ModelTypeDecisionTree, []int{0, 0, 1}))
	_, err = LoadModel(ModelTypeDecisionTree, path)
	assert.Error(t, err)
}
