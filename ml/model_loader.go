package ml

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
)

const (
	ModelTypeDecisionTree = "decision_tree"
	ModelTypeRandomForest = "random_forest"
)

// Artifact is the on-disk model document.
type Artifact struct {
	ModelType    string      `json:"model_type"`
	Version      string      `json:"version,omitempty"`
	FeatureNames []string    `json:"feature_names"`
	Classes      []int       `json:"classes"`
	Estimators   []Estimator `json:"estimators"`
}

type Estimator struct {
	Nodes []TreeNode `json:"nodes"`
}

// LoadModel reads the artifact at path and builds a classifier of the
// requested type. An empty modelType accepts whatever the file declares.
func LoadModel(modelType, path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	if modelType == "" {
		modelType = artifact.ModelType
	}
	if artifact.ModelType != "" && artifact.ModelType != modelType {
		return nil, fmt.Errorf("%w: configured %q, artifact is %q", ErrUnsupportedModel, modelType, artifact.ModelType)
	}
	if err := artifact.validate(); err != nil {
		return nil, fmt.Errorf("invalid model %s: %w", path, err)
	}

	switch modelType {
	case ModelTypeDecisionTree:
		if len(artifact.Estimators) != 1 {
			return nil, fmt.Errorf("decision tree artifact has %d estimators", len(artifact.Estimators))
		}
		return NewDecisionTree(artifact.Classes, artifact.Estimators[0].Nodes)
	case ModelTypeRandomForest:
		trees := make([]*DecisionTree, 0, len(artifact.Estimators))
		for i, est := range artifact.Estimators {
			tree, err := NewDecisionTree(artifact.Classes, est.Nodes)
			if err != nil {
				return nil, fmt.Errorf("estimator %d: %w", i, err)
			}
			trees = append(trees, tree)
		}
		return NewRandomForest(artifact.Classes, trees)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelType)
	}
}

func (a *Artifact) validate() error {
	var result *multierror.Error

	names := FeatureNames()
	if len(a.FeatureNames) != len(names) {
		result = multierror.Append(result, fmt.Errorf("%w: got %d columns, want %d", ErrFeatureMismatch, len(a.FeatureNames), len(names)))
	} else {
		for i, name := range names {
			if a.FeatureNames[i] != name {
				result = multierror.Append(result, fmt.Errorf("%w: column %d is %q, want %q", ErrFeatureMismatch, i, a.FeatureNames[i], name))
			}
		}
	}

	seen := make(map[int]bool, len(a.Classes))
	for _, id := range a.Classes {
		if !knownClass(id) {
			result = multierror.Append(result, fmt.Errorf("%w: %d", ErrUnknownClass, id))
		}
		if seen[id] {
			result = multierror.Append(result, fmt.Errorf("duplicate class %d", id))
		}
		seen[id] = true
	}
	if len(a.Classes) != len(ClassIDs()) {
		result = multierror.Append(result, fmt.Errorf("artifact has %d classes, want %d", len(a.Classes), len(ClassIDs())))
	}

	if len(a.Estimators) == 0 {
		result = multierror.Append(result, fmt.Errorf("artifact has no estimators"))
	}
	for i, est := range a.Estimators {
		if err := validateNodes(est.Nodes, len(a.Classes)); err != nil {
			result = multierror.Append(result, fmt.Errorf("estimator %d: %w", i, err))
		}
	}
	return result.ErrorOrNil()
}
