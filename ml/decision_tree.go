package ml

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type DecisionTree struct {
	classes []int
	nodes   []TreeNode
}

// TreeNode is one pre-order node. Value holds per-class weights aligned
// with the owning artifact's classes and is only set on leaves.
type TreeNode struct {
	FeatureIdx int       `json:"feature_idx"`
	Threshold  float64   `json:"threshold"`
	LeftChild  int       `json:"left_child"`
	RightChild int       `json:"right_child"`
	IsLeaf     bool      `json:"is_leaf"`
	Value      []float64 `json:"value,omitempty"`
}

func NewDecisionTree(classes []int, nodes []TreeNode) (*DecisionTree, error) {
	if err := validateNodes(nodes, len(classes)); err != nil {
		return nil, err
	}
	return &DecisionTree{
		classes: append([]int(nil), classes...),
		nodes:   nodes,
	}, nil
}

func (dt *DecisionTree) Classes() []int {
	return append([]int(nil), dt.classes...)
}

func (dt *DecisionTree) Predict(features []float64) (int, error) {
	proba, err := dt.PredictProba(features)
	if err != nil {
		return 0, err
	}
	return dt.classes[argmax(proba)], nil
}

func (dt *DecisionTree) PredictProba(features []float64) ([]float64, error) {
	leaf, err := dt.leaf(features)
	if err != nil {
		return nil, err
	}
	return normalize(leaf.Value), nil
}

func (dt *DecisionTree) leaf(features []float64) (TreeNode, error) {
	if len(dt.nodes) == 0 {
		return TreeNode{}, ErrModelNotLoaded
	}
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return TreeNode{}, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.nodes) {
			return TreeNode{}, errors.New("invalid tree state")
		}
	}
}

// validateNodes checks that every path terminates at a leaf with a usable
// distribution. Children must sit after their parent.
func validateNodes(nodes []TreeNode, classCount int) error {
	if len(nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	var result *multierror.Error
	for i, node := range nodes {
		if node.IsLeaf {
			if len(node.Value) != classCount {
				result = multierror.Append(result, fmt.Errorf("node %d: leaf has %d values, want %d", i, len(node.Value), classCount))
				continue
			}
			sum := 0.0
			for _, v := range node.Value {
				if v < 0 {
					result = multierror.Append(result, fmt.Errorf("node %d: negative leaf value", i))
				}
				sum += v
			}
			if sum <= 0 {
				result = multierror.Append(result, fmt.Errorf("node %d: leaf values sum to zero", i))
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= FeatureCount {
			result = multierror.Append(result, fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx))
		}
		for _, child := range []int{node.LeftChild, node.RightChild} {
			if child <= i || child >= len(nodes) {
				result = multierror.Append(result, fmt.Errorf("node %d: invalid child %d", i, child))
			}
		}
	}
	return result.ErrorOrNil()
}

func normalize(values []float64) []float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	out := make([]float64, len(values))
	if sum == 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / sum
	}
	return out
}

// argmax returns the first index holding the maximum.
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
