package ml

import "errors"

// RandomForest averages the leaf distributions of its trees (soft voting).
type RandomForest struct {
	classes []int
	trees   []*DecisionTree
}

func NewRandomForest(classes []int, trees []*DecisionTree) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, errors.New("randomforest: no trees")
	}
	return &RandomForest{
		classes: append([]int(nil), classes...),
		trees:   trees,
	}, nil
}

func (rf *RandomForest) Classes() []int {
	return append([]int(nil), rf.classes...)
}

func (rf *RandomForest) Predict(features []float64) (int, error) {
	proba, err := rf.PredictProba(features)
	if err != nil {
		return 0, err
	}
	return rf.classes[argmax(proba)], nil
}

func (rf *RandomForest) PredictProba(features []float64) ([]float64, error) {
	if len(rf.trees) == 0 {
		return nil, ErrModelNotLoaded
	}
	sum := make([]float64, len(rf.classes))
	for _, tree := range rf.trees {
		proba, err := tree.PredictProba(features)
		if err != nil {
			return nil, err
		}
		for i, p := range proba {
			sum[i] += p
		}
	}
	n := float64(len(rf.trees))
	for i := range sum {
		sum[i] /= n
	}
	return sum, nil
}
