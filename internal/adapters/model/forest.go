package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Carl2170/sw-conta-bi/internal/apperrors"
	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
	portssvc "github.com/Carl2170/sw-conta-bi/internal/core/ports/services"
)

// featureCount is the fixed width of the classifier input: total invoiced,
// total paid, days to due.
const featureCount = 3

// The artifact is a JSON export of the trained random forest. Each tree is
// a flat node array: internal nodes carry a feature index, a threshold and
// child indices; leaves carry the per-class sample weights.
type forestArtifact struct {
	NFeatures int            `json:"n_features"`
	Classes   []int          `json:"classes"`
	Trees     []treeArtifact `json:"trees"`
}

type treeArtifact struct {
	Nodes []nodeArtifact `json:"nodes"`
}

type nodeArtifact struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Leaf      []float64 `json:"leaf,omitempty"`
}

// ForestClassifier applies a frozen random-forest artifact. It is
// immutable after load and safe for concurrent use.
type ForestClassifier struct {
	trees []treeArtifact
}

var _ portssvc.RiskClassifier = (*ForestClassifier)(nil)

// NewForestClassifier loads and validates the artifact at path. A missing
// or incompatible artifact yields apperrors.ErrModelUnavailable; there is
// no degraded mode.
func NewForestClassifier(path string) (*ForestClassifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read artifact %s: %v", apperrors.ErrModelUnavailable, path, err)
	}

	var artifact forestArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("%w: parse artifact %s: %v", apperrors.ErrModelUnavailable, path, err)
	}

	if err := validateArtifact(artifact); err != nil {
		return nil, fmt.Errorf("%w: artifact %s: %v", apperrors.ErrModelUnavailable, path, err)
	}

	return &ForestClassifier{trees: artifact.Trees}, nil
}

func validateArtifact(artifact forestArtifact) error {
	if artifact.NFeatures != featureCount {
		return fmt.Errorf("expected %d features, artifact declares %d", featureCount, artifact.NFeatures)
	}
	if len(artifact.Classes) != 2 {
		return fmt.Errorf("expected a binary classifier, artifact declares %d classes", len(artifact.Classes))
	}
	if len(artifact.Trees) == 0 {
		return fmt.Errorf("artifact contains no trees")
	}

	for t, tree := range artifact.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", t)
		}
		for i, node := range tree.Nodes {
			if node.Leaf != nil {
				if len(node.Leaf) != 2 {
					return fmt.Errorf("tree %d node %d: leaf must carry 2 class weights", t, i)
				}
				if node.Leaf[0]+node.Leaf[1] <= 0 {
					return fmt.Errorf("tree %d node %d: leaf weights must be positive", t, i)
				}
				continue
			}
			if node.Feature < 0 || node.Feature >= featureCount {
				return fmt.Errorf("tree %d node %d: feature index %d out of range", t, i, node.Feature)
			}
			// Children must point forward in the node array; this rules out
			// cycles so traversal always terminates.
			if node.Left <= i || node.Left >= len(tree.Nodes) || node.Right <= i || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: invalid child indices %d/%d", t, i, node.Left, node.Right)
			}
		}
	}
	return nil
}

// PredictRisk returns the averaged positive-class probability across all
// trees for the given feature vector.
func (f *ForestClassifier) PredictRisk(v domain.FeatureVector) float64 {
	x := v.Values()
	sum := 0.0
	for _, tree := range f.trees {
		sum += classifyTree(tree, x)
	}
	return sum / float64(len(f.trees))
}

func classifyTree(tree treeArtifact, x [featureCount]float64) float64 {
	idx := 0
	for {
		node := tree.Nodes[idx]
		if node.Leaf != nil {
			return node.Leaf[1] / (node.Leaf[0] + node.Leaf[1])
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}
