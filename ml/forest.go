package ml

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ForestConfig controls forest construction. The same config, seed and
// dataset always produce the same forest.
type ForestConfig struct {
	Trees    int
	MaxDepth int
	MinLeaf  int
	Features int // candidate features considered per split
	Seed     int64
}

// DefaultForestConfig mirrors the production classifier: 200 trees, seeded.
func DefaultForestConfig(trees int, seed int64) ForestConfig {
	return ForestConfig{
		Trees:    trees,
		MaxDepth: 12,
		MinLeaf:  1,
		Features: 2,
		Seed:     seed,
	}
}

// Node is one decision node in a tree, stored flat so the whole forest
// serializes to JSON without recursion. Leaf nodes carry a class index.
type Node struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t"`
	Left      int     `json:"l"`
	Right     int     `json:"r"`
	Leaf      bool    `json:"leaf"`
	Class     int     `json:"c"`
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is a bagged ensemble of decision trees over the fixed feature
// vector, voting by majority. It is the serialized model artifact payload.
type Forest struct {
	Version string   `json:"version"`
	Classes []string `json:"classes"`
	Trees   []Tree   `json:"trees"`
}

const forestVersion = "rf-v1"

// TrainForest fits a random forest on rows X with string labels y.
// Each tree trains on a bootstrap sample with per-split feature subsampling.
// Construction is sequential and driven by a single seeded RNG, so training
// is fully reproducible.
func TrainForest(X [][]float64, y []string, cfg ForestConfig) *Forest {
	classes := uniqueSorted(y)
	classIndex := make(map[string]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}
	labels := make([]int, len(y))
	for i, label := range y {
		labels[i] = classIndex[label]
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	forest := &Forest{Version: forestVersion, Classes: classes, Trees: make([]Tree, 0, cfg.Trees)}

	for i := 0; i < cfg.Trees; i++ {
		sample := make([]int, len(X))
		for j := range sample {
			sample[j] = rng.Intn(len(X))
		}
		forest.Trees = append(forest.Trees, growTree(X, labels, sample, len(classes), rng, cfg))
	}

	return forest
}

// Predict returns the majority-vote class for one feature row. Ties break
// toward the lexically first class, keeping inference deterministic.
func (f *Forest) Predict(x []float64) string {
	votes := make([]float64, len(f.Classes))
	for i := range f.Trees {
		votes[f.Trees[i].predict(x)]++
	}
	return f.Classes[floats.MaxIdx(votes)]
}

func (t *Tree) predict(x []float64) int {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Class
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

type treeBuilder struct {
	X       [][]float64
	labels  []int
	classes int
	rng     *rand.Rand
	cfg     ForestConfig
	nodes   []Node
}

func growTree(X [][]float64, labels []int, sample []int, classes int, rng *rand.Rand, cfg ForestConfig) Tree {
	b := &treeBuilder{X: X, labels: labels, classes: classes, rng: rng, cfg: cfg}
	b.grow(sample, 0)
	return Tree{Nodes: b.nodes}
}

// grow appends the subtree for the given sample rows and returns its root
// node index.
func (b *treeBuilder) grow(rows []int, depth int) int {
	counts := b.classCounts(rows)

	if depth >= b.cfg.MaxDepth || len(rows) < 2*b.cfg.MinLeaf || isPure(counts) {
		return b.leaf(counts)
	}

	feature, threshold, ok := b.bestSplit(rows, counts)
	if !ok {
		return b.leaf(counts)
	}

	var left, right []int
	for _, r := range rows {
		if b.X[r][feature] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return b.leaf(counts)
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: feature, Threshold: threshold})
	b.nodes[idx].Left = b.grow(left, depth+1)
	b.nodes[idx].Right = b.grow(right, depth+1)
	return idx
}

func (b *treeBuilder) leaf(counts []float64) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{Leaf: true, Class: floats.MaxIdx(counts)})
	return idx
}

func (b *treeBuilder) classCounts(rows []int) []float64 {
	counts := make([]float64, b.classes)
	for _, r := range rows {
		counts[b.labels[r]]++
	}
	return counts
}

// bestSplit searches a random subset of features for the threshold with the
// lowest weighted gini impurity. Returns ok=false when no split separates
// the rows.
func (b *treeBuilder) bestSplit(rows []int, counts []float64) (int, float64, bool) {
	parent := gini(counts)
	bestGain := 1e-9
	bestFeature, bestThreshold := -1, 0.0

	features := b.rng.Perm(len(b.X[0]))
	if b.cfg.Features > 0 && b.cfg.Features < len(features) {
		features = features[:b.cfg.Features]
	}

	total := float64(len(rows))
	for _, feature := range features {
		values := make([]float64, 0, len(rows))
		for _, r := range rows {
			values = append(values, b.X[r][feature])
		}
		sort.Float64s(values)

		for i := 1; i < len(values); i++ {
			if values[i] == values[i-1] {
				continue
			}
			threshold := (values[i] + values[i-1]) / 2

			leftCounts := make([]float64, b.classes)
			var leftN float64
			for _, r := range rows {
				if b.X[r][feature] <= threshold {
					leftCounts[b.labels[r]]++
					leftN++
				}
			}
			rightCounts := make([]float64, b.classes)
			for c := range rightCounts {
				rightCounts[c] = counts[c] - leftCounts[c]
			}
			rightN := total - leftN

			weighted := leftN/total*gini(leftCounts) + rightN/total*gini(rightCounts)
			if gain := parent - weighted; gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func gini(counts []float64) float64 {
	total := floats.Sum(counts)
	if total == 0 {
		return 0
	}
	probs := make([]float64, len(counts))
	for i, c := range counts {
		probs[i] = c / total
	}
	return 1 - floats.Dot(probs, probs)
}

func isPure(counts []float64) bool {
	seen := false
	for _, c := range counts {
		if c > 0 {
			if seen {
				return false
			}
			seen = true
		}
	}
	return true
}

func uniqueSorted(labels []string) []string {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
