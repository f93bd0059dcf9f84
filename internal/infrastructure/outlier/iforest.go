// Package outlier implements an isolation forest for unsupervised anomaly
// scoring of small numeric feature sets.
package outlier

import (
	"errors"
	"math"
	"math/rand/v2"
)

// Defaults match the usual isolation forest parameters
const (
	DefaultTrees      = 100
	DefaultSampleSize = 256
)

// eulerGamma is the Euler-Mascheroni constant used by c(n)
const eulerGamma = 0.5772156649015329

// ErrNoPoints is returned when fitting an empty data set
var ErrNoPoints = errors.New("outlier: no points to fit")

// ErrDimension is returned when points have inconsistent dimensions
var ErrDimension = errors.New("outlier: inconsistent point dimension")

// Config controls forest construction
type Config struct {
	Trees      int
	SampleSize int
	Seed       uint64
}

// IsolationForest scores points by how quickly random axis-aligned splits
// isolate them. Scores lie in (0, 1]; higher means more anomalous.
type IsolationForest struct {
	cfg         Config
	trees       []*node
	sampleSize  int
	heightLimit int
	dim         int
}

type node struct {
	feature int
	split   float64
	left    *node
	right   *node
	size    int // leaf only
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// NewIsolationForest creates an unfitted forest. Zero fields fall back to
// the defaults.
func NewIsolationForest(cfg Config) *IsolationForest {
	if cfg.Trees <= 0 {
		cfg.Trees = DefaultTrees
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = DefaultSampleSize
	}
	return &IsolationForest{cfg: cfg}
}

// Fit builds the trees from points. The same points and seed always yield
// the same forest.
func (f *IsolationForest) Fit(points [][]float64) error {
	if len(points) == 0 {
		return ErrNoPoints
	}
	dim := len(points[0])
	for _, p := range points {
		if len(p) != dim || dim == 0 {
			return ErrDimension
		}
	}

	rng := rand.New(rand.NewPCG(f.cfg.Seed, f.cfg.Seed^0xda3e39cb94b95bdb))
	f.dim = dim
	f.sampleSize = min(f.cfg.SampleSize, len(points))
	f.heightLimit = int(math.Ceil(math.Log2(float64(max(f.sampleSize, 2)))))
	f.trees = make([]*node, f.cfg.Trees)

	for t := range f.trees {
		idx := rng.Perm(len(points))[:f.sampleSize]
		f.trees[t] = f.grow(rng, points, idx, 0)
	}
	return nil
}

func (f *IsolationForest) grow(rng *rand.Rand, points [][]float64, idx []int, depth int) *node {
	if depth >= f.heightLimit || len(idx) <= 1 {
		return &node{size: len(idx)}
	}

	// Only features that still vary can split this node.
	candidates := make([]int, 0, f.dim)
	lows := make([]float64, f.dim)
	highs := make([]float64, f.dim)
	for j := 0; j < f.dim; j++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, i := range idx {
			v := points[i][j]
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		lows[j], highs[j] = lo, hi
		if hi > lo {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return &node{size: len(idx)}
	}

	feature := candidates[rng.IntN(len(candidates))]
	split := lows[feature] + rng.Float64()*(highs[feature]-lows[feature])

	var left, right []int
	for _, i := range idx {
		if points[i][feature] < split {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &node{
		feature: feature,
		split:   split,
		left:    f.grow(rng, points, left, depth+1),
		right:   f.grow(rng, points, right, depth+1),
	}
}

// Score returns the anomaly score of p. An unfitted forest scores 0.
func (f *IsolationForest) Score(p []float64) float64 {
	if len(f.trees) == 0 || len(p) != f.dim {
		return 0
	}
	norm := AveragePathLength(f.sampleSize)
	if norm == 0 {
		return 0
	}

	total := 0.0
	for _, t := range f.trees {
		total += pathLength(t, p, 0)
	}
	mean := total / float64(len(f.trees))
	return math.Pow(2, -mean/norm)
}

// ScoreAll scores every point
func (f *IsolationForest) ScoreAll(points [][]float64) []float64 {
	scores := make([]float64, len(points))
	for i, p := range points {
		scores[i] = f.Score(p)
	}
	return scores
}

func pathLength(n *node, p []float64, depth int) float64 {
	for !n.isLeaf() {
		if p[n.feature] < n.split {
			n = n.left
		} else {
			n = n.right
		}
		depth++
	}
	return float64(depth) + AveragePathLength(n.size)
}

// AveragePathLength is c(n), the mean path length of an unsuccessful search
// in a binary search tree of n points.
func AveragePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	}
	fn := float64(n)
	return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
}
