package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ---------------------------
// Types & options
// ---------------------------

// DecisionTreeClassifier is a CART-style classifier.
type DecisionTreeClassifier struct {
	// Hyperparameters / options
	MaxDepth          int    // maximum depth (root depth = 0). 0 => no limit
	Criterion         string // "gini" (default) or "entropy"
	MaxFeatures       int    // 0 => use all features, >0 => number of features to sample when looking for split
	RandomState       int64  // seed for randomness (feature subsampling)
	CategoricalSplits bool   // also try x == v splits on small integer-valued features

	// internals
	root      *dtNode
	classes   []int // unique class labels, sorted (order used by probas)
	nFeatures int
}

// dtNode holds a node in the tree.
type dtNode struct {
	// internal node fields
	isLeaf    bool
	feature   int
	threshold float64 // numeric threshold: x <= threshold => left
	isCat     bool    // true if this split is a categorical equality split (x == threshold)
	left      *dtNode
	right     *dtNode

	n         int
	impurity  float64
	counts    []int     // class counts (aligned with tree.classes)
	probas    []float64 // probability distribution across classes (aligned with tree.classes)
	predIndex int       // index into classes for predicted class (majority)
}

// Option functional config
type Option func(*DecisionTreeClassifier)

func WithMaxDepth(d int) Option     { return func(t *DecisionTreeClassifier) { t.MaxDepth = d } }
func WithCriterion(c string) Option { return func(t *DecisionTreeClassifier) { t.Criterion = c } }
func WithMaxFeatures(k int) Option  { return func(t *DecisionTreeClassifier) { t.MaxFeatures = k } }
func WithRandomState(seed int64) Option {
	return func(t *DecisionTreeClassifier) { t.RandomState = seed }
}
func WithCategoricalSplits(on bool) Option {
	return func(t *DecisionTreeClassifier) { t.CategoricalSplits = on }
}

// Criteria accepted by WithCriterion.
const (
	CriterionGini    = "gini"
	CriterionEntropy = "entropy"
)

// NewDecisionTreeClassifier returns an unconstrained classifier: no depth
// limit, nodes split until pure or until no split lowers impurity, every
// feature considered at every node.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	d := &DecisionTreeClassifier{
		MaxDepth:    0, // 0 => no explicit max
		Criterion:   CriterionGini,
		MaxFeatures: 0,
		RandomState: 42,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ---------------------------
// Public API: Fit / Predict / PredictProba
// ---------------------------

// Fit trains the decision tree on X (n x p) and y (n labels as ints).
// Every row must have the same number of columns and every value must be
// finite. Fit replaces any previously trained tree.
func (t *DecisionTreeClassifier) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("dtree: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("dtree: X and y length mismatch")
	}
	p := len(X[0])
	if p == 0 {
		return errors.New("dtree: no features in X")
	}
	for i := range X {
		if len(X[i]) != p {
			return errors.New("dtree: inconsistent number of features in X rows")
		}
		for j, v := range X[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("dtree: non-finite value at row %d feature %d", i, j)
			}
		}
	}
	if t.Criterion != CriterionGini && t.Criterion != CriterionEntropy {
		return fmt.Errorf("dtree: unknown criterion %q", t.Criterion)
	}

	// collect classes in ascending order so probas line up with labels
	seen := map[int]struct{}{}
	t.classes = nil
	for _, lab := range y {
		if _, ok := seen[lab]; !ok {
			seen[lab] = struct{}{}
			t.classes = append(t.classes, lab)
		}
	}
	sort.Ints(t.classes)
	t.nFeatures = p

	// indices of samples currently considered
	idx := make([]int, n)
	for i := 0; i < n; i++ {
		idx[i] = i
	}

	rnd := rand.New(rand.NewSource(t.RandomState))

	t.root = t.buildNode(X, y, idx, 0, p, rnd)
	return nil
}

// Trained reports whether Fit has completed successfully.
func (t *DecisionTreeClassifier) Trained() bool { return t.root != nil }

// Classes returns the class labels seen during Fit, ascending.
func (t *DecisionTreeClassifier) Classes() []int { return append([]int(nil), t.classes...) }

// NumFeatures returns the number of columns the tree was trained on.
func (t *DecisionTreeClassifier) NumFeatures() int { return t.nFeatures }

// Predict returns predicted class labels aligned with the labels the tree was trained on.
// An untrained tree returns nil.
func (t *DecisionTreeClassifier) Predict(X [][]float64) []int {
	if t.root == nil {
		return nil
	}
	out := make([]int, len(X))
	for i := range X {
		out[i] = t.classes[t.leaf(X[i]).predIndex]
	}
	return out
}

// PredictProba returns the per-class probability vectors for rows in X,
// aligned with Classes. An untrained tree returns nil.
func (t *DecisionTreeClassifier) PredictProba(X [][]float64) [][]float64 {
	if t.root == nil {
		return nil
	}
	out := make([][]float64, len(X))
	for i := range X {
		out[i] = append([]float64(nil), t.leaf(X[i]).probas...)
	}
	return out
}

// FeatureImportances returns the normalized total impurity decrease
// contributed by each feature. A tree with no split yields all zeros.
func (t *DecisionTreeClassifier) FeatureImportances() []float64 {
	imp := make([]float64, t.nFeatures)
	if t.root == nil {
		return imp
	}
	var walk func(n *dtNode)
	walk = func(n *dtNode) {
		if n.isLeaf {
			return
		}
		dec := float64(n.n)*n.impurity -
			float64(n.left.n)*n.left.impurity -
			float64(n.right.n)*n.right.impurity
		imp[n.feature] += dec
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)

	total := 0.0
	for _, v := range imp {
		total += v
	}
	if total > 0 {
		for i := range imp {
			imp[i] /= total
		}
	}
	return imp
}

// ---------------------------
// Internal builders & helpers
// ---------------------------

// A struct to hold the results of a single feature's best split search.
type splitResult struct {
	gain      float64
	feature   int
	threshold float64
	isCat     bool
	leftIdx   []int
	rightIdx  []int
}

// pair is a named type for a value and its original index.
type pair struct {
	v float64
	i int
}

func (t *DecisionTreeClassifier) impurity(counts []int) float64 {
	if t.Criterion == CriterionEntropy {
		return entropyFromCounts(counts)
	}
	return giniFromCounts(counts)
}

func (t *DecisionTreeClassifier) buildNode(X [][]float64, y []int, idx []int, depth, p int, rnd *rand.Rand) *dtNode {
	counts := countsFromIndices(y, idx, len(t.classes), t.classes)
	node := &dtNode{
		n:         len(idx),
		impurity:  t.impurity(counts),
		counts:    counts,
		probas:    countsToProbas(counts),
		predIndex: argmax(counts),
		isLeaf:    true,
	}

	// make leaf if pure or depth reached
	if isPure(counts) {
		return node
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return node
	}

	// determine features to try
	featIndices := make([]int, p)
	for j := 0; j < p; j++ {
		featIndices[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		for i := 0; i < p; i++ {
			j := i + rnd.Intn(p-i)
			featIndices[i], featIndices[j] = featIndices[j], featIndices[i]
		}
		featIndices = featIndices[:t.MaxFeatures]
		sort.Ints(featIndices)
	}

	// Search every candidate feature concurrently. Each goroutine owns one
	// slot of results so the selection below runs in feature order.
	results := make([]splitResult, len(featIndices))
	var g errgroup.Group
	for k, f := range featIndices {
		g.Go(func() error {
			results[k] = t.findBestSplitForFeature(X, y, idx, f, node.impurity)
			return nil
		})
	}
	_ = g.Wait()

	// Strict improvement keeps the lowest feature index on ties.
	best := splitResult{feature: -1}
	for _, r := range results {
		if r.feature >= 0 && r.gain > best.gain {
			best = r
		}
	}

	// Decide whether to split
	if best.feature == -1 || best.gain <= 0 {
		return node
	}

	// found a valid split; create internal node
	node.isLeaf = false
	node.feature = best.feature
	node.threshold = best.threshold
	node.isCat = best.isCat
	// build children recursively
	node.left = t.buildNode(X, y, best.leftIdx, depth+1, p, rnd)
	node.right = t.buildNode(X, y, best.rightIdx, depth+1, p, rnd)
	return node
}

// findBestSplitForFeature finds the best split for a single feature. It
// only reads shared state and is safe to run concurrently.
func (t *DecisionTreeClassifier) findBestSplitForFeature(X [][]float64, y []int, idx []int, f int, parentImpurity float64) splitResult {
	result := splitResult{gain: 0.0, feature: -1}
	nClasses := len(t.classes)

	valid := make([]pair, 0, len(idx))
	for _, ii := range idx {
		valid = append(valid, pair{X[ii][f], ii})
	}

	weightedGain := func(left, right []int) float64 {
		lc := countsFromIndices(y, left, nClasses, t.classes)
		rc := countsFromIndices(y, right, nClasses, t.classes)
		weighted := (float64(len(left))/float64(len(idx)))*t.impurity(lc) +
			(float64(len(right))/float64(len(idx)))*t.impurity(rc)
		return parentImpurity - weighted
	}

	// try categorical-equality splits if values are integer-like and small unique set
	if t.CategoricalSplits {
		uniqueVals := uniqueValuesFromPairs(valid)
		if len(uniqueVals) <= 30 && allInt(uniqueVals) {
			for _, uv := range uniqueVals {
				leftIdx := make([]int, 0, len(idx))
				rightIdx := make([]int, 0, len(idx))
				for _, pval := range valid {
					if pval.v == uv {
						leftIdx = append(leftIdx, pval.i)
					} else {
						rightIdx = append(rightIdx, pval.i)
					}
				}
				if len(leftIdx) == 0 || len(rightIdx) == 0 {
					continue
				}
				if gain := weightedGain(leftIdx, rightIdx); gain > result.gain {
					result = splitResult{gain: gain, feature: f, threshold: uv, isCat: true, leftIdx: leftIdx, rightIdx: rightIdx}
				}
			}
		}
	}

	// ---- NUMERIC splits: sort valid and scan thresholds ----
	sort.SliceStable(valid, func(a, b int) bool { return valid[a].v < valid[b].v })

	// Move rows one by one from the right side to the left, keeping class
	// counts incrementally; a threshold sits between two distinct values.
	n := len(valid)
	lc := make([]int, nClasses)
	rc := countsFromIndices(y, idx, nClasses, t.classes)
	numeric := splitResult{feature: -1}
	bestS := 0
	for s := 1; s < n; s++ {
		ci := classIndex(y[valid[s-1].i], t.classes)
		lc[ci]++
		rc[ci]--
		if valid[s].v == valid[s-1].v {
			continue
		}
		weighted := (float64(s)/float64(n))*t.impurity(lc) +
			(float64(n-s)/float64(n))*t.impurity(rc)
		if gain := parentImpurity - weighted; gain > numeric.gain {
			thr := valid[s-1].v + (valid[s].v-valid[s-1].v)/2.0
			numeric = splitResult{gain: gain, feature: f, threshold: thr}
			bestS = s
		}
	}
	if bestS > 0 && numeric.gain > result.gain {
		numeric.leftIdx = indicesFromPairs(valid[:bestS])
		numeric.rightIdx = indicesFromPairs(valid[bestS:])
		result = numeric
	}
	return result
}

// ---------------------------
// Helpers used in buildNode
// ---------------------------

func almostInt(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	_, frac := math.Modf(math.Abs(v))
	return frac < 1e-9 || frac > 1-1e-9
}

func allInt(vals []float64) bool {
	for _, v := range vals {
		if !almostInt(v) {
			return false
		}
	}
	return true
}

func uniqueValuesFromPairs(pairs []pair) []float64 {
	m := make(map[float64]struct{})
	out := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		if _, ok := m[p.v]; !ok {
			m[p.v] = struct{}{}
			out = append(out, p.v)
		}
	}
	sort.Float64s(out)
	return out
}

func indicesFromPairs(pairs []pair) []int {
	out := make([]int, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.i)
	}
	return out
}

func countsFromIndices(y []int, idx []int, nClasses int, classes []int) []int {
	counts := make([]int, nClasses)
	for _, ii := range idx {
		counts[classIndex(y[ii], classes)]++
	}
	return counts
}

// ---------------------------
// Prediction helper
// ---------------------------

// leaf walks x down to its leaf. x must have NumFeatures columns.
func (t *DecisionTreeClassifier) leaf(x []float64) *dtNode {
	node := t.root
	for !node.isLeaf {
		val := x[node.feature]
		var goLeft bool
		if node.isCat {
			goLeft = val == node.threshold
		} else {
			goLeft = val <= node.threshold
		}
		if goLeft {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node
}

// ---------------------------
// Utilities: impurity & misc
// ---------------------------

func giniFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		p := float64(c) / n
		res += p * (1 - p)
	}
	return res
}

func entropyFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		res -= p * math.Log2(p)
	}
	return res
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func countsToProbas(counts []int) []float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	p := make([]float64, len(counts))
	if n == 0 {
		return p
	}
	for i := range counts {
		p[i] = float64(counts[i]) / float64(n)
	}
	return p
}

func argmax(counts []int) int {
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return best
}

// classIndex returns index of label in classes slice.
func classIndex(label int, classes []int) int {
	for i, v := range classes {
		if v == label {
			return i
		}
	}
	return 0
}
