package model

// Node is a read-only copy of one node of a trained tree.
type Node struct {
	Leaf bool

	// Split, set on internal nodes: rows with x[Feature] <= Threshold go
	// Left (x[Feature] == Threshold when Categorical).
	Feature     int
	Threshold   float64
	Categorical bool
	Left, Right *Node

	Samples  int
	Impurity float64
	Counts   []int // per class, aligned with Classes
	Class    int   // majority class label
}

// Tree returns a copy of the trained tree, or nil before Fit.
func (t *DecisionTreeClassifier) Tree() *Node {
	return t.export(t.root)
}

func (t *DecisionTreeClassifier) export(n *dtNode) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Leaf:     n.isLeaf,
		Samples:  n.n,
		Impurity: n.impurity,
		Counts:   append([]int(nil), n.counts...),
		Class:    t.classes[n.predIndex],
	}
	if !n.isLeaf {
		out.Feature = n.feature
		out.Threshold = n.threshold
		out.Categorical = n.isCat
		out.Left = t.export(n.left)
		out.Right = t.export(n.right)
	}
	return out
}

// Depth is the number of edges on the longest root-to-leaf path.
func (n *Node) Depth() int {
	if n == nil || n.Leaf {
		return 0
	}
	return 1 + max(n.Left.Depth(), n.Right.Depth())
}

// Leaves counts the leaves under n.
func (n *Node) Leaves() int {
	if n == nil {
		return 0
	}
	if n.Leaf {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}
