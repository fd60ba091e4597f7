// Package report renders diagnostics for a trained model: the decision
// tree, the held-out confusion matrix, feature importance and column
// statistics. Text goes to an io.Writer; figures are PNG files drawn with
// gonum/plot.
package report

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/model"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/pipeline"
)

// TreeOptions controls tree rendering.
type TreeOptions struct {
	// MaxDepth truncates the rendering, not the model. 0 renders everything.
	MaxDepth int
	// Decimals used for thresholds; 2 when zero.
	Decimals int
}

func (o TreeOptions) decimals() int {
	if o.Decimals <= 0 {
		return 2
	}
	return o.Decimals
}

// WriteTree writes an indented text view of the model's tree:
//
//	|--- Pressure <= 1000.00
//	|   |--- class: Rain
//	|--- Pressure >  1000.00
//	|   |--- class: No Rain
func WriteTree(w io.Writer, m *pipeline.Model, opts TreeOptions) error {
	root := m.Tree()
	if root == nil {
		return fmt.Errorf("report: model has no tree")
	}
	var b strings.Builder
	names := m.Schema().FeatureNames
	if root.Leaf {
		fmt.Fprintf(&b, "|--- class: %s\n", data.Label(root.Class))
	} else {
		writeNode(&b, root, names, opts, 0)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeNode(b *strings.Builder, n *model.Node, names []string, opts TreeOptions, depth int) {
	indent := strings.Repeat("|   ", depth)
	if n.Leaf {
		fmt.Fprintf(b, "%s|--- class: %s\n", indent, data.Label(n.Class))
		return
	}
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		fmt.Fprintf(b, "%s|--- truncated branch of depth %d\n", indent, n.Depth())
		return
	}
	left, right := "<=", "> "
	if n.Categorical {
		left, right = "==", "!="
	}
	for i, child := range []*model.Node{n.Left, n.Right} {
		op := left
		if i == 1 {
			op = right
		}
		fmt.Fprintf(b, "%s|--- %s %s %.*f\n", indent, names[n.Feature], op, opts.decimals(), n.Threshold)
		writeNode(b, child, names, opts, depth+1)
	}
}

// placed is a node with its drawing position.
type placed struct {
	node *model.Node
	x, y float64
}

// layoutTree positions leaves left to right in order and centres every
// parent over its children. y is minus the depth.
func layoutTree(root *model.Node, maxDepth int) []placed {
	var out []placed
	next := 0.0
	var walk func(n *model.Node, depth int) float64
	walk = func(n *model.Node, depth int) float64 {
		idx := len(out)
		out = append(out, placed{node: n, y: -float64(depth)})
		if n.Leaf || (maxDepth > 0 && depth >= maxDepth) {
			out[idx].x = next
			next++
			return out[idx].x
		}
		lx := walk(n.Left, depth+1)
		rx := walk(n.Right, depth+1)
		out[idx].x = (lx + rx) / 2
		return out[idx].x
	}
	walk(root, 0)
	return out
}

func nodeLabel(n *model.Node, names []string, opts TreeOptions, truncated bool) string {
	switch {
	case n.Leaf:
		return fmt.Sprintf("%s\nsamples = %d", data.Label(n.Class), n.Samples)
	case truncated:
		return fmt.Sprintf("...\nsamples = %d", n.Samples)
	case n.Categorical:
		return fmt.Sprintf("%s == %.*f\nsamples = %d", names[n.Feature], opts.decimals(), n.Threshold, n.Samples)
	default:
		return fmt.Sprintf("%s <= %.*f\nsamples = %d", names[n.Feature], opts.decimals(), n.Threshold, n.Samples)
	}
}

// SaveTreePNG draws the tree to path. The image grows with the number of
// rendered leaves and levels.
func SaveTreePNG(path string, m *pipeline.Model, opts TreeOptions) error {
	root := m.Tree()
	if root == nil {
		return fmt.Errorf("report: model has no tree")
	}
	names := m.Schema().FeatureNames
	nodes := layoutTree(root, opts.MaxDepth)

	p := plot.New()
	p.Title.Text = "Decision Tree"
	p.HideAxes()

	pos := make(map[*model.Node]plotter.XY, len(nodes))
	for _, pn := range nodes {
		pos[pn.node] = plotter.XY{X: pn.x, Y: pn.y}
	}
	for _, pn := range nodes {
		truncated := opts.MaxDepth > 0 && -pn.y >= float64(opts.MaxDepth)
		if pn.node.Leaf || truncated {
			continue
		}
		for _, child := range []*model.Node{pn.node.Left, pn.node.Right} {
			l, err := plotter.NewLine(plotter.XYs{pos[pn.node], pos[child]})
			if err != nil {
				return fmt.Errorf("report: tree edge: %w", err)
			}
			l.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}
			l.LineStyle.Width = vg.Points(1)
			p.Add(l)
		}
	}

	xys := make(plotter.XYs, len(nodes))
	labels := make([]string, len(nodes))
	leaves, depth := 0, 0.0
	for i, pn := range nodes {
		truncated := !pn.node.Leaf && opts.MaxDepth > 0 && -pn.y >= float64(opts.MaxDepth)
		xys[i] = plotter.XY{X: pn.x, Y: pn.y}
		labels[i] = nodeLabel(pn.node, names, opts, truncated)
		if pn.node.Leaf || truncated {
			leaves++
		}
		if -pn.y > depth {
			depth = -pn.y
		}
	}
	lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("report: tree labels: %w", err)
	}
	for i := range lbls.TextStyle {
		lbls.TextStyle[i].XAlign = text.XCenter
		lbls.TextStyle[i].YAlign = text.YCenter
		lbls.TextStyle[i].Font.Size = vg.Points(7)
	}
	p.Add(lbls)

	p.X.Min, p.X.Max = -0.75, float64(leaves)-0.25
	p.Y.Min, p.Y.Max = -depth-0.5, 0.5

	width := vg.Length(max(leaves, 4)) * 1.3 * vg.Inch
	height := vg.Length(depth+1) * 0.9 * vg.Inch
	if err := p.Save(width, max(height, 3*vg.Inch), path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}
