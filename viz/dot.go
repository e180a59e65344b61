// Package viz renders a live search tree as Graphviz DOT, for the debugging
// dumps the teacher's Node.Format exists for but never had a tree-wide
// counterpart.
package viz

import (
	"fmt"

	"github.com/awalterschulze/gographviz"

	"github.com/corvidchess/corvid/search"
)

// nodeName is the DOT identifier for a tree node, keyed by its NodeIndex so
// the root (a pinned sentinel index outside the segment arena) and ordinary
// allocated nodes share one naming scheme.
func nodeName(idx search.NodeIndex) string {
	return fmt.Sprintf("n%d", uint64(idx))
}

// DOT renders tree as a Graphviz digraph, walking from the root down to
// maxDepth edges deep. A node is labelled with its GameState; an edge is
// labelled with its move's UCI text, policy prior and visit count, the
// same fields spec.md names as useful for inspecting a running search.
// maxDepth <= 0 walks the whole reachable tree.
func DOT(tree *search.Tree, maxDepth int) string {
	graph := gographviz.NewGraph()
	graph.SetName("tree")
	graph.SetDir(true)

	rootIdx := tree.RootIndex()
	root := tree.Root()
	addNode(graph, rootIdx, root, true)
	walk(graph, tree, rootIdx, root, 0, maxDepth)

	return graph.String()
}

func walk(graph *gographviz.Graph, tree *search.Tree, idx search.NodeIndex, node *search.Node, depth, maxDepth int) {
	if maxDepth > 0 && depth >= maxDepth {
		return
	}
	n := node.NumEdges()
	for i := 0; i < n; i++ {
		edge := node.EdgeAt(i)
		childIdx := edge.ChildIndex()
		if childIdx.IsNull() {
			continue
		}
		child := tree.At(childIdx)
		addNode(graph, childIdx, child, false)
		addEdge(graph, idx, childIdx, edge)
		walk(graph, tree, childIdx, child, depth+1, maxDepth)
	}
}

func addNode(graph *gographviz.Graph, idx search.NodeIndex, node *search.Node, isRoot bool) {
	label := fmt.Sprintf("\"%s\"", node.State().String())
	if isRoot {
		label = fmt.Sprintf("\"root\\n%s\"", node.State().String())
	}
	attrs := map[string]string{"label": label}
	graph.AddNode("tree", nodeName(idx), attrs)
}

func addEdge(graph *gographviz.Graph, from, to search.NodeIndex, edge *search.Edge) {
	label := fmt.Sprintf("\"%s (p=%.3f, n=%d)\"", edge.Move().UCI, edge.Policy(), edge.Visits())
	attrs := map[string]string{"label": label}
	graph.AddEdge(nodeName(from), nodeName(to), true, attrs)
}
