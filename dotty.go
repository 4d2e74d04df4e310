package bptree

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/bptree/ring"
)

type nodeids[K, V any] struct {
	idTable map[treeNode[K, V]]int
	max     int
}

func newtable[K, V any]() nodeids[K, V] {
	return nodeids[K, V]{
		idTable: make(map[treeNode[K, V]]int),
		max:     1,
	}
}

func (ids nodeids[K, V]) find(node treeNode[K, V]) int {
	return ids.idTable[node]
}

func (ids *nodeids[K, V]) alloc(node treeNode[K, V]) int {
	if id := ids.find(node); id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// Tree2Dot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes). Inner nodes are drawn as records of their keys,
// leaves as boxes; dashed edges show the leaf chain, the cached leaf is
// highlighted.
func Tree2Dot[K, V any](t *Tree[K, V], w io.Writer) error {
	ids := newtable[K, V]()
	var nodelist, edgelist strings.Builder
	var walk func(n treeNode[K, V])
	walk = func(n treeNode[K, V]) {
		id := ids.alloc(n)
		label := dotKeys(nodeKeys(n))
		if n.isLeaf() {
			leaf := n.(*leafNode[K, V])
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", id, label,
				nodeDotStyles(true, leaf == t.recent))
			if leaf.next != nil {
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\" [style=dashed,constraint=false];\n",
					id, ids.alloc(leaf.next))
			}
			return
		}
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", id, label, nodeDotStyles(false, false))
		for _, child := range n.(*innerNode[K, V]).children.All() {
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id, ids.alloc(child))
			walk(child)
		}
	}
	walk(t.root)
	_, err := fmt.Fprintf(w, "strict digraph {\n\tnode [fontname=Arial,fontsize=12];\n%s%s}\n",
		nodelist.String(), edgelist.String())
	return err
}

func dotKeys[K any](keys *ring.Ring[K]) string {
	var b strings.Builder
	for i, k := range keys.All() {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(strings.ReplaceAll(fmt.Sprint(k), `"`, `\"`))
	}
	return b.String()
}

func nodeDotStyles(isleaf bool, highlight bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\",shape=record"
	}
	if highlight {
		s += ",fillcolor=\"#FFBB88\""
	}
	return s
}
