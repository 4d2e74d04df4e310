package bptree

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Print dumps the structure of t to stdout. Output is colored if stdout is
// a terminal.
func (t *Tree[K, V]) Print() error {
	return t.Fprint(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

// Fprint writes an indented dump of the structure of t to w, one node per
// line. Inner nodes list their separator keys, leaves their keys. The cached
// leaf and the tail leaf are marked.
func (t *Tree[K, V]) Fprint(w io.Writer, colored bool) error {
	p := consolePrinter{w: w, palette: makeDefaultPalette(colored)}
	t.fprintNode(&p, t.root, 0)
	return p.err
}

type nodeStyle int

const (
	branchStyle nodeStyle = iota
	leafStyle
	markStyle
)

func makeDefaultPalette(colored bool) map[nodeStyle]*color.Color {
	palette := map[nodeStyle]*color.Color{
		branchStyle: color.New(color.FgBlue),
		leafStyle:   color.New(color.FgGreen),
		markStyle:   color.New(color.FgRed, color.Bold),
	}
	for _, c := range palette {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return palette
}

// consolePrinter remembers the first write error and skips all output after it.
type consolePrinter struct {
	w       io.Writer
	palette map[nodeStyle]*color.Color
	err     error
}

func (p *consolePrinter) print(style nodeStyle, s string) {
	if p.err != nil {
		return
	}
	_, p.err = p.palette[style].Fprint(p.w, s)
}

func (t *Tree[K, V]) fprintNode(p *consolePrinter, n treeNode[K, V], depth int) {
	p.print(leafStyle, strings.Repeat("  ", depth))
	if n.isLeaf() {
		leaf := n.(*leafNode[K, V])
		p.print(leafStyle, "leaf "+consoleKeys[K](leaf.keys.All()))
		if leaf == t.recent {
			p.print(markStyle, " (recent)")
		}
		if leaf == t.tail {
			p.print(markStyle, " (tail)")
		}
		p.print(leafStyle, "\n")
		return
	}
	inner := n.(*innerNode[K, V])
	p.print(branchStyle, "branch "+consoleKeys[K](inner.keys.All())+"\n")
	for _, child := range inner.children.All() {
		t.fprintNode(p, child, depth+1)
	}
}

func consoleKeys[K any](keys func(yield func(int, K) bool)) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, k)
	}
	b.WriteByte(']')
	return b.String()
}
