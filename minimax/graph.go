package minimax

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/awalterschulze/gographviz"
	"github.com/gorgonia/tictactoe/game/ttt"
	"github.com/pkg/errors"
)

// trace records the positions a search visits. A nil *trace records nothing.
type trace struct {
	nodes []traceNode
	limit int
}

type traceNode struct {
	ID          int
	Parent      int
	Depth       int
	Score       int
	Alpha, Beta int
	board       ttt.Board
}

func (t *trace) add(parent int, b ttt.Board, depth int) int {
	if t == nil || len(t.nodes) >= t.limit {
		return -1
	}
	id := len(t.nodes)
	t.nodes = append(t.nodes, traceNode{ID: id, Parent: parent, Depth: depth, board: b})
	return id
}

func (t *trace) score(id, score, alpha, beta int) {
	if t == nil || id < 0 {
		return
	}
	n := &t.nodes[id]
	n.Score = score
	n.Alpha = alpha
	n.Beta = beta
}

func (n traceNode) State() string {
	s := fmt.Sprintf("%v", n.board)
	return strings.Replace(strings.TrimSuffix(s, "\n"), "\n", "<BR />", -1)
}

func (n traceNode) Bound(v int) string {
	switch v {
	case minScore:
		return "-∞"
	case maxScore:
		return "+∞"
	}
	return fmt.Sprintf("%d", v)
}

// ToDot searches b the way FindMove does (without root sampling) and renders the
// visited positions as a Graphviz digraph. At most maxNodes positions are drawn.
// Pruned branches simply do not appear.
func ToDot(b ttt.Board, conf Config, maxNodes int) (string, error) {
	if maxNodes <= 0 {
		return "", errors.Errorf("maxNodes must be positive. Got %d", maxNodes)
	}
	s := searcher{ai: b.ToMove(), conf: conf, tr: &trace{limit: maxNodes}}
	s.root(b, b.EmptyCells())

	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		return "", errors.WithStack(err)
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.WithStack(err)
	}

	var buf bytes.Buffer
	for _, n := range s.tr.nodes {
		buf.Reset()
		if err := tmpl.Execute(&buf, n); err != nil {
			return "", errors.Wrapf(err, "unable to render node %d", n.ID)
		}
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		if err := g.AddNode("G", fmt.Sprintf("n%d", n.ID), attrs); err != nil {
			return "", errors.WithStack(err)
		}
		if n.Parent < 0 {
			continue
		}
		if err := g.AddEdge(fmt.Sprintf("n%d", n.Parent), fmt.Sprintf("n%d", n.ID), true, nil); err != nil {
			return "", errors.WithStack(err)
		}
	}
	return g.String(), nil
}

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Node ID</TD><TD>{{.ID}}</TD></TR>
<TR><TD>Depth</TD><TD>{{.Depth}}</TD></TR>
<TR><TD>Score</TD><TD>{{.Score}}</TD></TR>
<TR><TD>Alpha</TD><TD>{{.Bound .Alpha}}</TD></TR>
<TR><TD>Beta</TD><TD>{{.Bound .Beta}}</TD></TR>
<TR><TD>State</TD><TD>{{.State}}</TD></TR>
</TABLE>
>`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("node").Parse(tmplRaw))
}
