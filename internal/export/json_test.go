package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dusk-indust/depviz/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraphExport_SortsNodesAndEdges(t *testing.T) {
	g := graph.NewGraph()
	g.AddNode(graph.Node{ID: 2, Label: "b.ts"})
	g.AddNode(graph.Node{ID: 1, Label: "a.ts"})
	g.AddEdge(graph.Edge{From: 2, To: 1})
	g.AddEdge(graph.Edge{From: 1, To: 2})

	out := BuildGraphExport(g, nil)
	require.Len(t, out.Nodes, 2)
	assert.Equal(t, graph.NodeId(1), out.Nodes["1"].ID)
	assert.Equal(t, graph.NodeId(2), out.Nodes["2"].ID)

	require.Len(t, out.Edges, 2)
	assert.Equal(t, graph.NodeId(1), out.Edges[0].From)
	assert.Equal(t, graph.NodeId(2), out.Edges[1].From)
}

func TestWriteGraphExport_ProducesValidJSON(t *testing.T) {
	g := graph.NewGraph()
	g.AddNode(graph.Node{ID: 1, Label: "a.ts"})

	var buf bytes.Buffer
	require.NoError(t, WriteGraphExport(&buf, BuildGraphExport(g, []graph.Cluster{{ID: 0, Members: []graph.NodeId{1}}})))

	var decoded GraphExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Nodes, 1)
	assert.Len(t, decoded.Clusters, 1)
}
