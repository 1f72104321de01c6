// Package export serializes a dependency graph into the JSON shape
// consumed by downstream visualization tooling.
package export

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/dusk-indust/depviz/internal/graph"
)

// PositionExport is a node's (x,y) position, serialized as a 2-element
// array per spec.md §6 rather than an {x,y} object.
type PositionExport [2]float64

// KeyExport mirrors graph.FileFingerprint under the `key` field name
// spec.md §6 specifies.
type KeyExport struct {
	Size       uint64 `json:"size"`
	ModifiedNs uint64 `json:"modified_ns"`
}

// NodeExport is a single node in the exported graph.
type NodeExport struct {
	ID       graph.NodeId   `json:"id"`
	Label    string         `json:"label"`
	FilePath string         `json:"file_path"`
	Position PositionExport `json:"position"`
	Key      *KeyExport     `json:"key,omitempty"`
}

// EdgeExport is a single directed edge in the exported graph.
type EdgeExport struct {
	From graph.NodeId `json:"from"`
	To   graph.NodeId `json:"to"`
}

// ClusterExport is a single detected community.
type ClusterExport struct {
	ID      int            `json:"id"`
	Members []graph.NodeId `json:"members"`
}

// GraphExport is the top-level JSON export structure spec.md §6 names:
// `{edges: list, nodes: mapping}`, nodes keyed by string node id.
type GraphExport struct {
	Nodes    map[string]NodeExport `json:"nodes"`
	Edges    []EdgeExport          `json:"edges"`
	Clusters []ClusterExport       `json:"clusters,omitempty"`
}

// BuildGraphExport converts a *graph.Graph (and, if computed, its
// clusters) into the export shape, sorting edges (and the node-id-ordered
// iteration used to build the nodes map) so the JSON output is stable
// across runs against the same graph.
func BuildGraphExport(g *graph.Graph, clusters []graph.Cluster) GraphExport {
	nodes := g.IterNodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	out := GraphExport{
		Nodes: make(map[string]NodeExport, len(nodes)),
		Edges: make([]EdgeExport, 0, g.EdgeCount()),
	}

	for _, n := range nodes {
		ne := NodeExport{
			ID:       n.ID,
			Label:    n.Label,
			FilePath: n.FilePath,
			Position: PositionExport{n.Position.X, n.Position.Y},
		}
		if n.Fingerprint != nil {
			ne.Key = &KeyExport{Size: n.Fingerprint.Size, ModifiedNs: n.Fingerprint.ModifiedNs}
		}
		out.Nodes[strconv.FormatUint(uint64(n.ID), 10)] = ne
	}

	for _, e := range g.IterEdges() {
		out.Edges = append(out.Edges, EdgeExport{From: e.From, To: e.To})
	}
	sort.Slice(out.Edges, func(i, j int) bool {
		if out.Edges[i].From != out.Edges[j].From {
			return out.Edges[i].From < out.Edges[j].From
		}
		return out.Edges[i].To < out.Edges[j].To
	})

	for _, c := range clusters {
		out.Clusters = append(out.Clusters, ClusterExport{ID: c.ID, Members: c.Members})
	}

	return out
}

// WriteGraphExport encodes export as indented JSON to w.
func WriteGraphExport(w io.Writer, export GraphExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}
