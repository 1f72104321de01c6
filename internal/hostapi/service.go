// Package hostapi exposes the dependency-graph pipeline as an MCP tool
// server: the host-facing boundary a calling process (editor extension,
// CLI wrapper, or another agent) talks to instead of linking the graph
// package directly. This is the Go analogue of the originating system's
// FFI boundary, where session handles are opaque tokens and internal
// failures are unchecked until they cross this surface.
package hostapi

import (
	"context"
	"fmt"
	"sync"

	"github.com/dusk-indust/depviz/internal/config"
	"github.com/dusk-indust/depviz/internal/export"
	"github.com/dusk-indust/depviz/internal/graph"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// nullFFIHandle panics when a tool call references a handle the service
// does not recognize. It is recovered once, at the outermost tool-call
// boundary (see withRecover), matching the fail-fast assertion policy the
// original FFI layer applies to a dangling or null handle.
type nullFFIHandle string

func (h nullFFIHandle) Error() string {
	return fmt.Sprintf("unknown session handle %q", string(h))
}

// layoutFailure panics when the force-directed simulation cannot proceed
// (an empty graph has no nodes to place). Like nullFFIHandle, it is only
// ever caught at the tool-call boundary.
type layoutFailure string

func (f layoutFailure) Error() string { return string(f) }

// session is the per-handle state a get_graph call creates and subsequent
// positioning/clusterize/describe/label_files calls mutate.
type session struct {
	mu          sync.Mutex
	projectRoot string
	graph       *graph.Graph
	clusters    []graph.Cluster
}

// Service backs every MCP tool this package registers. It owns the
// in-memory session table; sessions never persist across process restarts
// (spec.md's Non-goals rule out durable storage for analysis state).
type Service struct {
	mu       sync.Mutex
	sessions map[string]*session
}

// NewService returns an empty Service.
func NewService() *Service {
	return &Service{sessions: make(map[string]*session)}
}

func (s *Service) newHandle(sess *session) string {
	handle := uuid.NewString()
	s.mu.Lock()
	s.sessions[handle] = sess
	s.mu.Unlock()
	return handle
}

func (s *Service) lookup(handle string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[handle]
	if !ok {
		panic(nullFFIHandle(handle))
	}
	return sess
}

// --- get_graph ---

// GetGraphInput is the input for the get_graph MCP tool.
type GetGraphInput struct {
	RepoPath string `json:"repoPath" jsonschema:"the absolute path to the project to analyze"`
}

// GetGraphOutput is the result of the get_graph MCP tool.
type GetGraphOutput struct {
	Handle     string `json:"handle"`
	NodeCount  int    `json:"nodeCount"`
	EdgeCount  int    `json:"edgeCount"`
}

// GetGraph discovers every TypeScript/JavaScript file under input.RepoPath,
// extracts and resolves its imports, and assembles the resulting
// dependency graph, returning an opaque handle for the rest of this
// package's tools to operate on.
func (s *Service) GetGraph(ctx context.Context, _ *mcp.CallToolRequest, input GetGraphInput) (*mcp.CallToolResult, GetGraphOutput, error) {
	g, err := graph.BuildGraph(ctx, input.RepoPath)
	if err != nil {
		return nil, GetGraphOutput{}, err
	}

	handle := s.newHandle(&session{projectRoot: input.RepoPath, graph: g})
	return nil, GetGraphOutput{Handle: handle, NodeCount: g.NodeCount(), EdgeCount: g.EdgeCount()}, nil
}

// --- positioning ---

// PositioningInput is the input for the positioning MCP tool.
type PositioningInput struct {
	Handle string `json:"handle" jsonschema:"a handle returned by get_graph"`
}

// PositioningOutput is the result of the positioning MCP tool.
type PositioningOutput struct {
	Positions map[string]graph.Position `json:"positions"`
}

// Positioning runs the force-directed layout over the graph referenced by
// input.Handle and returns every node's assigned (x, y), keyed by file
// path. A graph with no nodes raises layoutFailure, which withRecover
// converts into a tool error.
func (s *Service) Positioning(_ context.Context, _ *mcp.CallToolRequest, input PositioningInput) (*mcp.CallToolResult, PositioningOutput, error) {
	sess := s.lookup(input.Handle)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.graph.NodeCount() == 0 {
		panic(layoutFailure("cannot position a graph with no nodes"))
	}

	sess.graph.Positioning()

	out := make(map[string]graph.Position, sess.graph.NodeCount())
	for _, n := range sess.graph.IterNodes() {
		out[n.FilePath] = n.Position
	}
	return nil, PositioningOutput{Positions: out}, nil
}

// --- clusterize ---

// ClusterizeInput is the input for the clusterize MCP tool.
type ClusterizeInput struct {
	Handle      string    `json:"handle" jsonschema:"a handle returned by get_graph"`
	Resolutions []float64 `json:"resolutions,omitempty" jsonschema:"Louvain resolution values to sweep (default: project config or the standard {0.6,0.8,1.0,1.2,1.5,2.0,2.5} sweep)"`
	MaxLevels   int       `json:"maxLevels,omitempty" jsonschema:"maximum Louvain aggregation passes (default: project config or 10)"`
}

// ClusterizeOutput is the result of the clusterize MCP tool.
type ClusterizeOutput struct {
	Clusters []graph.Cluster `json:"clusters"`
}

// Clusterize runs the Louvain γ-sweep over the graph referenced by
// input.Handle and stores the winning partition on the session for
// describe to include later.
func (s *Service) Clusterize(_ context.Context, _ *mcp.CallToolRequest, input ClusterizeInput) (*mcp.CallToolResult, ClusterizeOutput, error) {
	sess := s.lookup(input.Handle)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	resolutions, maxLevels := input.Resolutions, input.MaxLevels
	if cfg, err := config.Load(sess.projectRoot); err == nil {
		if len(resolutions) == 0 {
			resolutions = cfg.Resolutions
		}
		if maxLevels <= 0 {
			maxLevels = cfg.MaxLevels
		}
	}

	clusters := sess.graph.Clusterize(resolutions, maxLevels)
	sess.clusters = clusters
	return nil, ClusterizeOutput{Clusters: clusters}, nil
}

// --- describe ---

// DescribeInput is the input for the describe MCP tool.
type DescribeInput struct {
	Handle string `json:"handle" jsonschema:"a handle returned by get_graph"`
}

// DescribeOutput is the result of the describe MCP tool: the full graph
// export, including whatever clusters a prior clusterize call produced.
type DescribeOutput struct {
	Graph export.GraphExport `json:"graph"`
}

// Describe returns the full node/edge/cluster export for the session
// referenced by input.Handle.
func (s *Service) Describe(_ context.Context, _ *mcp.CallToolRequest, input DescribeInput) (*mcp.CallToolResult, DescribeOutput, error) {
	sess := s.lookup(input.Handle)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return nil, DescribeOutput{Graph: export.BuildGraphExport(sess.graph, sess.clusters)}, nil
}

// --- label_files ---

// LabelFilesInput is the input for the label_files MCP tool.
type LabelFilesInput struct {
	Handle        string   `json:"handle" jsonschema:"a handle returned by get_graph"`
	SelectedFiles []string `json:"selectedFiles" jsonschema:"absolute paths (within the project) to score"`
}

// LabelFilesOutput is the result of the label_files MCP tool.
type LabelFilesOutput struct {
	Scores map[string]float64 `json:"scores"`
}

// LabelFiles computes the combined file-content and file-path TF-IDF score
// for input.SelectedFiles against the full project corpus referenced by
// input.Handle.
func (s *Service) LabelFiles(ctx context.Context, _ *mcp.CallToolRequest, input LabelFilesInput) (*mcp.CallToolResult, LabelFilesOutput, error) {
	sess := s.lookup(input.Handle)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	projectFiles := make([]string, 0, sess.graph.NodeCount())
	for _, n := range sess.graph.IterNodes() {
		projectFiles = append(projectFiles, n.FilePath)
	}

	scores := graph.LabelFiles(ctx, projectFiles, input.SelectedFiles, sess.projectRoot)
	return nil, LabelFilesOutput{Scores: scores}, nil
}
