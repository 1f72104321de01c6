package hostapi

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the build at release time; main overrides it via
// ldflags the way the upstream CLI does.
var version = "dev"

// NewServer creates an MCP server with the five graph tools registered:
// get_graph, positioning, clusterize, describe, and label_files.
func NewServer() *mcp.Server {
	svc := NewService()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "depviz",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_graph",
		Description: "Discover a TypeScript/JavaScript project's files, extract and resolve every import, and build the dependency graph. Returns a session handle.",
	}, withRecover(svc.GetGraph))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "positioning",
		Description: "Run force-directed layout over a graph's nodes, returning each file's assigned (x, y) position.",
	}, withRecover(svc.Positioning))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clusterize",
		Description: "Run a Louvain resolution sweep over a graph and return the best-scoring community partition.",
	}, withRecover(svc.Clusterize))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe",
		Description: "Return the full node/edge/cluster export for a graph session.",
	}, withRecover(svc.Describe))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "label_files",
		Description: "Score a set of files against the project's TF-IDF corpus (file content and file path channels combined).",
	}, withRecover(svc.LabelFiles))

	return server
}

// RunServerStdio runs server on stdio transport, blocking until stdin is
// closed or ctx is canceled.
func RunServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// withRecover wraps a tool handler so that nullFFIHandle and layoutFailure
// panics — the two conditions this package treats as unchecked internal
// errors — are caught exactly once, at this outermost boundary, and
// reported back as an ordinary tool error rather than crashing the server.
// Any other panic is not this boundary's concern and is allowed to
// propagate.
func withRecover[In, Out any](handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input In) (result *mcp.CallToolResult, out Out, err error) {
		defer func() {
			if r := recover(); r != nil {
				switch e := r.(type) {
				case nullFFIHandle:
					err = e
				case layoutFailure:
					err = e
				default:
					panic(r)
				}
			}
		}()
		return handler(ctx, req, input)
	}
}
