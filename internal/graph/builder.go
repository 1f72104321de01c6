package graph

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/dusk-indust/depviz/internal/config"
	"golang.org/x/sync/errgroup"
)

// BuildGraph runs the full per-project pipeline spec.md §4.2 and §5
// describe: File Discovery, followed by a CPU-sized worker pool that
// parses and extracts imports from every discovered file in parallel, then
// a single-threaded graph-assembly pass that adds nodes and filters edges
// to those whose resolved target is itself a discovered project file.
//
// The worker pool's order of completion is irrelevant: assembly sorts
// nothing and relies only on map membership, so results may be merged in
// any order.
func BuildGraph(ctx context.Context, root string) (*Graph, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	alloc := NewIDAllocator()

	projCfg, err := config.Load(absRoot)
	if err != nil {
		projCfg = &config.ProjectConfig{}
	}

	files, err := DiscoverFiles(alloc, absRoot, projCfg.ExcludeDirs...)
	if err != nil {
		return nil, err
	}

	resolver := NewResolver(absRoot)

	type extraction struct {
		path    string
		imports []extractedImport
	}

	results := make([]extraction, len(files))
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var mu sync.Mutex
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			imports, err := extractFile(resolver, path)
			if err != nil {
				// A single unparseable file does not abort the run; its
				// node is still discovered, it simply contributes no edges.
				return nil
			}
			mu.Lock()
			results[i] = extraction{path: path, imports: imports}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	graph := NewGraph()
	for _, node := range files {
		graph.AddNode(node)
	}

	for _, r := range results {
		if r.path == "" {
			continue
		}
		fromNode := files[r.path]
		for _, imp := range r.imports {
			if !imp.Resolved {
				continue
			}
			toNode, ok := files[imp.ResolvedPath]
			if !ok {
				continue
			}
			if toNode.ID == fromNode.ID {
				continue
			}
			graph.AddEdge(Edge{From: fromNode.ID, To: toNode.ID})
		}
	}

	return graph, nil
}
