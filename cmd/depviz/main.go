package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dusk-indust/depviz/internal/config"
	"github.com/dusk-indust/depviz/internal/export"
	"github.com/dusk-indust/depviz/internal/graph"
	"github.com/dusk-indust/depviz/internal/hostapi"
)

// version is set by goreleaser at build time.
var version = "dev"

// cliFlags holds every flag depviz parses from the command line.
type cliFlags struct {
	ProjectRoot string
	OutputDir   string
	Resolutions string
	MaxLevels   int
	Verbose     bool
	ServeMCP    bool
	Version     bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("depviz", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "path to the target TypeScript/JavaScript project")
	fs.StringVar(&flags.OutputDir, "output-dir", "", "directory to write export.json into (default: stdout)")
	fs.StringVar(&flags.Resolutions, "gamma", "", "comma-separated Louvain resolution values to sweep")
	fs.IntVar(&flags.MaxLevels, "max-levels", 0, "maximum Louvain aggregation passes")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as an MCP server on stdio")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	projectRoot := flags.ProjectRoot
	if !filepath.IsAbs(projectRoot) {
		abs, err := filepath.Abs(projectRoot)
		if err != nil {
			return fmt.Errorf("resolving project root: %w", err)
		}
		projectRoot = abs
	}

	projCfg, err := config.Load(projectRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load depviz.yml: %v\n", err)
		projCfg = &config.ProjectConfig{}
	}
	if projCfg.Verbose && !flags.Verbose {
		flags.Verbose = true
	}

	ctx := context.Background()

	if flags.ServeMCP {
		fmt.Fprintf(os.Stderr, "depviz MCP server v%s starting on stdio (project: %s)\n", version, projectRoot)
		server := hostapi.NewServer()
		err := hostapi.RunServerStdio(ctx, server)
		fmt.Fprintf(os.Stderr, "depviz MCP server stopped\n")
		return err
	}

	outputDir := flags.OutputDir
	if outputDir == "" {
		outputDir = projCfg.OutputDir
	}

	resolutions := projCfg.Resolutions
	if flags.Resolutions != "" {
		resolutions = parseResolutions(flags.Resolutions)
	}
	maxLevels := projCfg.MaxLevels
	if flags.MaxLevels > 0 {
		maxLevels = flags.MaxLevels
	}

	if flags.Verbose {
		fmt.Fprintf(os.Stderr, "discovering files under %s\n", projectRoot)
	}

	g, err := graph.BuildGraph(ctx, projectRoot)
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}
	if flags.Verbose {
		fmt.Fprintf(os.Stderr, "built graph: %d nodes, %d edges\n", g.NodeCount(), g.EdgeCount())
	}

	clusters := g.Clusterize(resolutions, maxLevels)
	g.Positioning()

	graphExport := export.BuildGraphExport(g, clusters)

	if outputDir == "" {
		return export.WriteGraphExport(os.Stdout, graphExport)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	outPath := filepath.Join(outputDir, "export.json")
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()

	if err := export.WriteGraphExport(f, graphExport); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	return nil
}

func parseResolutions(csv string) []float64 {
	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, "depviz builds a dependency graph, community clustering, and 2-D layout for a TypeScript/JavaScript project.\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n  depviz [flags]\n\nFlags:\n")
	fs.PrintDefaults()
}
