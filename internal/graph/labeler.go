package graph

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ProjectLabeler caches per-file tokenization results across both TF-IDF
// channels (file content and file path) so repeated LabelFiles calls over
// the same project — e.g. once per user-selected subset — don't re-parse
// every file.
type ProjectLabeler struct {
	projectRoot string
	fileTokens  map[string][]string
	pathTokens  map[string][]string
}

// NewProjectLabeler tokenizes every file in projectFiles once, under both
// channels, ready for repeated LabelFiles calls over different selections.
// Tokenization runs on the same bounded worker pool builder.go uses for
// import extraction (spec.md §5 lists per-file TF-IDF tokenization as a
// worker-pool stage alongside extraction).
func NewProjectLabeler(ctx context.Context, projectFiles []string, projectRoot string) *ProjectLabeler {
	l := &ProjectLabeler{
		projectRoot: projectRoot,
		fileTokens:  make(map[string][]string, len(projectFiles)),
		pathTokens:  make(map[string][]string, len(projectFiles)),
	}

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, path := range projectFiles {
		path := path
		g.Go(func() error {
			tokens, err := tokenizeFile(path)
			if err != nil {
				tokens = nil
			}
			pathTokens := tokenizePath(path, projectRoot)

			mu.Lock()
			l.fileTokens[path] = tokens
			l.pathTokens[path] = pathTokens
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // per-file tokenization failures degrade to nil tokens, never an error

	return l
}

// LabelFiles scores each token touched by selectedFiles against the full
// project corpus, combining the file-content channel and the path channel
// additively, exactly as spec.md §4.5 describes. Files outside the
// labeler's project set are ignored.
func (l *ProjectLabeler) LabelFiles(selectedFiles []string) map[string]float64 {
	fileCorpus := NewCorpus()
	for _, tokens := range l.fileTokens {
		fileCorpus.IngestDocument(tokens)
	}
	pathCorpus := NewCorpus()
	for _, tokens := range l.pathTokens {
		pathCorpus.IngestDocument(tokens)
	}

	var selectedFileTokens, selectedPathTokens []string
	for _, path := range selectedFiles {
		selectedFileTokens = append(selectedFileTokens, l.fileTokens[path]...)
		selectedPathTokens = append(selectedPathTokens, l.pathTokens[path]...)
	}

	combined := make(map[string]float64)
	for _, s := range fileCorpus.TFIDF(selectedFileTokens) {
		combined[s.Token] += s.Score
	}
	for _, s := range pathCorpus.TFIDF(selectedPathTokens) {
		combined[s.Token] += s.Score
	}
	return combined
}

// LabelFiles is a one-shot convenience wrapper around ProjectLabeler for
// callers that don't need to reuse tokenization across multiple selections.
func LabelFiles(ctx context.Context, projectFiles, selectedFiles []string, projectRoot string) map[string]float64 {
	return NewProjectLabeler(ctx, projectFiles, projectRoot).LabelFiles(selectedFiles)
}
