package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpus_TFIDF_RarerTokenScoresHigher(t *testing.T) {
	c := NewCorpus()
	c.IngestDocument([]string{"foo", "bar"})
	c.IngestDocument([]string{"foo", "foo", "baz"})
	c.IngestDocument([]string{"foo"})

	scored := c.TFIDF([]string{"foo", "bar"})
	require.Len(t, scored, 2)

	byToken := make(map[string]float64, len(scored))
	for _, s := range scored {
		byToken[s.Token] = s.Score
	}

	// "bar" appears in only one of three documents; "foo" appears in all
	// three. A document containing both should score "bar" higher.
	assert.Greater(t, byToken["bar"], byToken["foo"])
}

func TestCorpus_TFIDF_SortedDescending(t *testing.T) {
	c := NewCorpus()
	c.IngestDocument([]string{"a"})
	c.IngestDocument([]string{"b", "b"})

	scored := c.TFIDF([]string{"a", "b", "b"})
	require.Len(t, scored, 2)
	assert.GreaterOrEqual(t, scored[0].Score, scored[1].Score)
}

func TestCorpus_TFIDF_EmptyTokens(t *testing.T) {
	c := NewCorpus()
	c.IngestDocument([]string{"a"})
	assert.Empty(t, c.TFIDF(nil))
}
